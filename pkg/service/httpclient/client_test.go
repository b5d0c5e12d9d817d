package httpclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/service/httpclient"
)

func TestClientDo(t *testing.T) {
	ctx := context.Background()

	t.Run("buffers body and keeps headers", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, httpclient.UserAgent, r.Header.Get("User-Agent"))
			gt.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Header().Set("X-Test", "yes")
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte(`{"a":1}`))
		}))
		defer srv.Close()

		client := httpclient.New(srv.Client())
		resp, err := client.Get(ctx, srv.URL, httpclient.BearerHeader("tok"))
		gt.NoError(t, err).Required()
		gt.Equal(t, http.StatusTeapot, resp.StatusCode)
		gt.False(t, resp.OK())
		gt.Equal(t, "yes", resp.Header.Get("X-Test"))

		var v struct {
			A int `json:"a"`
		}
		gt.NoError(t, resp.DecodeJSON(&v))
		gt.Equal(t, 1, v.A)
	})

	t.Run("sends basic auth and body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			gt.True(t, ok)
			gt.Equal(t, "me@example.com", user)
			gt.Equal(t, "secret", pass)
			body, _ := io.ReadAll(r.Body)
			gt.Equal(t, "payload", string(body))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := httpclient.New(srv.Client())
		resp, err := client.Do(ctx, httpclient.Request{
			Method:   http.MethodPost,
			URL:      srv.URL,
			Body:     []byte("payload"),
			Username: "me@example.com",
			Password: "secret",
		})
		gt.NoError(t, err).Required()
		gt.True(t, resp.OK())
	})

	t.Run("invalid JSON is tagged", func(t *testing.T) {
		resp := &httpclient.Response{StatusCode: 200, Body: []byte("not json")}
		var v map[string]any
		err := resp.DecodeJSON(&v)
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagInvalidJSON)).True()
	})

	t.Run("transport error is tagged", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		client := httpclient.New(nil)
		_, err := client.Get(ctx, url, nil)
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagTransport)).True()
	})

	t.Run("malformed URL is tagged", func(t *testing.T) {
		client := httpclient.NewWithTimeout(0)
		_, err := client.Get(ctx, "://bad", nil)
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagBuildRequest)).True()
	})
}

func TestParseBaseURL(t *testing.T) {
	got, err := httpclient.ParseBaseURL(" https://example.atlassian.net/ ")
	gt.NoError(t, err).Required()
	gt.Equal(t, "https://example.atlassian.net", got)

	for _, raw := range []string{"", "example.atlassian.net", "://bad", "ftp://example.com", "https://"} {
		_, err := httpclient.ParseBaseURL(raw)
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagInvalidURL)).True()
	}
}
