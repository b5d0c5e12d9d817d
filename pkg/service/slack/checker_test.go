package slack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
	slackSvc "github.com/openMF/credcheck/pkg/service/slack"
)

// newSlackServer serves body for the given method and checks the token was sent
func newSlackServer(t *testing.T, method, token, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gt.Equal(t, http.MethodPost, r.Method)
		gt.Equal(t, "/api/"+method, r.URL.Path)

		_ = r.ParseForm()
		sent := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if sent == "" {
			sent = r.PostForm.Get("token")
		}
		gt.Equal(t, token, sent)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func botChecker(srv *httptest.Server) *slackSvc.BotChecker {
	opts := slackSvc.ClientOptions(srv.URL+"/api", srv.Client())
	return slackSvc.NewBotChecker(slackSvc.BotClientFactory(opts...))
}

func appChecker(srv *httptest.Server) *slackSvc.AppChecker {
	opts := slackSvc.ClientOptions(srv.URL+"/api/", srv.Client())
	return slackSvc.NewAppChecker(slackSvc.AppClientFactory(opts...))
}

func TestBotChecker(t *testing.T) {
	creds := model.CredentialSet{model.KeySlackBotToken: "xoxb-123"}

	t.Run("ok response reports bot and workspace", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "auth.test", "xoxb-123", `{"ok":true,"user":"mybot","team":"myteam"}`, &calls)

		result := botChecker(srv).Check(context.Background(), creds)
		gt.Equal(t, types.ServiceSlackBot, result.Service)
		gt.Equal(t, types.StatusValid, result.Status)
		gt.Equal(t, "mybot", result.Identity)
		gt.Equal(t, "myteam", result.Workspace)
		gt.Equal(t, "bot mybot in workspace myteam", result.Detail)
		gt.Equal(t, int32(1), calls.Load())
	})

	t.Run("error response reports slack error code", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "auth.test", "xoxb-123", `{"ok":false,"error":"invalid_auth"}`, &calls)

		result := botChecker(srv).Check(context.Background(), creds)
		gt.Equal(t, types.StatusInvalid, result.Status)
		gt.Equal(t, "invalid_auth", result.Detail)
		gt.True(t, result.Attempted)
	})

	t.Run("missing ok marker is a failure", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "auth.test", "xoxb-123", `{"ok":false}`, &calls)

		result := botChecker(srv).Check(context.Background(), creds)
		gt.Equal(t, types.StatusInvalid, result.Status)
	})

	t.Run("malformed body is a failure", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "auth.test", "xoxb-123", `not json`, &calls)

		result := botChecker(srv).Check(context.Background(), creds)
		gt.Equal(t, types.StatusInvalid, result.Status)
	})

	t.Run("wrong token prefix gets a hint", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "auth.test", "xoxp-user", `{"ok":false,"error":"not_allowed_token_type"}`, &calls)

		result := botChecker(srv).Check(context.Background(), model.CredentialSet{model.KeySlackBotToken: "xoxp-user"})
		gt.Equal(t, "not_allowed_token_type", result.Detail)
		gt.S(t, result.Hint).Contains("xoxb-")
	})

	t.Run("missing token", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "auth.test", "", `{}`, &calls)

		result := botChecker(srv).Check(context.Background(), model.CredentialSet{})
		gt.Equal(t, types.StatusMisconfigured, result.Status)
		gt.Equal(t, int32(0), calls.Load())
	})

	t.Run("idempotent", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "auth.test", "xoxb-123", `{"ok":true,"user":"mybot","team":"myteam"}`, &calls)
		checker := botChecker(srv)

		first := checker.Check(context.Background(), creds)
		second := checker.Check(context.Background(), creds)
		gt.Equal(t, first, second)
	})
}

func TestAppChecker(t *testing.T) {
	creds := model.CredentialSet{model.KeySlackAppToken: "xapp-1-abc"}

	t.Run("ok response", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "apps.connections.open", "xapp-1-abc", `{"ok":true,"url":"wss://wss-primary.slack.com/link/?ticket=abc"}`, &calls)

		result := appChecker(srv).Check(context.Background(), creds)
		gt.Equal(t, types.ServiceSlackApp, result.Service)
		gt.Equal(t, types.StatusValid, result.Status)
		gt.Equal(t, int32(1), calls.Load())
	})

	t.Run("error response hints at connections:write", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "apps.connections.open", "xapp-1-abc", `{"ok":false,"error":"missing_scope"}`, &calls)

		result := appChecker(srv).Check(context.Background(), creds)
		gt.Equal(t, types.StatusInvalid, result.Status)
		gt.Equal(t, "missing_scope", result.Detail)
		gt.S(t, result.Hint).Contains("connections:write")
	})

	t.Run("missing ok marker is a failure", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "apps.connections.open", "xapp-1-abc", `{}`, &calls)

		result := appChecker(srv).Check(context.Background(), creds)
		gt.Equal(t, types.StatusInvalid, result.Status)
		gt.S(t, result.Hint).Contains("connections:write")
	})

	t.Run("idempotent", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "apps.connections.open", "xapp-1-abc", `{"ok":false,"error":"invalid_auth"}`, &calls)
		checker := appChecker(srv)
		first := checker.Check(context.Background(), creds)
		second := checker.Check(context.Background(), creds)
		gt.Equal(t, first, second)
		gt.Equal(t, int32(2), calls.Load())
	})

	t.Run("missing token", func(t *testing.T) {
		var calls atomic.Int32
		srv := newSlackServer(t, "apps.connections.open", "", `{}`, &calls)

		result := appChecker(srv).Check(context.Background(), model.CredentialSet{})
		gt.Equal(t, types.StatusMisconfigured, result.Status)
		gt.False(t, result.Attempted)
		gt.Equal(t, int32(0), calls.Load())
	})
}
