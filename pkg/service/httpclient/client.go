package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openMF/credcheck/pkg/domain/interfaces"
	"github.com/openMF/credcheck/pkg/domain/model"
)

// DefaultTimeout applies when no timeout is configured
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is buffered
const maxBodySize = 1 << 20

// UserAgent is sent with every outbound request
const UserAgent = "credcheck/0.1.0"

// Client sends a request and buffers the whole response body in memory
type Client struct {
	doer interfaces.HTTPDoer
}

// New creates a Client backed by doer. A nil doer gets an *http.Client
// with DefaultTimeout.
func New(doer interfaces.HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{doer: doer}
}

// NewWithTimeout creates a Client backed by an *http.Client with the given timeout
func NewWithTimeout(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return New(&http.Client{Timeout: timeout})
}

// ParseBaseURL checks that raw is an absolute http or https URL with a host
// and returns it without trailing slashes
func ParseBaseURL(raw string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", goerr.Wrap(err, "malformed URL",
			goerr.V("url", raw),
			goerr.T(model.ErrTagInvalidURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", goerr.New("URL must start with http:// or https://",
			goerr.V("url", raw),
			goerr.T(model.ErrTagInvalidURL))
	}
	if u.Host == "" {
		return "", goerr.New("URL has no host",
			goerr.V("url", raw),
			goerr.T(model.ErrTagInvalidURL))
	}
	return trimmed, nil
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is 200
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// DecodeJSON decodes the buffered body into v
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return goerr.Wrap(err, "failed to decode response body",
			goerr.V("status", r.StatusCode),
			goerr.T(model.ErrTagInvalidJSON))
	}
	return nil
}

// Request describes an outbound call
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
	// Username and Password enable Basic auth when Username is set
	Username string
	Password string
}

// Do sends req and returns the buffered response. A non-2xx status is not an error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	logger := ctxlog.From(ctx)

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request",
			goerr.V("method", req.Method),
			goerr.V("url", req.URL),
			goerr.T(model.ErrTagBuildRequest))
	}
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", UserAgent)
	}
	if req.Username != "" {
		httpReq.SetBasicAuth(req.Username, req.Password)
	}

	started := time.Now()
	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, goerr.Wrap(err, "request failed",
			goerr.V("method", req.Method),
			goerr.V("url", req.URL),
			goerr.T(model.ErrTagTransport))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body",
			goerr.V("url", req.URL),
			goerr.V("status", resp.StatusCode),
			goerr.T(model.ErrTagReadBody))
	}

	logger.Debug("Outbound request completed",
		"method", req.Method,
		"url", req.URL,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// Get is a shorthand for a GET request with the given headers
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: url, Header: header})
}

// BearerHeader returns a header set carrying a bearer token
func BearerHeader(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}
