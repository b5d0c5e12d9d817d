package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
	"github.com/openMF/credcheck/pkg/service/github"
	"github.com/openMF/credcheck/pkg/service/httpclient"
)

type stub struct {
	userStatus int
	userBody   string
	scopes     string
	orgStatus  int
	calls      atomic.Int32
}

func (s *stub) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		gt.Equal(t, "token ghp_test", r.Header.Get("Authorization"))
		gt.Equal(t, http.MethodGet, r.Method)

		switch r.URL.Path {
		case "/user":
			if s.scopes != "" {
				w.Header().Set("X-OAuth-Scopes", s.scopes)
			}
			w.WriteHeader(s.userStatus)
			_, _ = w.Write([]byte(s.userBody))
		case "/orgs/openMF":
			w.WriteHeader(s.orgStatus)
			_, _ = w.Write([]byte(`{"login":"openMF"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newChecker(srv *httptest.Server) *github.Checker {
	return github.New(httpclient.New(srv.Client()), github.WithAPIURL(srv.URL+"/"))
}

var creds = model.CredentialSet{model.KeyGitHubToken: "ghp_test"}

func TestCheckerValid(t *testing.T) {
	s := &stub{
		userStatus: http.StatusOK,
		userBody:   `{"login":"octocat","name":"The Octocat"}`,
		scopes:     "repo, read:org",
		orgStatus:  http.StatusOK,
	}
	srv := s.server(t)

	result := newChecker(srv).Check(context.Background(), creds)

	gt.Equal(t, types.ServiceGitHub, result.Service)
	gt.Equal(t, types.StatusValid, result.Status)
	gt.Equal(t, "octocat", result.Identity)
	gt.Equal(t, "openMF", result.Workspace)
	gt.Equal(t, []string{"repo", "read:org"}, result.Scopes)
	gt.False(t, result.IsRestricted())
	gt.Equal(t, int32(2), s.calls.Load())
}

func TestCheckerOrgRestricted(t *testing.T) {
	s := &stub{
		userStatus: http.StatusOK,
		userBody:   `{"login":"octocat"}`,
		orgStatus:  http.StatusForbidden,
	}
	srv := s.server(t)

	result := newChecker(srv).Check(context.Background(), creds)

	gt.Equal(t, types.StatusValid, result.Status)
	gt.Equal(t, "octocat", result.Identity)
	gt.True(t, result.IsRestricted())
	gt.A(t, result.Findings).Length(1)
	gt.Equal(t, types.StatusRestricted, result.Findings[0].Status)
	gt.S(t, result.Findings[0].Detail).Contains("HTTP 403")
	gt.S(t, result.Findings[0].Hint).Contains("SSO")
	gt.Equal(t, "", result.Workspace)
}

func TestCheckerCustomOrg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			_, _ = w.Write([]byte(`{"login":"octocat"}`))
		case "/orgs/acme":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	result := newChecker(srv).Check(context.Background(), model.CredentialSet{
		model.KeyGitHubToken: "ghp_test",
		model.KeyGitHubOrg:   "acme",
	})
	gt.Equal(t, types.StatusValid, result.Status)
	gt.Equal(t, "acme", result.Workspace)
	gt.False(t, result.IsRestricted())
}

func TestCheckerInvalid(t *testing.T) {
	testCases := []struct {
		name       string
		userStatus int
		userBody   string
		detail     string
	}{
		{"Unauthorized", http.StatusUnauthorized, `{"message":"Bad credentials"}`, "HTTP 401: Bad credentials"},
		{"Server error without body", http.StatusBadGateway, ``, "HTTP 502"},
		{"Missing login", http.StatusOK, `{"name":"nobody"}`, "response did not include a login"},
		{"Malformed body", http.StatusOK, `<html>`, "response did not include a login"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := &stub{userStatus: tc.userStatus, userBody: tc.userBody, orgStatus: http.StatusOK}
			srv := s.server(t)

			result := newChecker(srv).Check(context.Background(), creds)
			gt.Equal(t, types.StatusInvalid, result.Status)
			gt.Equal(t, tc.detail, result.Detail)
			gt.True(t, result.Attempted)
			gt.Equal(t, int32(1), s.calls.Load())
		})
	}
}

func TestCheckerMissingToken(t *testing.T) {
	s := &stub{}
	srv := s.server(t)

	result := newChecker(srv).Check(context.Background(), model.CredentialSet{})
	gt.Equal(t, types.StatusMisconfigured, result.Status)
	gt.False(t, result.Attempted)
	gt.Equal(t, int32(0), s.calls.Load())
}

func TestCheckerTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	checker := github.New(httpclient.New(nil), github.WithAPIURL(url))
	result := checker.Check(context.Background(), creds)
	gt.Equal(t, types.StatusInvalid, result.Status)
	gt.S(t, result.Detail).Contains("request failed")
}

func TestCheckerIdempotent(t *testing.T) {
	s := &stub{
		userStatus: http.StatusOK,
		userBody:   `{"login":"octocat"}`,
		scopes:     "repo",
		orgStatus:  http.StatusNotFound,
	}
	srv := s.server(t)
	checker := newChecker(srv)

	first := checker.Check(context.Background(), creds)
	second := checker.Check(context.Background(), creds)
	gt.Equal(t, first, second)
}
