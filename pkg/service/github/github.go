package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/m-mizutani/ctxlog"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
	"github.com/openMF/credcheck/pkg/service/httpclient"
)

// Checker verifies a GitHub personal access token against GET /user and
// then checks whether membership of the configured organization is visible
type Checker struct {
	client *httpclient.Client
	apiURL string
}

// Option configures a Checker or RepoChecker
type Option func(*options)

type options struct {
	apiURL string
}

// WithAPIURL overrides the REST endpoint, e.g. for GitHub Enterprise
func WithAPIURL(u string) Option {
	return func(o *options) {
		o.apiURL = u
	}
}

func buildOptions(opts []Option) options {
	o := options{apiURL: DefaultAPIURL}
	for _, opt := range opts {
		opt(&o)
	}
	o.apiURL = trimBaseURL(o.apiURL)
	return o
}

// New creates a new GitHub token checker
func New(client *httpclient.Client, opts ...Option) *Checker {
	o := buildOptions(opts)
	return &Checker{
		client: client,
		apiURL: o.apiURL,
	}
}

// Service implements interfaces.Checker
func (c *Checker) Service() types.ServiceName {
	return types.ServiceGitHub
}

// Check implements interfaces.Checker
func (c *Checker) Check(ctx context.Context, creds model.CredentialSet) model.Result {
	logger := ctxlog.From(ctx)
	svc := c.Service()

	token := creds.Get(model.KeyGitHubToken)
	if token == "" {
		return model.Misconfigured(svc, model.KeyGitHubToken+" is not set").
			WithHint("add " + model.KeyGitHubToken + " to the env file")
	}
	header := authHeader(token)

	resp, err := c.client.Get(ctx, c.apiURL+"/user", header)
	if err != nil {
		logger.Warn("GitHub user lookup failed", "error", err)
		return model.Invalid(svc, err.Error())
	}
	if !resp.OK() {
		result := model.Invalid(svc, statusDetail(resp))
		if resp.StatusCode == http.StatusUnauthorized {
			result = result.WithHint("token is expired, revoked or mistyped; generate a new personal access token")
		}
		return result
	}

	var user userResponse
	if err := resp.DecodeJSON(&user); err != nil || user.Login == "" {
		return model.Invalid(svc, "response did not include a login")
	}

	result := model.Valid(svc, "authenticated as "+user.Login).
		WithIdentity(user.Login).
		WithScopes(parseScopes(resp.Header.Get("X-OAuth-Scopes")))

	org := creds.GetOr(model.KeyGitHubOrg, DefaultOrg)
	ssoHint := fmt.Sprintf("authorize SSO for the %s organization on this token (token settings > Configure SSO)", org)

	orgResp, err := c.client.Get(ctx, c.apiURL+"/orgs/"+url.PathEscape(org), header)
	switch {
	case err != nil:
		logger.Warn("GitHub organization lookup failed", "org", org, "error", err)
		result = result.WithFinding(model.Finding{
			Status: types.StatusRestricted,
			Detail: fmt.Sprintf("organization %s lookup failed: %s", org, err.Error()),
			Hint:   ssoHint,
		})
	case !orgResp.OK():
		result = result.WithFinding(model.Finding{
			Status: types.StatusRestricted,
			Detail: fmt.Sprintf("organization %s is not visible (HTTP %d)", org, orgResp.StatusCode),
			Hint:   ssoHint,
		})
	default:
		result = result.WithWorkspace(org)
	}

	return result
}
