package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
	"github.com/openMF/credcheck/pkg/service/httpclient"
)

// RepoChecker verifies that the token can read GITHUB_REPOSITORY
type RepoChecker struct {
	client *httpclient.Client
	apiURL string
}

// NewRepoChecker creates a new repository access checker
func NewRepoChecker(client *httpclient.Client, opts ...Option) *RepoChecker {
	o := buildOptions(opts)
	return &RepoChecker{
		client: client,
		apiURL: o.apiURL,
	}
}

// Service implements interfaces.Checker
func (c *RepoChecker) Service() types.ServiceName {
	return types.ServiceGitHubRepo
}

// ParseRepository splits "owner/name". Both parts must be non-empty.
func ParseRepository(s string) (owner, name string, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Check implements interfaces.Checker
func (c *RepoChecker) Check(ctx context.Context, creds model.CredentialSet) model.Result {
	svc := c.Service()

	if missing := creds.Missing(model.KeyGitHubToken, model.KeyGitHubRepository); len(missing) > 0 {
		return model.Misconfigured(svc, strings.Join(missing, ", ")+" not set").
			WithHint("add the missing values to the env file")
	}

	repository := creds.Get(model.KeyGitHubRepository)
	owner, name, ok := ParseRepository(repository)
	if !ok {
		return model.Misconfigured(svc, fmt.Sprintf("%s %q is not in owner/name form", model.KeyGitHubRepository, repository))
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.apiURL, url.PathEscape(owner), url.PathEscape(name))
	resp, err := c.client.Get(ctx, endpoint, authHeader(creds.Get(model.KeyGitHubToken)))
	if err != nil {
		ctxlog.From(ctx).Warn("GitHub repository lookup failed", "repository", repository, "error", err)
		return model.Invalid(svc, err.Error())
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return model.Invalid(svc, statusDetail(resp)).
			WithHint("repository " + repository + " was not found or the token lacks access to it")
	case http.StatusUnauthorized:
		return model.Invalid(svc, statusDetail(resp)).
			WithHint("token is expired, revoked or mistyped")
	default:
		return model.Invalid(svc, statusDetail(resp))
	}

	var repo repoResponse
	if err := resp.DecodeJSON(&repo); err != nil || repo.FullName == "" {
		return model.Invalid(svc, "response did not include a repository name")
	}

	result := model.Valid(svc, "can read "+repo.FullName).WithWorkspace(repo.FullName)
	if repo.Permissions != nil && !repo.Permissions.Push {
		result = result.WithFinding(model.Finding{
			Status: types.StatusRestricted,
			Detail: "token has read-only access to " + repo.FullName,
			Hint:   "grant write access to create pull requests",
		})
	}
	return result
}
