package jira

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
	"github.com/openMF/credcheck/pkg/service/httpclient"
)

// myselfPath is the Jira Cloud "current user" endpoint
const myselfPath = "/rest/api/3/myself"

const urlHint = "check " + model.KeyJiraURL + " (expected https://<site>.atlassian.net)"

// RequiredKeys must all be present before any request is sent
var RequiredKeys = []string{
	model.KeyJiraURL,
	model.KeyJiraEmail,
	model.KeyJiraAPIToken,
}

type myselfResponse struct {
	AccountID    string `json:"accountId"`
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
	Active       bool   `json:"active"`
}

// Checker verifies a Jira Cloud API token with Basic auth (email:token)
type Checker struct {
	client *httpclient.Client
}

// New creates a new Jira checker
func New(client *httpclient.Client) *Checker {
	return &Checker{client: client}
}

// Service implements interfaces.Checker
func (c *Checker) Service() types.ServiceName {
	return types.ServiceJira
}

// Normalize resolves JIRA_USERNAME as an alias of JIRA_EMAIL
func Normalize(creds model.CredentialSet) model.CredentialSet {
	if creds.Has(model.KeyJiraEmail) || !creds.Has(model.KeyJiraUsername) {
		return creds
	}
	return creds.Merge(model.CredentialSet{model.KeyJiraEmail: creds.Get(model.KeyJiraUsername)})
}

// Preflight returns a Misconfigured result when a required key is missing
// or JIRA_URL is not an absolute http(s) URL
func Preflight(creds model.CredentialSet) (model.Result, bool) {
	missing := Normalize(creds).Missing(RequiredKeys...)
	if len(missing) > 0 {
		return model.Misconfigured(types.ServiceJira, "missing "+strings.Join(missing, ", ")).
			WithHint("set " + strings.Join(RequiredKeys, ", ") + " in the env file"), false
	}
	if _, err := httpclient.ParseBaseURL(creds.Get(model.KeyJiraURL)); err != nil {
		return model.Misconfigured(types.ServiceJira, "invalid "+model.KeyJiraURL+": "+err.Error()).
			WithHint(urlHint), false
	}
	return model.Result{}, true
}

// Check implements interfaces.Checker
func (c *Checker) Check(ctx context.Context, creds model.CredentialSet) model.Result {
	svc := c.Service()

	if result, ok := Preflight(creds); !ok {
		return result
	}
	creds = Normalize(creds)

	baseURL, _ := httpclient.ParseBaseURL(creds.Get(model.KeyJiraURL))
	email := creds.Get(model.KeyJiraEmail)

	resp, err := c.client.Do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		URL:      baseURL + myselfPath,
		Header:   http.Header{"Accept": []string{"application/json"}},
		Username: email,
		Password: creds.Get(model.KeyJiraAPIToken),
	})
	if err != nil {
		ctxlog.From(ctx).Warn("Jira request failed", "url", baseURL, "error", err)
		return model.Invalid(svc, err.Error()).
			WithHint("check " + model.KeyJiraURL + " and network access")
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var me myselfResponse
		detail := "authenticated as " + email
		if err := resp.DecodeJSON(&me); err == nil && me.DisplayName != "" {
			detail = fmt.Sprintf("authenticated as %s (%s)", email, me.DisplayName)
		}
		return model.Valid(svc, detail).WithIdentity(email).WithWorkspace(baseURL)

	case http.StatusUnauthorized:
		return model.Invalid(svc, "HTTP 401: authentication rejected").
			WithHint("check " + model.KeyJiraEmail + " and " + model.KeyJiraAPIToken)

	case http.StatusNotFound:
		return model.NewResult(svc, types.StatusMisconfigured, "HTTP 404: endpoint not found").
			WithAttempted().
			WithHint(urlHint)

	default:
		return model.Invalid(svc, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}
}
