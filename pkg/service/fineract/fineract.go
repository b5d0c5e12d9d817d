package fineract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
	"github.com/openMF/credcheck/pkg/service/httpclient"
)

// Sandbox defaults used when the env file leaves a value unset
const (
	DefaultBaseURL  = "https://sandbox.mifos.community/fineract-provider/api/v1"
	DefaultTenantID = "default"
	DefaultUsername = "mifos"
	DefaultPassword = "password"
)

// TenantHeader carries the Fineract tenant identifier
const TenantHeader = "Fineract-Platform-TenantId"

type authenticationRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authenticationResponse struct {
	Username      string `json:"username"`
	UserID        int64  `json:"userId"`
	Authenticated bool   `json:"authenticated"`
	OfficeName    string `json:"officeName"`
}

// Checker verifies Fineract credentials with POST /authentication
type Checker struct {
	client *httpclient.Client
}

// New creates a new Fineract checker
func New(client *httpclient.Client) *Checker {
	return &Checker{client: client}
}

// Service implements interfaces.Checker
func (c *Checker) Service() types.ServiceName {
	return types.ServiceFineract
}

// Check implements interfaces.Checker
func (c *Checker) Check(ctx context.Context, creds model.CredentialSet) model.Result {
	svc := c.Service()

	baseURL, err := httpclient.ParseBaseURL(creds.GetOr(model.KeyFineractBaseURL, DefaultBaseURL))
	if err != nil {
		return model.Misconfigured(svc, "invalid "+model.KeyFineractBaseURL+": "+err.Error()).
			WithHint("check " + model.KeyFineractBaseURL + " (expected https://<host>/fineract-provider/api/v1)")
	}
	tenant := creds.GetOr(model.KeyFineractTenantID, DefaultTenantID)
	username := creds.GetOr(model.KeyFineractUsername, DefaultUsername)

	body, err := json.Marshal(authenticationRequest{
		Username: username,
		Password: creds.GetOr(model.KeyFineractPassword, DefaultPassword),
	})
	if err != nil {
		return model.Misconfigured(svc, "failed to encode credentials: "+err.Error())
	}

	header := http.Header{}
	header.Set(TenantHeader, tenant)
	header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    baseURL + "/authentication",
		Header: header,
		Body:   body,
	})
	if err != nil {
		ctxlog.From(ctx).Warn("Fineract request failed", "url", baseURL, "error", err)
		return model.Invalid(svc, err.Error()).
			WithHint("check " + model.KeyFineractBaseURL + " and network access")
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.Invalid(svc, fmt.Sprintf("HTTP %d: authentication rejected", resp.StatusCode)).
			WithHint("check " + model.KeyFineractUsername + ", " + model.KeyFineractPassword + " and " + model.KeyFineractTenantID)
	case http.StatusNotFound:
		return model.NewResult(svc, types.StatusMisconfigured, "HTTP 404: endpoint not found").
			WithAttempted().
			WithHint("check " + model.KeyFineractBaseURL)
	default:
		return model.Invalid(svc, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	var auth authenticationResponse
	if err := resp.DecodeJSON(&auth); err != nil || !auth.Authenticated {
		return model.Invalid(svc, "response did not report authenticated")
	}

	identity := auth.Username
	if identity == "" {
		identity = username
	}
	detail := "authenticated as " + identity
	if auth.OfficeName != "" {
		detail += " (" + auth.OfficeName + ")"
	}
	return model.Valid(svc, detail).
		WithIdentity(identity).
		WithWorkspace("tenant " + tenant)
}
