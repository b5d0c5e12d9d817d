package openai

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

const (
	// DefaultAPIURL is the public OpenAI endpoint
	DefaultAPIURL = "https://api.openai.com/v1"
	// DefaultModel is expected to be listed for the key
	DefaultModel = "gpt-4o-mini"
)

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Checker verifies an OpenAI API key with GET /models
type Checker struct {
	client *httpclient.Client
	apiURL string
}

// New creates a new OpenAI checker. An empty apiURL uses DefaultAPIURL.
func New(client *httpclient.Client, apiURL string) *Checker {
	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Checker{
		client: client,
		apiURL: apiURL,
	}
}

// Service implements interfaces.Checker
func (c *Checker) Service() types.ServiceName {
	return types.ServiceOpenAI
}

// Check implements interfaces.Checker
func (c *Checker) Check(ctx context.Context, creds model.CredentialSet) model.Result {
	svc := c.Service()

	key := creds.Get(model.KeyOpenAIAPIKey)
	if key == "" {
		return model.Misconfigured(svc, model.KeyOpenAIAPIKey+" is not set").
			WithHint("add " + model.KeyOpenAIAPIKey + " to the env file")
	}

	resp, err := c.client.Get(ctx, c.apiURL+"/models", httpclient.BearerHeader(key))
	if err != nil {
		ctxlog.From(ctx).Warn("OpenAI request failed", "error", err)
		return model.Invalid(svc, err.Error())
	}

	if !resp.OK() {
		detail := fmt.Sprintf("HTTP %d", resp.StatusCode)
		var e errorResponse
		if err := resp.DecodeJSON(&e); err == nil && e.Error.Message != "" {
			detail += ": " + e.Error.Message
		}
		result := model.Invalid(svc, detail)
		if resp.StatusCode == http.StatusUnauthorized {
			result = result.WithHint("check " + model.KeyOpenAIAPIKey)
		}
		return result
	}

	var models modelsResponse
	if err := resp.DecodeJSON(&models); err != nil {
		return model.Invalid(svc, "response did not include a model list")
	}

	want := creds.GetOr(model.KeyOpenAIModel, DefaultModel)
	result := model.Valid(svc, fmt.Sprintf("%d models available", len(models.Data)))

	found := false
	for _, m := range models.Data {
		if m.ID == want {
			found = true
			break
		}
	}
	if !found {
		result = result.WithFinding(model.Finding{
			Status: types.StatusRestricted,
			Detail: "model " + want + " is not available to this key",
			Hint:   "set " + model.KeyOpenAIModel + " to a listed model or enable it for the project",
		})
	}
	return result
}
