package config

import (
	"log/slog"

	"github.com/openMF/credcheck/pkg/domain/interfaces"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/service/httpclient"
	"github.com/openMF/credcheck/pkg/service/openai"
	"github.com/urfave/cli/v3"
)

// OpenAI holds OpenAI configuration
type OpenAI struct {
	APIKey string
	Model  string
	APIURL string
}

// Flags returns CLI flags for OpenAI configuration
func (o *OpenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Category:    "OpenAI",
			Sources:     cli.EnvVars(model.KeyOpenAIAPIKey),
			Destination: &o.APIKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "Model expected to be available (default: " + openai.DefaultModel + ")",
			Category:    "OpenAI",
			Sources:     cli.EnvVars(model.KeyOpenAIModel),
			Destination: &o.Model,
		},
		&cli.StringFlag{
			Name:        "openai-api-url",
			Usage:       "OpenAI API base URL",
			Category:    "OpenAI",
			Value:       openai.DefaultAPIURL,
			Sources:     cli.EnvVars("CREDCHECK_OPENAI_API_URL"),
			Destination: &o.APIURL,
		},
	}
}

// Credentials returns the values given on the command line or process environment
func (o *OpenAI) Credentials() model.CredentialSet {
	return model.NewCredentialSet(map[string]string{
		model.KeyOpenAIAPIKey: o.APIKey,
		model.KeyOpenAIModel:  o.Model,
	})
}

// Configure creates the OpenAI checker
func (o *OpenAI) Configure(client *httpclient.Client) interfaces.Checker {
	return openai.New(client, o.APIURL)
}

// LogValue returns structured log value
func (o OpenAI) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_api_key", o.APIKey != ""),
		slog.String("model", o.Model),
		slog.String("api_url", o.APIURL),
	)
}
