package config

import (
	"log/slog"

	"github.com/openMF/credcheck/pkg/domain/interfaces"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/service/httpclient"
	"github.com/openMF/credcheck/pkg/service/jira"
	"github.com/urfave/cli/v3"
)

// Jira holds Jira configuration
type Jira struct {
	URL      string
	Email    string
	Username string
	APIToken string
}

// Flags returns CLI flags for Jira configuration
func (j *Jira) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jira-url",
			Usage:       "Jira base URL, e.g. https://example.atlassian.net",
			Category:    "Jira",
			Sources:     cli.EnvVars(model.KeyJiraURL),
			Destination: &j.URL,
		},
		&cli.StringFlag{
			Name:        "jira-email",
			Usage:       "Jira account email",
			Category:    "Jira",
			Sources:     cli.EnvVars(model.KeyJiraEmail),
			Destination: &j.Email,
		},
		&cli.StringFlag{
			Name:        "jira-username",
			Usage:       "Older name for --jira-email, used only when no email is set",
			Category:    "Jira",
			Sources:     cli.EnvVars(model.KeyJiraUsername),
			Destination: &j.Username,
		},
		&cli.StringFlag{
			Name:        "jira-api-token",
			Usage:       "Atlassian API token",
			Category:    "Jira",
			Sources:     cli.EnvVars(model.KeyJiraAPIToken),
			Destination: &j.APIToken,
		},
	}
}

// Credentials returns the values given on the command line or process environment
func (j *Jira) Credentials() model.CredentialSet {
	return model.NewCredentialSet(map[string]string{
		model.KeyJiraURL:      j.URL,
		model.KeyJiraEmail:    j.Email,
		model.KeyJiraUsername: j.Username,
		model.KeyJiraAPIToken: j.APIToken,
	})
}

// Configure creates the Jira checker
func (j *Jira) Configure(client *httpclient.Client) interfaces.Checker {
	return jira.New(client)
}

// LogValue returns structured log value
func (j Jira) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", j.URL),
		slog.Bool("has_email", j.Email != ""),
		slog.Bool("has_username", j.Username != ""),
		slog.Bool("has_api_token", j.APIToken != ""),
	)
}
