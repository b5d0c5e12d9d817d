package config

import (
	"log/slog"

	"github.com/openMF/credcheck/pkg/domain/interfaces"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/service/github"
	"github.com/openMF/credcheck/pkg/service/httpclient"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration
type GitHub struct {
	Token      string
	Org        string
	Repository string
	APIURL     string
}

// Flags returns CLI flags for GitHub configuration
func (g *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Category:    "GitHub",
			Sources:     cli.EnvVars(model.KeyGitHubToken),
			Destination: &g.Token,
		},
		&cli.StringFlag{
			Name:        "github-org",
			Usage:       "Organization whose visibility is checked (default: " + github.DefaultOrg + ")",
			Category:    "GitHub",
			Sources:     cli.EnvVars(model.KeyGitHubOrg),
			Destination: &g.Org,
		},
		&cli.StringFlag{
			Name:        "github-repository",
			Usage:       "Repository in owner/name form checked by github-repo",
			Category:    "GitHub",
			Sources:     cli.EnvVars(model.KeyGitHubRepository),
			Destination: &g.Repository,
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL",
			Category:    "GitHub",
			Value:       github.DefaultAPIURL,
			Sources:     cli.EnvVars("CREDCHECK_GITHUB_API_URL"),
			Destination: &g.APIURL,
		},
	}
}

// Credentials returns the values given on the command line or process environment
func (g *GitHub) Credentials() model.CredentialSet {
	return model.NewCredentialSet(map[string]string{
		model.KeyGitHubToken:      g.Token,
		model.KeyGitHubOrg:        g.Org,
		model.KeyGitHubRepository: g.Repository,
	})
}

// Configure creates the GitHub token and repository checkers
func (g *GitHub) Configure(client *httpclient.Client) []interfaces.Checker {
	opt := github.WithAPIURL(g.APIURL)
	return []interfaces.Checker{
		github.New(client, opt),
		github.NewRepoChecker(client, opt),
	}
}

// LogValue returns structured log value
func (g GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_token", g.Token != ""),
		slog.String("org", g.Org),
		slog.String("repository", g.Repository),
		slog.String("api_url", g.APIURL),
	)
}
