package config

import (
	"log/slog"
	"net/http"

	"github.com/openMF/credcheck/pkg/domain/interfaces"
	"github.com/openMF/credcheck/pkg/domain/model"
	slackSvc "github.com/openMF/credcheck/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack configuration
type Slack struct {
	BotToken string
	AppToken string
	APIURL   string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot user OAuth token (xoxb-)",
			Category:    "Slack",
			Sources:     cli.EnvVars(model.KeySlackBotToken),
			Destination: &s.BotToken,
		},
		&cli.StringFlag{
			Name:        "slack-app-token",
			Usage:       "Slack app-level token for Socket Mode (xapp-)",
			Category:    "Slack",
			Sources:     cli.EnvVars(model.KeySlackAppToken),
			Destination: &s.AppToken,
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Slack Web API base URL",
			Category:    "Slack",
			Value:       slackSvc.DefaultAPIURL,
			Sources:     cli.EnvVars("CREDCHECK_SLACK_API_URL"),
			Destination: &s.APIURL,
		},
	}
}

// Credentials returns the values given on the command line or process environment
func (s *Slack) Credentials() model.CredentialSet {
	return model.NewCredentialSet(map[string]string{
		model.KeySlackBotToken: s.BotToken,
		model.KeySlackAppToken: s.AppToken,
	})
}

// Configure creates the bot token and app token checkers
func (s *Slack) Configure(httpClient *http.Client) []interfaces.Checker {
	opts := slackSvc.ClientOptions(s.APIURL, httpClient)
	return []interfaces.Checker{
		slackSvc.NewBotChecker(slackSvc.BotClientFactory(opts...)),
		slackSvc.NewAppChecker(slackSvc.AppClientFactory(opts...)),
	}
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_bot_token", s.BotToken != ""),
		slog.Bool("has_app_token", s.AppToken != ""),
		slog.String("api_url", s.APIURL),
	)
}
