package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Service wraps the Slack Web API calls used to verify tokens
type Service struct {
	client *slack.Client
}

// New creates a new Slack service authenticated with a bot token
func New(token string, opts ...slack.Option) *Service {
	return &Service{
		client: slack.New(token, opts...),
	}
}

// NewAppLevel creates a new Slack service authenticated with an app-level token
func NewAppLevel(appToken string, opts ...slack.Option) *Service {
	opts = append(opts, slack.OptionAppLevelToken(appToken))
	return &Service{
		client: slack.New("", opts...),
	}
}

// AuthTestContext calls auth.test with the bot token
func (s *Service) AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error) {
	resp, err := s.client.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call auth.test")
	}
	return resp, nil
}

// StartSocketModeContext calls apps.connections.open with the app-level token
func (s *Service) StartSocketModeContext(ctx context.Context) (*slack.SocketModeConnection, string, error) {
	info, url, err := s.client.StartSocketModeContext(ctx)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to call apps.connections.open")
	}
	return info, url, nil
}
