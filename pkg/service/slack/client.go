package slack

import (
	"errors"
	"net/http"
	"strings"

	"github.com/openMF/credcheck/pkg/domain/interfaces"
	"github.com/slack-go/slack"
)

// DefaultAPIURL is the Slack Web API base URL. It must end with a slash.
const DefaultAPIURL = slack.APIURL

// ClientFactory creates a Slack client for a token
type ClientFactory func(token string) interfaces.SlackClient

// ClientOptions builds slack-go options from an API URL and HTTP client.
// An empty apiURL keeps the slack-go default.
func ClientOptions(apiURL string, httpClient *http.Client) []slack.Option {
	var opts []slack.Option
	if apiURL = strings.TrimSpace(apiURL); apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	if httpClient != nil {
		opts = append(opts, slack.OptionHTTPClient(httpClient))
	}
	return opts
}

// BotClientFactory returns a factory building bot-token clients
func BotClientFactory(opts ...slack.Option) ClientFactory {
	return func(token string) interfaces.SlackClient {
		return New(token, opts...)
	}
}

// AppClientFactory returns a factory building app-level-token clients
func AppClientFactory(opts ...slack.Option) ClientFactory {
	return func(token string) interfaces.SlackClient {
		return NewAppLevel(token, opts...)
	}
}

// ErrorCode extracts the Slack error string (e.g. "invalid_auth") from err,
// falling back to the error message for transport failures
func ErrorCode(err error) string {
	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) && slackErr.Err != "" {
		return slackErr.Err
	}
	var statusErr slack.StatusCodeError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	return err.Error()
}
