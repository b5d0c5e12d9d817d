package interfaces

import (
	"context"
	"net/http"

	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Checker verifies the credentials of one external service.
// Check never returns an error: every failure is classified into the Result.
type Checker interface {
	Service() types.ServiceName
	Check(ctx context.Context, creds model.CredentialSet) model.Result
}

// HTTPDoer is satisfied by *http.Client
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SlackClient is the subset of the Slack Web API used to verify tokens
type SlackClient interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	StartSocketModeContext(ctx context.Context) (*slack.SocketModeConnection, string, error)
}
