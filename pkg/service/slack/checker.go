package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
)

// BotChecker verifies a bot token with auth.test
type BotChecker struct {
	newClient ClientFactory
}

// NewBotChecker creates a new bot token checker
func NewBotChecker(factory ClientFactory) *BotChecker {
	return &BotChecker{newClient: factory}
}

// Service implements interfaces.Checker
func (c *BotChecker) Service() types.ServiceName {
	return types.ServiceSlackBot
}

// Check implements interfaces.Checker
func (c *BotChecker) Check(ctx context.Context, creds model.CredentialSet) model.Result {
	svc := c.Service()

	token := creds.Get(model.KeySlackBotToken)
	if token == "" {
		return model.Misconfigured(svc, model.KeySlackBotToken+" is not set").
			WithHint("add the xoxb- bot token to the env file")
	}

	resp, err := c.newClient(token).AuthTestContext(ctx)
	if err != nil {
		code := ErrorCode(err)
		ctxlog.From(ctx).Debug("Slack auth.test failed", "error", err)
		result := model.Invalid(svc, code)
		if !strings.HasPrefix(token, "xoxb-") {
			result = result.WithHint("bot tokens start with xoxb-")
		}
		return result
	}
	if resp == nil || (resp.User == "" && resp.UserID == "") {
		return model.Invalid(svc, "response did not report ok")
	}

	return model.Valid(svc, fmt.Sprintf("bot %s in workspace %s", resp.User, resp.Team)).
		WithIdentity(resp.User).
		WithWorkspace(resp.Team)
}

// AppChecker verifies an app-level token with apps.connections.open
type AppChecker struct {
	newClient ClientFactory
}

// NewAppChecker creates a new app-level token checker
func NewAppChecker(factory ClientFactory) *AppChecker {
	return &AppChecker{newClient: factory}
}

// Service implements interfaces.Checker
func (c *AppChecker) Service() types.ServiceName {
	return types.ServiceSlackApp
}

// Check implements interfaces.Checker
func (c *AppChecker) Check(ctx context.Context, creds model.CredentialSet) model.Result {
	svc := c.Service()
	scopeHint := "the app token may be missing the connections:write scope"

	token := creds.Get(model.KeySlackAppToken)
	if token == "" {
		return model.Misconfigured(svc, model.KeySlackAppToken+" is not set").
			WithHint("add the xapp- app-level token to the env file")
	}

	_, url, err := c.newClient(token).StartSocketModeContext(ctx)
	if err != nil {
		ctxlog.From(ctx).Debug("Slack apps.connections.open failed", "error", err)
		return model.Invalid(svc, ErrorCode(err)).WithHint(scopeHint)
	}
	if url == "" {
		return model.Invalid(svc, "response did not report ok").WithHint(scopeHint)
	}

	return model.Valid(svc, "socket mode connection opened")
}
