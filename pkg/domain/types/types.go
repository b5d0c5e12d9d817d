package types

import (
	"github.com/google/uuid"
)

// ServiceName identifies an external service whose credentials can be verified
type ServiceName string

const (
	ServiceGitHub     ServiceName = "github"
	ServiceGitHubRepo ServiceName = "github-repo"
	ServiceJira       ServiceName = "jira"
	ServiceSlackBot   ServiceName = "slack-bot"
	ServiceSlackApp   ServiceName = "slack-app"
	ServiceFineract   ServiceName = "fineract"
	ServiceOpenAI     ServiceName = "openai"
)

// AllServices lists every supported service in report order
var AllServices = []ServiceName{
	ServiceGitHub,
	ServiceGitHubRepo,
	ServiceJira,
	ServiceSlackBot,
	ServiceSlackApp,
	ServiceFineract,
	ServiceOpenAI,
}

// String returns the string representation
func (s ServiceName) String() string {
	return string(s)
}

// DisplayName returns the human readable name used in report headers
func (s ServiceName) DisplayName() string {
	switch s {
	case ServiceGitHub:
		return "GitHub"
	case ServiceGitHubRepo:
		return "GitHub repository"
	case ServiceJira:
		return "Jira"
	case ServiceSlackBot:
		return "Slack bot token"
	case ServiceSlackApp:
		return "Slack app token"
	case ServiceFineract:
		return "Fineract"
	case ServiceOpenAI:
		return "OpenAI"
	default:
		return string(s)
	}
}

// IsValid checks if the service is supported
func (s ServiceName) IsValid() bool {
	for _, svc := range AllServices {
		if s == svc {
			return true
		}
	}
	return false
}

// RunID identifies a single CLI invocation in logs
type RunID string

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// NewRunID creates a new RunID using UUID v7
func NewRunID() (RunID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return RunID(id.String()), nil
}
