package model

import (
	"log/slog"
	"sort"
	"strings"
)

// Credential keys read from the env file, flags or process environment
const (
	KeyGitHubToken      = "GITHUB_TOKEN"
	KeyGitHubOrg        = "GITHUB_ORG"
	KeyGitHubRepository = "GITHUB_REPOSITORY"

	KeyJiraURL      = "JIRA_URL"
	KeyJiraEmail    = "JIRA_EMAIL"
	KeyJiraUsername = "JIRA_USERNAME"
	KeyJiraAPIToken = "JIRA_API_TOKEN"

	KeySlackBotToken = "SLACK_BOT_TOKEN"
	KeySlackAppToken = "SLACK_APP_TOKEN"

	KeyFineractBaseURL  = "FINERACT_BASE_URL"
	KeyFineractTenantID = "FINERACT_TENANT_ID"
	KeyFineractUsername = "FINERACT_USERNAME"
	KeyFineractPassword = "FINERACT_PASSWORD"

	KeyOpenAIAPIKey = "OPENAI_API_KEY"
	KeyOpenAIModel  = "OPENAI_MODEL"
)

// CredentialSet maps credential names to their values. It is passed
// explicitly into every check instead of being read from process state.
type CredentialSet map[string]string

// NewCredentialSet creates a CredentialSet from a plain map, dropping empty values
func NewCredentialSet(values map[string]string) CredentialSet {
	set := make(CredentialSet, len(values))
	for k, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[k] = v
	}
	return set
}

// Get returns the trimmed value for key, or an empty string
func (c CredentialSet) Get(key string) string {
	return strings.TrimSpace(c[key])
}

// GetOr returns the value for key, or fallback when it is empty
func (c CredentialSet) GetOr(key, fallback string) string {
	if v := c.Get(key); v != "" {
		return v
	}
	return fallback
}

// Has reports whether key holds a non-empty value
func (c CredentialSet) Has(key string) bool {
	return c.Get(key) != ""
}

// Missing returns the keys that are absent or empty, in argument order
func (c CredentialSet) Missing(keys ...string) []string {
	var missing []string
	for _, key := range keys {
		if !c.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Merge returns a new set where non-empty values of other override c
func (c CredentialSet) Merge(other CredentialSet) CredentialSet {
	merged := make(CredentialSet, len(c)+len(other))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range other {
		if strings.TrimSpace(v) == "" {
			continue
		}
		merged[k] = v
	}
	return merged
}

// Keys returns the keys holding a non-empty value, sorted
func (c CredentialSet) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		if c.Has(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// LogValue returns structured log value. Only key presence is logged.
func (c CredentialSet) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", len(c.Keys())),
		slog.Any("keys", c.Keys()),
	)
}
