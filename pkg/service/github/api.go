package github

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/openMF/credcheck/pkg/service/httpclient"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint
	DefaultAPIURL = "https://api.github.com"
	// DefaultOrg is the organization whose visibility is checked
	DefaultOrg = "openMF"
)

type userResponse struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

type repoResponse struct {
	FullName    string           `json:"full_name"`
	Private     bool             `json:"private"`
	Permissions *repoPermissions `json:"permissions"`
}

type repoPermissions struct {
	Admin bool `json:"admin"`
	Push  bool `json:"push"`
	Pull  bool `json:"pull"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// authHeader uses the "token" scheme GitHub accepts for personal access tokens
func authHeader(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "token "+token)
	h.Set("Accept", "application/vnd.github+json")
	h.Set("X-GitHub-Api-Version", "2022-11-28")
	return h
}

// statusDetail renders a non-200 response as "HTTP <code>: <message>"
func statusDetail(resp *httpclient.Response) string {
	var e errorResponse
	if err := resp.DecodeJSON(&e); err == nil && e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

// parseScopes splits the X-OAuth-Scopes header. Fine-grained tokens send no header.
func parseScopes(header string) []string {
	var scopes []string
	for _, s := range strings.Split(header, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

func trimBaseURL(u string) string {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		return DefaultAPIURL
	}
	return u
}
