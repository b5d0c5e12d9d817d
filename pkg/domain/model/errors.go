package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrEnvFileNotFound = goerr.New("env file not found")
	ErrUnknownService  = goerr.New("unknown service")
	ErrPreflightFailed = goerr.New("required configuration is missing")
)

// Error tags attached to outbound request failures
var (
	ErrTagTransport    = goerr.NewTag("transport")
	ErrTagReadBody     = goerr.NewTag("read_body")
	ErrTagInvalidJSON  = goerr.NewTag("invalid_json")
	ErrTagBuildRequest = goerr.NewTag("build_request")
	ErrTagInvalidURL   = goerr.NewTag("invalid_url")
)
