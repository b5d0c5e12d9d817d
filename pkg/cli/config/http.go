package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/openMF/credcheck/pkg/service/httpclient"
	"github.com/urfave/cli/v3"
)

// HTTP holds outbound request configuration
type HTTP struct {
	Timeout     time.Duration
	Concurrency int
}

// Flags returns CLI flags for HTTP configuration
func (h *HTTP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout for each outbound request",
			Category:    "HTTP",
			Value:       httpclient.DefaultTimeout,
			Sources:     cli.EnvVars("CREDCHECK_TIMEOUT"),
			Destination: &h.Timeout,
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Maximum number of checks run at once by 'check all' (1 runs them in order, 0 means no limit)",
			Category:    "HTTP",
			Value:       1,
			Sources:     cli.EnvVars("CREDCHECK_CONCURRENCY"),
			Destination: &h.Concurrency,
		},
	}
}

// Validate validates the HTTP configuration
func (h *HTTP) Validate() error {
	if h.Timeout < 0 {
		return goerr.New("timeout must not be negative", goerr.V("timeout", h.Timeout))
	}
	if h.Concurrency < 0 {
		return goerr.New("concurrency must not be negative", goerr.V("concurrency", h.Concurrency))
	}
	return nil
}

// Configure creates the shared HTTP client
func (h *HTTP) Configure() *http.Client {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = httpclient.DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// LogValue returns structured log value
func (h HTTP) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("timeout", h.Timeout),
		slog.Int("concurrency", h.Concurrency),
	)
}
