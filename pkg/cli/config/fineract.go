package config

import (
	"log/slog"

	"github.com/openMF/credcheck/pkg/domain/interfaces"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/service/fineract"
	"github.com/openMF/credcheck/pkg/service/httpclient"
	"github.com/urfave/cli/v3"
)

// Fineract holds Fineract (Mifos) configuration. Unset values fall back to
// the public sandbox defaults inside the checker.
type Fineract struct {
	BaseURL  string
	TenantID string
	Username string
	Password string
}

// Flags returns CLI flags for Fineract configuration
func (f *Fineract) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "fineract-base-url",
			Usage:       "Fineract API base URL (default: " + fineract.DefaultBaseURL + ")",
			Category:    "Fineract",
			Sources:     cli.EnvVars(model.KeyFineractBaseURL),
			Destination: &f.BaseURL,
		},
		&cli.StringFlag{
			Name:        "fineract-tenant-id",
			Usage:       "Fineract tenant identifier (default: " + fineract.DefaultTenantID + ")",
			Category:    "Fineract",
			Sources:     cli.EnvVars(model.KeyFineractTenantID),
			Destination: &f.TenantID,
		},
		&cli.StringFlag{
			Name:        "fineract-username",
			Usage:       "Fineract login username",
			Category:    "Fineract",
			Sources:     cli.EnvVars(model.KeyFineractUsername),
			Destination: &f.Username,
		},
		&cli.StringFlag{
			Name:        "fineract-password",
			Usage:       "Fineract login password",
			Category:    "Fineract",
			Sources:     cli.EnvVars(model.KeyFineractPassword),
			Destination: &f.Password,
		},
	}
}

// Credentials returns the values given on the command line or process environment
func (f *Fineract) Credentials() model.CredentialSet {
	return model.NewCredentialSet(map[string]string{
		model.KeyFineractBaseURL:  f.BaseURL,
		model.KeyFineractTenantID: f.TenantID,
		model.KeyFineractUsername: f.Username,
		model.KeyFineractPassword: f.Password,
	})
}

// Configure creates the Fineract checker
func (f *Fineract) Configure(client *httpclient.Client) interfaces.Checker {
	return fineract.New(client)
}

// LogValue returns structured log value
func (f Fineract) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", f.BaseURL),
		slog.String("tenant_id", f.TenantID),
		slog.Bool("has_username", f.Username != ""),
		slog.Bool("has_password", f.Password != ""),
	)
}
