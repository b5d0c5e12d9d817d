package config

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// EnvFile holds the location of the local key=value credential file
type EnvFile struct {
	Path string
}

// Flags returns CLI flags for EnvFile configuration
func (e *EnvFile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "Path to the key=value credential file",
			Category:    "Configuration",
			Value:       ".env",
			Sources:     cli.EnvVars("CREDCHECK_ENV_FILE"),
			Destination: &e.Path,
		},
	}
}

// Load reads the env file without touching the process environment.
// Comment lines and blank lines are ignored. A missing file returns an empty
// set and an error wrapping model.ErrEnvFileNotFound.
func (e *EnvFile) Load(ctx context.Context) (model.CredentialSet, error) {
	values, err := godotenv.Read(e.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.CredentialSet{}, goerr.Wrap(model.ErrEnvFileNotFound, "cannot load credentials",
				goerr.V("path", e.Path))
		}
		return nil, goerr.Wrap(err, "failed to parse env file", goerr.V("path", e.Path))
	}

	creds := model.NewCredentialSet(values)
	ctxlog.From(ctx).Debug("Env file loaded", "path", e.Path, "credentials", creds)
	return creds, nil
}

// LogValue returns structured log value
func (e EnvFile) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", e.Path),
	)
}
