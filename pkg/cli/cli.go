package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openMF/credcheck/pkg/cli/config"
	"github.com/openMF/credcheck/pkg/domain/types"
	"github.com/openMF/credcheck/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var (
		loggerCfg config.Logger
		envCfg    config.EnvFile
		httpCfg   config.HTTP
	)

	app := &cli.Command{
		Name:    "credcheck",
		Usage:   "Verify GitHub, Jira, Slack, Fineract and OpenAI credentials",
		Version: "0.1.0",
		Flags:   joinFlags(loggerCfg.Flags(), envCfg.Flags(), httpCfg.Flags()),
		Writer:  stdout,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Configure logger
			logger, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			runID, err := types.NewRunID()
			if err != nil {
				return nil, goerr.Wrap(err, "failed to create run ID")
			}
			logger = logger.With(slog.String("run_id", runID.String()))

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdCheck(&envCfg, &httpCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		apperr.Handle(ctx, err)
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}
