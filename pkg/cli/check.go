package cli

import (
	"context"
	"errors"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openMF/credcheck/pkg/cli/config"
	"github.com/openMF/credcheck/pkg/domain/interfaces"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
	"github.com/openMF/credcheck/pkg/service/httpclient"
	"github.com/openMF/credcheck/pkg/service/jira"
	"github.com/openMF/credcheck/pkg/service/report"
	"github.com/openMF/credcheck/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// checkConfig groups every configuration the check command needs. env and
// http are root flags shared with the rest of the CLI.
type checkConfig struct {
	env      *config.EnvFile
	http     *config.HTTP
	github   config.GitHub
	jira     config.Jira
	slack    config.Slack
	fineract config.Fineract
	openai   config.OpenAI
}

func (cfg *checkConfig) flags() []cli.Flag {
	return joinFlags(
		cfg.github.Flags(),
		cfg.jira.Flags(),
		cfg.slack.Flags(),
		cfg.fineract.Flags(),
		cfg.openai.Flags(),
	)
}

// credentials merges the env file with flag and process environment values.
// The returned error wraps model.ErrEnvFileNotFound when the file is absent;
// the set is still usable in that case.
func (cfg *checkConfig) credentials(ctx context.Context) (model.CredentialSet, error) {
	fileCreds, err := cfg.env.Load(ctx)
	if err != nil && !errors.Is(err, model.ErrEnvFileNotFound) {
		return nil, err
	}

	creds := fileCreds.
		Merge(cfg.github.Credentials()).
		Merge(cfg.jira.Credentials()).
		Merge(cfg.slack.Credentials()).
		Merge(cfg.fineract.Credentials()).
		Merge(cfg.openai.Credentials())

	return creds, err
}

func (cfg *checkConfig) verifier() usecase.VerifyUseCase {
	httpClient := cfg.http.Configure()
	client := httpclient.New(httpClient)

	var checkers []interfaces.Checker
	checkers = append(checkers, cfg.github.Configure(client)...)
	checkers = append(checkers, cfg.jira.Configure(client))
	checkers = append(checkers, cfg.slack.Configure(httpClient)...)
	checkers = append(checkers, cfg.fineract.Configure(client))
	checkers = append(checkers, cfg.openai.Configure(client))

	return usecase.NewVerify(checkers, usecase.WithConcurrency(cfg.http.Concurrency))
}

func cmdCheck(env *config.EnvFile, http *config.HTTP) *cli.Command {
	cfg := checkConfig{env: env, http: http}

	commands := make([]*cli.Command, 0, len(types.AllServices)+1)
	for _, svc := range types.AllServices {
		commands = append(commands, &cli.Command{
			Name:  svc.String(),
			Usage: "Verify " + svc.DisplayName() + " credentials",
			Action: func(ctx context.Context, c *cli.Command) error {
				return runOne(ctx, &cfg, svc, c.Root().Writer)
			},
		})
	}
	commands = append(commands, &cli.Command{
		Name:  "all",
		Usage: "Verify every configured service",
		Action: func(ctx context.Context, c *cli.Command) error {
			return runAll(ctx, &cfg, c.Root().Writer)
		},
	})

	return &cli.Command{
		Name:     "check",
		Usage:    "Verify credentials against third-party APIs",
		Flags:    cfg.flags(),
		Commands: commands,
	}
}

// loadCredentials validates configuration and loads credentials, reporting
// whether the env file was found
func loadCredentials(ctx context.Context, cfg *checkConfig) (model.CredentialSet, bool, error) {
	logger := ctxlog.From(ctx)

	if err := cfg.http.Validate(); err != nil {
		return nil, false, err
	}

	creds, err := cfg.credentials(ctx)
	if errors.Is(err, model.ErrEnvFileNotFound) {
		logger.Warn("Env file not found, using flags and environment only", "path", cfg.env.Path)
		return creds, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	logger.Debug("Loaded credentials",
		"env", cfg.env,
		"http", cfg.http,
		"github", cfg.github,
		"jira", cfg.jira,
		"slack", cfg.slack,
		"fineract", cfg.fineract,
		"openai", cfg.openai,
		"credentials", creds,
	)
	return creds, true, nil
}

func runOne(ctx context.Context, cfg *checkConfig, svc types.ServiceName, stdout io.Writer) error {
	creds, envFound, err := loadCredentials(ctx, cfg)
	if err != nil {
		return err
	}
	rep := report.New(stdout)

	// Jira halts with a non-zero exit when its configuration is absent
	if svc == types.ServiceJira {
		if !envFound {
			result := model.Misconfigured(svc, "env file "+cfg.env.Path+" not found").
				WithHint("create it with " + model.KeyJiraURL + ", " + model.KeyJiraEmail + " and " + model.KeyJiraAPIToken)
			return preflightFailed(rep, result)
		}
		if result, ok := jira.Preflight(creds); !ok {
			return preflightFailed(rep, result)
		}
	}

	result, err := cfg.verifier().Verify(ctx, svc, creds)
	if err != nil {
		return err
	}
	return rep.Write(result)
}

func preflightFailed(rep *report.Reporter, result model.Result) error {
	if err := rep.Write(result); err != nil {
		return err
	}
	return goerr.Wrap(model.ErrPreflightFailed, result.Detail,
		goerr.V("service", result.Service))
}

func runAll(ctx context.Context, cfg *checkConfig, stdout io.Writer) error {
	creds, _, err := loadCredentials(ctx, cfg)
	if err != nil {
		return err
	}

	results := cfg.verifier().VerifyAll(ctx, creds)
	return report.New(stdout).WriteAll(results)
}

func joinFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}
