package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/johnquangdev/meeting-notes/internal/bootstrap"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

var version = "dev"

// cli carries the loaders shared by every subcommand
type cli struct {
	loadConfig    func() (*config.Config, error)
	loadConfigEnv func() (*config.Config, error)
	newApp        func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*bootstrap.App, error)
	debug         bool
}

func defaultCLI() *cli {
	return &cli{
		loadConfig:    config.Load,
		loadConfigEnv: config.LoadEnv,
		newApp:        bootstrap.New,
	}
}

func newRootCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notesctl",
		Short: "Operate the meeting-notes pipeline",
		Long: `notesctl runs the meeting-notes pipeline from the command line.

It can summarize a transcript, run or preview the reconciliation sweep that
re-sends unsent summaries, apply database migrations for the postgres store,
and browse the raw-output archive.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newSweepCommand(c))
	cmd.AddCommand(newSummarizeCommand(c))
	cmd.AddCommand(newMigrateCommand(c))
	cmd.AddCommand(newArchiveCommand(c))

	return cmd
}

func execute() error {
	return newRootCommand(defaultCLI()).Execute()
}

// logger writes warnings and errors to stderr unless --debug is set
func (c *cli) logger() (*zap.Logger, error) {
	if c.debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

// withApp builds the pipeline, runs fn and closes every connection
func (c *cli) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := c.newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	return fn(ctx, app)
}
