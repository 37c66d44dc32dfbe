package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/internal/config"
	"github.com/nextgen-2026/futureforged/internal/logging"
	"github.com/nextgen-2026/futureforged/internal/observability"
	"github.com/nextgen-2026/futureforged/internal/provider"
	"github.com/nextgen-2026/futureforged/internal/tui"
	"github.com/nextgen-2026/futureforged/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// app carries state shared by every subcommand.
type app struct {
	configPath string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "futureforged",
		Short: "FutureForged - personalized study roadmaps for students",
		Long: `FutureForged turns a student's name, year or grade and goals into a
personalized roadmap: learning steps with resources, a weekly schedule,
a motivational quote and a safety note.

Run without arguments to start the interactive terminal UI.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runInteractive,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file (default "+config.DefaultPath+" if present)")

	root.AddCommand(
		newGenerateCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newSchemaCmd(),
	)
	return root
}

// initLogger builds the stderr logger used by non-interactive commands.
func (a *app) initLogger() error {
	logger, err := logging.New(a.cfg.Logging.Mode, a.cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// initTracing installs the tracer provider and returns its shutdown hook.
func (a *app) initTracing(ctx context.Context) (func(context.Context) error, error) {
	return observability.Init(ctx, a.logger, observability.Config{
		ServiceName: "futureforged",
		Version:     version,
	})
}

func (a *app) newGenerator() (*futureforged.Generator, error) {
	client := &http.Client{Timeout: a.cfg.GetTimeout()}
	model, err := provider.NewModel(a.cfg.LLM, client)
	if err != nil {
		return nil, err
	}
	opts := append([]futureforged.GeneratorOption{futureforged.WithLogger(a.logger)}, a.cfg.GeneratorOptions()...)
	return futureforged.NewGenerator(model, opts...), nil
}

// runInteractive starts the terminal UI. The UI owns the terminal, so logs go
// to the configured file.
func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	logger, err := logging.NewFile(a.cfg.Logging.File, a.cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	generator, err := a.newGenerator()
	if err != nil {
		return err
	}
	sess := session.New(generator, session.WithLogger(logger))
	return tui.Run(cmd.Context(), sess, tui.Options{Logger: logger})
}
