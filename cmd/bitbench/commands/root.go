package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ib-77/bitbench/internal/config"
	"github.com/ib-77/bitbench/internal/history"
	"github.com/ib-77/bitbench/pkg/plugin"
	"github.com/ib-77/bitbench/pkg/plugins"
	"github.com/ib-77/bitbench/pkg/rop/core"
)

var (
	flagConfig   string
	flagLogLevel string
	flagWorkers  int
)

var rootCmd = &cobra.Command{
	Use:           "bitbench",
	Short:         "Run bit-level analyzers and operators on binary files",
	Long:          `bitbench loads binary files as bit containers and runs analyzer and operator plugins on them, with progress reporting and Ctrl+C cancellation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file or directory (default: ./.bitbench.yml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Concurrent plugin computations (default: from config)")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// env is what every subcommand needs, built from flags and config.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *plugin.Registry
}

func setup() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	return &env{
		cfg:      cfg,
		logger:   logger,
		registry: plugins.Default(),
	}, nil
}

// context carries the configured execution options.
func (e *env) context(parent context.Context) context.Context {
	ctx := core.WithWorkerOptions(parent, e.cfg.Workers)
	return core.WithProgressOptions(ctx, e.cfg.ProgressInterval)
}

// openHistory returns nil when history is disabled.
func (e *env) openHistory() (*history.Store, error) {
	if e.cfg.History.Disabled {
		return nil, nil
	}
	if !e.cfg.History.InMemory {
		if err := os.MkdirAll(e.cfg.History.Path, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}
	return history.Open(history.Config{
		Path:     e.cfg.History.Path,
		InMemory: e.cfg.History.InMemory,
		Logger:   e.logger,
	})
}
