// Package cli implements the glassgen command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/glassgen"
	"github.com/hupe1980/glassgen/internal/config"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Timeout    time.Duration
}

// NewRootCommand creates the root command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "glassgen",
		Short: "Screen oxide glass compositions by predicted properties",
		Long: "glassgen samples random oxide glass compositions inside the bounds of the\n" +
			"training datasets, predicts their properties with pretrained surrogate\n" +
			"networks and keeps the compositions inside the configured target windows.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "glassgen.yaml", "config file path")
	pf.StringVar(&opts.LogLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	pf.DurationVar(&opts.Timeout, "timeout", 0, "abort the run after this duration (0 disables)")

	cmd.AddCommand(
		newRunCmd(opts),
		newBoundsCmd(opts),
		newModelsCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
		if _, err := cfg.Log.SlogLevel(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger builds the pipeline logger described by cfg, writing to w.
func newLogger(cfg config.LogConfig, w io.Writer) *glassgen.Logger {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(cfg.Format, "json") {
		return glassgen.NewLogger(slog.NewJSONHandler(w, hopts))
	}
	return glassgen.NewLogger(slog.NewTextHandler(w, hopts))
}

// commandContext applies the global timeout.
func commandContext(cmd *cobra.Command, opts *RootOptions) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return context.WithCancel(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "glassgen %s\ncommit: %s\nbuilt: %s\n", Version, GitCommit, BuildDate)
			return err
		},
	}
}
