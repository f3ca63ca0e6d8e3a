// Package cli implements the sdfmine command tree.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/SDF-Library-Mining/internal/config"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// Version information, overwritten by cmd/sdfmine.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions are the persistent flags shared by every subcommand.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Verbose    bool
	NoColor    bool
	Timeout    time.Duration
}

// CLIContext is built once per invocation and handed to subcommands through
// the command context.
type CLIContext struct {
	Config  *config.Config
	Logger  logging.Logger
	Verbose bool
	NoColor bool
	Timeout time.Duration
}

type cliContextKey struct{}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	root := &cobra.Command{
		Use:   "sdfmine",
		Short: "sdfmine mines SDF compound libraries for shared, nucleoside-like entries",
		Long: "sdfmine extracts registry numbers from SDF-style compound libraries,\n" +
			"intersects two libraries, resolves shared entries to SMILES through a\n" +
			"structure resolver and scores them against ten reference nucleosides.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := opts.setup()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./sdfmine.yaml)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error); overrides log.level")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "overall operation timeout (0 disables)")

	root.AddCommand(
		newExtractCmd(),
		newIntersectCmd(),
		newResolveCmd(),
		newScoreCmd(),
		newRunCmd(),
		newConfigCmd(),
	)
	return root
}

// setup loads configuration and installs the process logger.
func (o *RootOptions) setup() (*CLIContext, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "config initialization failed")
	}

	logger, err := logging.NewLogger(o.logConfig(cfg.Log))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "logger initialization failed")
	}
	logging.SetDefault(logger)
	if o.NoColor {
		color.NoColor = true
	}

	return &CLIContext{
		Config:  cfg,
		Logger:  logger,
		Verbose: o.Verbose,
		NoColor: o.NoColor,
		Timeout: o.Timeout,
	}, nil
}

// logConfig applies --log-level and --verbose on top of the log section.
// Logs go to stderr unless the section names another sink.
func (o *RootOptions) logConfig(lc config.LogConfig) logging.LogConfig {
	level := lc.Level
	switch {
	case o.Verbose:
		level = "debug"
	case o.LogLevel != "":
		level = strings.ToLower(o.LogLevel)
	}
	out := lc.Output
	if out == "" {
		out = "stderr"
	}
	return logging.LogConfig{
		Level:            level,
		Format:           lc.Format,
		OutputPaths:      []string{out},
		ErrorOutputPaths: []string{"stderr"},
		EnableCaller:     lc.EnableCaller,
	}
}

// GetCLIContext returns the CLIContext stored by the root command.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.InvalidParam("command context is nil")
	}
	if cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext); ok && cliCtx != nil {
		return cliCtx, nil
	}
	return nil, errors.InvalidParam("CLIContext not found in command context")
}

// operationContext bounds a command by --timeout when one is set.
func operationContext(cmd *cobra.Command, cliCtx *CLIContext) (context.Context, context.CancelFunc) {
	if cliCtx.Timeout > 0 {
		return context.WithTimeout(cmd.Context(), cliCtx.Timeout)
	}
	return context.WithCancel(cmd.Context())
}

// Execute runs the command tree and prints any returned error.
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	PrintError(root, err)
	return err
}

//Personal.AI order the ending
