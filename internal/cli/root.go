// Package cli implements the vsv command.
package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ForrSiis/vsv/internal/config"
	"github.com/ForrSiis/vsv/internal/logging"
)

// app carries state shared by all commands of one invocation.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd builds the vsv command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vsv",
		Short: "Decode Versatile Separated Values documents",
		Long: `vsv decodes VSV documents and prints their rows.

A header row starts with a doubled bracket ({{menu}}, [[name]] [[age]]).
A data row starts with its delimiter, which splits the rest of the line
(,Ann,34 or |a|b|). Blank lines and header lines without fields are skipped.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/vsv/config.toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text, json")

	rootCmd.AddCommand(newDecodeCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the vsv command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path, optional := a.cfgFile, false
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path, optional = p, true
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}

	a.cfg = cfg
	a.logger = logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	a.logger.Debug("configuration loaded", "path", path, "format", cfg.Format)
	return nil
}
