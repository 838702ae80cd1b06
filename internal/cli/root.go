// Package cli wires the ruleofthree commands.
package cli

import (
	"github.com/spf13/cobra"

	"ruleofthree/internal/config"
	"ruleofthree/internal/observability"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath    string
	Locale        string
	StorageDriver string
	StoragePath   string

	cfg config.Config
}

// NewRootCommand creates the root command for the ruleofthree CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "ruleofthree",
		Short:        "Rule of three calculator",
		Long:         "Solves direct and inverse proportions step by step and keeps the last five calculations.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "", "message locale (pt-BR|en)")
	cmd.PersistentFlags().StringVar(&opts.StorageDriver, "storage-driver", "", "history storage (memory|file|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.StoragePath, "storage-path", "", "storage directory (file) or database (sqlite)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newCalcCommand(opts))
	cmd.AddCommand(newExampleCommand(opts))
	cmd.AddCommand(newHistoryCommand(opts))

	return cmd
}

// load resolves the configuration, applies flag overrides and installs
// the logger.
func (o *RootOptions) load() error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}

	if o.Locale != "" {
		cfg.Locale = o.Locale
	}
	if o.StorageDriver != "" {
		cfg.Storage.Driver = o.StorageDriver
	}
	if o.StoragePath != "" {
		cfg.Storage.Path = o.StoragePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		return err
	}

	o.cfg = cfg
	return nil
}
