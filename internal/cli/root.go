// Package cli wires configuration, storage and services behind the lbg commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/Tocard/DiscordDofusBotLGB/internal/config"
	"github.com/Tocard/DiscordDofusBotLGB/internal/logger"
	"github.com/spf13/cobra"
)

// runtime is filled by the root command before any subcommand runs.
type runtime struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCommand returns the lbg command tree.
func NewRootCommand() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "lbg",
		Short: "Zone reservation registry for the guild",
		Long: `lbg keeps the list of farming zones, who currently holds each one,
and the history of every reservation and release.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.load()
		},
	}
	root.PersistentFlags().StringVarP(&rt.cfgFile, "config", "c", "", "config file (default ./lbg.yaml if present)")

	root.AddCommand(newServeCommand(rt))
	root.AddCommand(newMigrateCommand(rt))
	root.AddCommand(newImportCommand(rt))
	return root
}

func (rt *runtime) load() error {
	config.LoadDotEnv(logger.New("info", "text"))

	v, err := config.NewViper(rt.cfgFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	rt.cfg = cfg
	rt.logger = logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(rt.logger)
	return nil
}
