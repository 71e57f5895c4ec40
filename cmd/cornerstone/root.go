package main

import (
	"github.com/spf13/cobra"

	"github.com/jbweber/homelab/cornerstone/internal/config"
	"github.com/jbweber/homelab/cornerstone/internal/logging"
)

type rootOptions struct {
	configPath string
	debug      bool
	noColor    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "cornerstone",
		Short:        "Cornerstone manages homelab machines, SSH keys and networks",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = opts.debug
			}

			logging.Setup(logging.Config{
				Debug:   cfg.Debug,
				Writer:  cmd.ErrOrStderr(),
				NoColor: opts.noColor,
			})

			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored log output")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	return cmd
}
