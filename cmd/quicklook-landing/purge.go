package main

import (
	"github.com/caioricciuti/quicklook-landing/internal/config"
	"github.com/caioricciuti/quicklook-landing/internal/console"
	"github.com/caioricciuti/quicklook-landing/internal/logger"
	"github.com/caioricciuti/quicklook-landing/internal/purge"
	"github.com/spf13/cobra"
)

func newPurgeCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove local configuration, logs and downloaded installers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.configDir
			if dir == "" {
				dir = config.DefaultDir()
			}

			// a broken config must not block its own removal
			downloadDir := ""
			if cfg, err := opts.setup(); err == nil {
				downloadDir = cfg.Download.Dir
			}

			var c console.Confirmer = confirmer
			if force {
				c = console.AlwaysYes{}
			}

			logger.GetLogger().Close()
			_, err := purge.Run(purge.Options{
				ConfigDir:   dir,
				DownloadDir: downloadDir,
			}, printer(cmd), c)
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "remove without confirmation")
	return cmd
}
