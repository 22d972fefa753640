package main

import (
	"github.com/caioricciuti/quicklook-landing/internal/logger"
	"github.com/caioricciuti/quicklook-landing/internal/metrics"
	"github.com/caioricciuti/quicklook-landing/internal/release"
	"github.com/caioricciuti/quicklook-landing/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.setup()
			if err != nil {
				return err
			}
			defer logger.GetLogger().Close()

			if addr == "" {
				addr = cfg.Server.Addr
			}

			var (
				clientOpts   []release.ClientOption
				providerOpts []release.ProviderOption
				serverOpts   = []web.Option{web.WithAddr(addr)}
			)
			if cfg.Server.MetricsEnabled {
				m := metrics.New()
				clientOpts = append(clientOpts, release.WithObserver(m))
				providerOpts = append(providerOpts, release.WithOnChange(func(s release.ViewState) {
					if !s.Succeeded() {
						return
					}
					installer := ""
					if s.Installer != nil {
						installer = s.Installer.Name
					}
					m.SetRelease(s.Version, installer)
				}))
				serverOpts = append(serverOpts, web.WithMetrics(m))
			}

			client := newClient(cfg, clientOpts...)
			provider := release.NewProvider(client, providerOpts...)
			server := web.New(provider, client.ReleasesPageURL(), serverOpts...)

			printer(cmd).Info("Serving QuickLook landing page on http://%s", addr)
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr from config)")
	return cmd
}
