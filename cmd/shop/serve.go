package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"OnlineShop/internal/auth"
	"OnlineShop/internal/catalog"
	"OnlineShop/internal/shop"
	"OnlineShop/pkg/kit"
)

func newServeCmd(opts *rootOpts) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			log := kit.NewLogger(service, cfg.LogLevel)
			defer func() { _ = log.Sync() }()

			authSrv := &auth.Server{
				Log:   log,
				Store: auth.NewMemStore(),
				JWT:   auth.NewTokenMaker(cfg.JWTSecret, cfg.TokenTTL),
			}
			if cfg.StaffEmail != "" {
				if err := authSrv.SeedStaff(cmd.Context(), cfg.StaffEmail, cfg.StaffPassword); err != nil {
					return fmt.Errorf("seeding staff account: %w", err)
				}
				log.Info("staff account seeded", zap.String("email", cfg.StaffEmail))
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			s := &catalog.Server{
				Shop:   shop.NewController(shop.WithCascadeOnPurchase(cfg.CascadeOnPurchase)),
				Ledger: catalog.NewMemLedger(),
				Log:    log,
			}
			h := catalog.NewHandler(s, catalog.HTTPDeps{
				Log:            log,
				Service:        service,
				Registry:       reg,
				Auth:           authSrv,
				MetricsEnabled: cfg.MetricsEnabled,
				MetricsToken:   cfg.MetricsToken,
			})

			if err := kit.RunHTTPServer(cmd.Context(), ":"+cfg.Port, h, log); err != nil {
				log.Error("http server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config)")
	return cmd
}
