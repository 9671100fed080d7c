package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"OnlineShop/internal/config"
)

const service = "shop"

type rootOpts struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:          "shop",
		Short:        "Online computer shop",
		Long:         `An in-memory computer shop: serve the storefront over HTTP or drive the catalog from a command script.`,
		Version:      version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "",
		"config file (settings can also come from SHOP_* environment variables)")

	cmd.AddCommand(newServeCmd(opts), newReplCmd(opts))
	return cmd
}

func (o *rootOpts) load() (config.Config, error) {
	return config.Load(viper.New(), o.cfgFile)
}
