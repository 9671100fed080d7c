package main

import (
	"github.com/spf13/cobra"

	"OnlineShop/internal/command"
	"OnlineShop/internal/shop"
	"OnlineShop/pkg/kit"
)

func newReplCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read shop commands from stdin, one per line, until Close",
		Long: `Read shop commands from stdin and print one result per command:

  AddComputer <type> <id> <manufacturer> <model> <price>
  AddComponent <computerId> <id> <type> <manufacturer> <model> <price> <performance> <generation>
  RemoveComponent <type> <computerId>
  AddPeripheral <computerId> <id> <type> <manufacturer> <model> <price> <performance> <connectionType>
  RemovePeripheral <type> <computerId>
  BuyComputer <id>
  BuyBest <budget>
  GetComputerData <id>
  Close`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			log := kit.NewLogger(service, cfg.LogLevel)
			defer func() { _ = log.Sync() }()

			ctrl := shop.NewController(shop.WithCascadeOnPurchase(cfg.CascadeOnPurchase))
			return command.New(ctrl, log).Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
