package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the supported language pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		resolverService, err := a.newResolver()
		if err != nil {
			return err
		}

		pairs, err := resolverService.SupportedPairs(cmd.Context())
		if err != nil {
			a.logger.Error("error getting supported pairs", zap.Error(err))
			return err
		}

		if len(pairs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No language pairs found.")
			return nil
		}
		for _, pair := range pairs {
			fmt.Fprintln(cmd.OutOrStdout(), pair)
		}
		return nil
	},
}
