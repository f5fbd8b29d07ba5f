package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelcap/internal/catalog"
	"github.com/ekisa-team/modelcap/internal/config"
)

func newSchemaCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:       "schema [catalog|config]",
		Short:     "Print the JSON schema of catalog documents or of the config file",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"catalog", "config"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] == "config" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.Schema())
				return err
			}

			schema, err := catalog.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return err
		},
	}
}
