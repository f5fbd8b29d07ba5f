package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelcap/internal/model"
)

func newCheckCmd(a *app) *cobra.Command {
	var mode, engine string

	cmd := &cobra.Command{
		Use:   "check <model>",
		Short: "Check that a model, mode and engine combination is legal",
		Long: `Check that a model, mode and engine combination is legal.

An empty engine matches any engine and the mode "unknown" defers the engine check.

Examples:
  modelcap check rand_forest --mode classification --engine ranger
  modelcap check linear_reg --mode regression`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry(cmd.Context())
			if err != nil {
				return err
			}

			if err := reg.CheckSpec(args[0], model.Mode(mode), engine); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (mode %q, engine %q)\n", args[0], mode, engine)
			return err
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "computational mode (required)")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "engine name (empty matches any engine)")
	_ = cmd.MarkFlagRequired("mode")

	return cmd
}
