package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelcap/internal/model"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate catalog documents by loading them into a scratch registry",
		Long: `Validate catalog documents by loading them into a scratch registry.

Without arguments the catalog named by the config file is validated. Files are loaded after the
built-in catalog when the config enables it, so they may extend built-in models.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				if err := a.load(ctx, a.cfg); err != nil {
					return err
				}
				_, err := fmt.Fprintf(out, "ok: %d models\n", len(a.manager.Registry().Models()))
				return err
			}

			ref, err := referenceTable(a.cfg)
			if err != nil {
				return err
			}
			reg := model.NewRegistry(model.WithReference(ref), model.WithPackage(a.cfg.Package), model.WithLogger(slog.Default()))
			if a.cfg.Catalog.Builtin {
				if err := a.loader.LoadBuiltin(ctx, reg); err != nil {
					return err
				}
			}

			for _, path := range args {
				if err := a.loader.LoadFile(ctx, reg, path); err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, "ok: %s\n", path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
