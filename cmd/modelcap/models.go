package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelcap/internal/model"
)

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List registered model types with their modes and engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry(cmd.Context())
			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("model", "modes", "engines")
			for _, name := range reg.Models() {
				modes, err := reg.ModelModes(name)
				if err != nil {
					return err
				}
				engines, err := reg.Engines(name)
				if err != nil {
					return err
				}
				t.Row(name, joinModes(modes), strings.Join(engineNames(engines), ", "))
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}

func joinModes(modes []model.Mode) string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func engineNames(rows []model.EngineRow) []string {
	var names []string
	for _, row := range rows {
		if !slices.Contains(names, row.Engine) {
			names = append(names, row.Engine)
		}
	}
	return names
}
