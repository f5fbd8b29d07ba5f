package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ekisa-team/modelcap/internal/dispatch"
	"github.com/ekisa-team/modelcap/internal/model"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		mode          string
		engine        string
		args          []string
		engineArgs    []string
		checkPackages bool
		rscript       string
	)

	cmd := &cobra.Command{
		Use:   "plan <model>",
		Short: "Show how an engine would be called to fit a model",
		Long: `Show how an engine would be called to fit a model.

Model arguments are translated to the engine's names and checked against their allowed values
and ranges. Protected engine arguments are dropped and fit defaults fill the rest.

Examples:
  modelcap plan linear_reg --mode regression --engine glmnet --arg penalty=0.01
  modelcap plan rand_forest -m classification -e ranger --arg trees=500 --engine-arg importance=impurity
  modelcap plan boost_tree -m regression -e xgboost --check-packages`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			ctx := cmd.Context()
			if _, err := a.registry(ctx); err != nil {
				return err
			}

			spec := dispatch.Spec{
				Model:  positional[0],
				Mode:   model.Mode(mode),
				Engine: engine,
			}
			var err error
			if spec.Args, err = parseAssignments(args); err != nil {
				return err
			}
			if spec.EngineArgs, err = parseAssignments(engineArgs); err != nil {
				return err
			}

			var checker dispatch.PackageChecker
			if checkPackages {
				c, err := dispatch.NewRscriptChecker(rscript, 30*time.Second)
				if err != nil {
					return err
				}
				checker = c
			}

			plan, err := dispatch.NewPlanner(a.manager, checker).PlanFit(ctx, spec)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(plan)
			if err != nil {
				return fmt.Errorf("failed to encode plan: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "computational mode")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "engine name")
	cmd.Flags().StringArrayVar(&args, "arg", nil, "model argument as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&engineArgs, "engine-arg", nil, "engine argument as name=value (repeatable)")
	cmd.Flags().BoolVar(&checkPackages, "check-packages", false, "verify required packages with Rscript")
	cmd.Flags().StringVar(&rscript, "rscript", "Rscript", "Rscript binary used by --check-packages")

	return cmd
}

// parseAssignments turns name=value pairs into an argument map. Values that parse as integers,
// floats or booleans keep that type.
func parseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid argument %q: expected name=value", pair)
		}
		out[name] = parseValue(raw)
	}
	return out, nil
}

func parseValue(raw string) any {
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
