// Package dispatch turns a user's model choice into the concrete call an engine needs, using the
// metadata held by the registry.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/ekisa-team/modelcap/internal/model"
	"github.com/ekisa-team/modelcap/mapsafe"
)

// Source supplies the registry to plan against. *model.Manager satisfies it.
type Source interface {
	Registry() *model.Registry
}

// PackageChecker reports whether a package is available to the process that runs engines.
type PackageChecker interface {
	Installed(ctx context.Context, pkg string) (bool, error)
}

// Spec is a user's choice of model, mode and engine with its arguments.
type Spec struct {
	Model  string
	Mode   model.Mode
	Engine string
	// Args are keyed by the model's argument names.
	Args map[string]any
	// EngineArgs are passed to the engine under their own names.
	EngineArgs map[string]any
}

// FitPlan is everything needed to call an engine's fitting function.
type FitPlan struct {
	Model     string            `yaml:"model"`
	Mode      model.Mode        `yaml:"mode"`
	Engine    string            `yaml:"engine"`
	Interface model.Interface   `yaml:"interface"`
	Func      model.Call        `yaml:"func"`
	Args      map[string]any    `yaml:"args"`
	Data      map[string]string `yaml:"data,omitempty"`
	Packages  []string          `yaml:"packages"`
	Encoding  model.Encoding    `yaml:"encoding"`
}

// PredictPlan is everything needed to call an engine's prediction function.
type PredictPlan struct {
	Type model.PredictType
	Func model.Call
	Args map[string]any
	Pre  model.Hook
	Post model.Hook
}

// Planner builds fit and predict plans.
type Planner struct {
	source   Source
	packages PackageChecker
	logger   *slog.Logger
}

// NewPlanner creates a Planner. A nil checker skips the package check.
func NewPlanner(source Source, packages PackageChecker) *Planner {
	return &Planner{
		source:   source,
		packages: packages,
		logger:   slog.Default(),
	}
}

// PlanFit validates spec and builds the call for the engine's fitting function. Model arguments
// are renamed to the engine's names, protected engine arguments are dropped, and fit defaults
// fill whatever the caller left unset.
func (p *Planner) PlanFit(ctx context.Context, spec Spec) (*FitPlan, error) {
	reg, err := p.resolve(spec)
	if err != nil {
		return nil, err
	}

	fit, err := reg.Fit(spec.Model, spec.Mode, spec.Engine)
	if err != nil {
		return nil, err
	}

	args, err := p.translate(reg, spec)
	if err != nil {
		return nil, err
	}
	for name, value := range spec.EngineArgs {
		switch {
		case slices.Contains(fit.Protect, name):
			p.logger.Warn("Protected argument cannot be set and was removed", "model", spec.Model, "engine", spec.Engine, "argument", name)
		case args[name] != nil:
			p.logger.Warn("Engine argument duplicates a model argument and was ignored", "model", spec.Model, "engine", spec.Engine, "argument", name)
		default:
			args[name] = value
		}
	}
	for name, value := range fit.Defaults {
		if _, ok := args[name]; !ok {
			args[name] = value
		}
	}

	packages, err := p.requiredPackages(ctx, reg, spec)
	if err != nil {
		return nil, err
	}

	encoding := model.DefaultEncoding
	if encodings, err := reg.Encodings(spec.Model); err == nil {
		for _, row := range encodings.Rows {
			if row.Engine == spec.Engine && row.Mode == spec.Mode {
				encoding = row.Encoding
				break
			}
		}
	}

	return &FitPlan{
		Model:     spec.Model,
		Mode:      spec.Mode,
		Engine:    spec.Engine,
		Interface: fit.Interface,
		Func:      fit.Func,
		Args:      args,
		Data:      maps.Clone(fit.Data),
		Packages:  packages,
		Encoding:  encoding,
	}, nil
}

// PlanPredict builds the call producing typ. Options override the module's registered args.
func (p *Planner) PlanPredict(ctx context.Context, spec Spec, typ model.PredictType, options map[string]any) (*PredictPlan, error) {
	reg, err := p.resolve(spec)
	if err != nil {
		return nil, err
	}

	pred, err := reg.Predict(spec.Model, spec.Mode, spec.Engine, typ)
	if err != nil {
		return nil, err
	}

	args := maps.Clone(pred.Args)
	if args == nil {
		args = make(map[string]any, len(options))
	}
	maps.Copy(args, options)

	return &PredictPlan{
		Type: typ,
		Func: pred.Func,
		Args: args,
		Pre:  pred.Pre,
		Post: pred.Post,
	}, nil
}

// resolve returns the current registry after checking the spec is complete and legal.
func (p *Planner) resolve(spec Spec) (*model.Registry, error) {
	reg := p.source.Registry()
	if reg == nil {
		return nil, ErrNoRegistry
	}
	if spec.Engine == "" {
		return nil, fmt.Errorf("model %q: %w", spec.Model, ErrEngineRequired)
	}
	if spec.Mode == "" || spec.Mode == model.ModeUnknown {
		return nil, fmt.Errorf("model %q: %w", spec.Model, ErrModeRequired)
	}
	if err := reg.CheckSpec(spec.Model, spec.Mode, spec.Engine); err != nil {
		return nil, err
	}
	return reg, nil
}

// translate renames model arguments to engine arguments and checks their values.
func (p *Planner) translate(reg *model.Registry, spec Spec) (map[string]any, error) {
	rows, err := reg.Args(spec.Model)
	if err != nil {
		return nil, err
	}

	known := make(map[string]model.ArgRow)
	for _, row := range rows {
		if row.Engine == spec.Engine {
			known[row.Name] = row
		}
	}

	args := make(map[string]any, len(spec.Args)+len(spec.EngineArgs))
	for name, value := range spec.Args {
		if value == nil {
			continue
		}
		row, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("%w %q for engine %q; available: %v", ErrUnknownArgument, name, spec.Engine, slices.Sorted(maps.Keys(known)))
		}
		if err := checkValue(row, value); err != nil {
			return nil, err
		}
		args[row.Original] = value
	}
	return args, nil
}

// checkValue enforces an argument's allowed values and range. Ranges are expressed on the
// transformed scale when the argument declares a transform.
func checkValue(row model.ArgRow, value any) error {
	if len(row.Func.Values) > 0 {
		if !slices.ContainsFunc(row.Func.Values, func(v any) bool { return reflect.DeepEqual(v, value) }) {
			return fmt.Errorf("%w: %s = %v; allowed values are %v", ErrInvalidValue, row.Name, value, row.Func.Values)
		}
	}
	if len(row.Func.Range) != 2 {
		return nil
	}

	x, ok := mapsafe.Number(value)
	if !ok {
		return nil
	}
	x, ok = transform(row.Func.Trans, x)
	if !ok {
		return fmt.Errorf("%w: %s = %v has no value on the %q scale", ErrInvalidValue, row.Name, value, row.Func.Trans)
	}
	if lo, hi := row.Func.Range[0], row.Func.Range[1]; x < lo || x > hi {
		return fmt.Errorf("%w: %s = %v is outside [%v, %v]", ErrInvalidValue, row.Name, value, lo, hi)
	}
	return nil
}

// transform puts x on the scale named by trans. It reports false when x has no value there or
// the scale is unknown.
func transform(trans string, x float64) (float64, bool) {
	switch trans {
	case "":
		return x, true
	case "log10":
		return math.Log10(x), x > 0
	case "log2":
		return math.Log2(x), x > 0
	case "log":
		return math.Log(x), x > 0
	}
	return 0, false
}

// requiredPackages returns the engine's dependencies for the mode, failing when any is missing.
func (p *Planner) requiredPackages(ctx context.Context, reg *model.Registry, spec Spec) ([]string, error) {
	deps, err := reg.Dependencies(spec.Model)
	if err != nil {
		return nil, err
	}

	var packages []string
	for _, row := range deps {
		if row.Engine == spec.Engine && row.Mode == spec.Mode {
			packages = append(packages, row.Packages...)
		}
	}
	if p.packages == nil {
		return packages, nil
	}

	var missing []string
	for _, pkg := range packages {
		ok, err := p.packages.Installed(ctx, pkg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPackageCheckFail, pkg, err)
		}
		if !ok {
			missing = append(missing, pkg)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w for engine %q: %v", ErrMissingPackages, spec.Engine, missing)
	}
	return packages, nil
}
