package model

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/go-cmp/cmp"
)

// RegisterModel adds a new model type with empty tables. Registering the same name twice fails.
func (r *Registry) RegisterModel(model string) error {
	if r.sealed {
		return ErrSealed
	}
	if err := validateName("model", model); err != nil {
		return err
	}
	if _, exists := r.models[model]; exists {
		return fmt.Errorf("model %q: %w", model, ErrAlreadyExists)
	}

	r.models[model] = &tables{modes: []Mode{ModeUnknown}}
	r.order = append(r.order, model)

	r.logger.Debug("Model registered", "model", model)
	return nil
}

// RegisterMode adds mode to the modes supported by model and to the global mode set.
func (r *Registry) RegisterMode(model string, mode Mode) error {
	t, err := r.writable(model)
	if err != nil {
		return err
	}
	if err := validateName("mode", string(mode)); err != nil {
		return err
	}

	r.addMode(t, mode)
	return nil
}

func (r *Registry) addMode(t *tables, mode Mode) {
	if !slices.Contains(t.modes, mode) {
		t.modes = append(t.modes, mode)
	}
	r.addGlobalMode(mode)
}

// RegisterEngine declares that engine implements model for mode. The mode must already be
// registered for the model. Repeating the call is a no-op.
func (r *Registry) RegisterEngine(model string, mode Mode, engine string) error {
	t, err := r.writable(model)
	if err != nil {
		return err
	}
	if err := validateName("mode", string(mode)); err != nil {
		return err
	}
	if err := validateName("engine", engine); err != nil {
		return err
	}
	if !slices.Contains(t.modes, mode) {
		return &IncompatibleError{Model: model, Mode: mode, Field: "mode", Legal: toStrings(t.modes)}
	}

	if !t.hasEngineMode(engine, mode) {
		t.engines = append(t.engines, EngineRow{Engine: engine, Mode: mode})
		r.logger.Debug("Engine registered", "model", model, "engine", engine, "mode", mode)
	}
	r.addMode(t, mode)
	return nil
}

// RegisterArg maps an argument of model onto the argument name engine expects.
// Identical mappings are stored once.
func (r *Registry) RegisterArg(model, engine string, arg ArgSpec) error {
	t, err := r.writable(model)
	if err != nil {
		return err
	}
	if err := validateName("engine", engine); err != nil {
		return err
	}
	if err := validateArg(arg); err != nil {
		return err
	}

	row := ArgRow{Engine: engine, ArgSpec: cloneArg(arg)}
	if slices.ContainsFunc(t.args, func(existing ArgRow) bool { return cmp.Equal(existing, row, equalOpts) }) {
		return nil
	}
	t.args = append(t.args, row)

	r.logger.Debug("Argument registered", "model", model, "engine", engine, "name", arg.Name, "original", arg.Original)
	return nil
}

// RegisterDependency records that engine needs pkg at fit time. Without modes it applies to
// every mode currently registered for the engine. Packages accumulate per engine and mode.
func (r *Registry) RegisterDependency(model, engine, pkg string, modes ...Mode) error {
	t, err := r.writable(model)
	if err != nil {
		return err
	}
	if err := validateName("engine", engine); err != nil {
		return err
	}
	if err := validateName("package", pkg); err != nil {
		return err
	}

	allowed := t.modesFor(engine)
	if len(allowed) == 0 {
		return &NotRegisteredError{What: "engine", Name: engine, Model: model, Available: t.engineNames()}
	}
	if len(modes) == 0 {
		modes = allowed
	}
	for _, mode := range modes {
		if err := validateName("mode", string(mode)); err != nil {
			return err
		}
		if !slices.Contains(allowed, mode) {
			return &IncompatibleError{Model: model, Engine: engine, Mode: mode, Field: "mode", Legal: toStrings(allowed)}
		}
	}

	deps := slices.Clone(t.deps)
	for _, mode := range modes {
		i := slices.IndexFunc(deps, func(row DependencyRow) bool { return row.Engine == engine && row.Mode == mode })
		if i < 0 {
			deps = append(deps, DependencyRow{Engine: engine, Mode: mode, Packages: []string{pkg}})
			continue
		}
		if !slices.Contains(deps[i].Packages, pkg) {
			deps[i].Packages = append(slices.Clone(deps[i].Packages), pkg)
		}
	}
	t.deps = deps

	r.logger.Debug("Dependency registered", "model", model, "engine", engine, "package", pkg, "modes", modes)
	return nil
}

// RegisterFit stores the fit module for an engine and mode. The engine must be registered for
// the mode. Re-registering an identical module is a no-op; a different one is a conflict.
func (r *Registry) RegisterFit(model string, mode Mode, engine string, fit FitModule) error {
	t, err := r.writableSpec(model, mode, engine)
	if err != nil {
		return err
	}
	if err := validateFit(fit); err != nil {
		return err
	}
	if err := requireEngineMode(model, t, engine, mode); err != nil {
		return err
	}

	row := FitRow{Engine: engine, Mode: mode, FitModule: cloneFit(fit)}
	dup, err := findExisting(r.logger, t.fits,
		func(existing FitRow) bool { return existing.Engine == engine && existing.Mode == mode },
		row,
		&ConflictError{Model: model, Table: "fit", Key: fmt.Sprintf("engine %q and mode %q", engine, mode)},
	)
	if err != nil {
		return err
	}
	if dup {
		r.logger.Debug("Identical fit module already registered", "model", model, "engine", engine, "mode", mode)
		return nil
	}
	t.fits = append(t.fits, row)

	r.logger.Debug("Fit module registered", "model", model, "engine", engine, "mode", mode, "func", fit.Func.String())
	return nil
}

// RegisterPredict stores the predict module producing typ for an engine and mode.
// Gating and conflict rules are those of RegisterFit, with typ part of the key.
func (r *Registry) RegisterPredict(model string, mode Mode, engine string, typ PredictType, pred PredictModule) error {
	if err := validatePredictType(typ); err != nil {
		return err
	}
	t, err := r.writableSpec(model, mode, engine)
	if err != nil {
		return err
	}
	if err := validatePredict(pred); err != nil {
		return err
	}
	if err := requireEngineMode(model, t, engine, mode); err != nil {
		return err
	}

	row := PredictRow{Engine: engine, Mode: mode, Type: typ, PredictModule: clonePredict(pred)}
	dup, err := findExisting(r.logger, t.predicts,
		func(existing PredictRow) bool {
			return existing.Engine == engine && existing.Mode == mode && existing.Type == typ
		},
		row,
		&ConflictError{Model: model, Table: "predict", Key: fmt.Sprintf("engine %q, mode %q and type %q", engine, mode, typ)},
	)
	if err != nil {
		return err
	}
	if dup {
		r.logger.Debug("Identical predict module already registered", "model", model, "engine", engine, "mode", mode, "type", typ)
		return nil
	}
	t.predicts = append(t.predicts, row)

	r.logger.Debug("Predict module registered", "model", model, "engine", engine, "mode", mode, "type", typ)
	return nil
}

// RegisterEncoding stores how predictors must be encoded for an engine and mode.
func (r *Registry) RegisterEncoding(model string, mode Mode, engine string, enc Encoding) error {
	t, err := r.writableSpec(model, mode, engine)
	if err != nil {
		return err
	}
	if err := validateEncoding(enc); err != nil {
		return err
	}
	if err := requireEngineMode(model, t, engine, mode); err != nil {
		return err
	}

	row := EncodingRow{Model: model, Engine: engine, Mode: mode, Encoding: enc}
	dup, err := findExisting(r.logger, t.encodings,
		func(existing EncodingRow) bool { return existing.Engine == engine && existing.Mode == mode },
		row,
		&ConflictError{Model: model, Table: "encoding", Key: fmt.Sprintf("engine %q and mode %q", engine, mode)},
	)
	if err != nil {
		return err
	}
	t.hasEncoding = true
	if dup {
		return nil
	}
	t.encodings = append(t.encodings, row)

	r.logger.Debug("Encoding registered", "model", model, "engine", engine, "mode", mode)
	return nil
}

// writableSpec runs the checks shared by fit, predict and encoding registration.
func (r *Registry) writableSpec(model string, mode Mode, engine string) (*tables, error) {
	t, err := r.writable(model)
	if err != nil {
		return nil, err
	}
	if err := validateName("engine", engine); err != nil {
		return nil, err
	}
	if err := validateName("mode", string(mode)); err != nil {
		return nil, err
	}
	if err := checkModeMember(model, t, mode); err != nil {
		return nil, err
	}
	if err := r.checkEngineMode(model, t, mode, engine); err != nil {
		return nil, err
	}
	return t, nil
}

func cloneArg(arg ArgSpec) ArgSpec {
	arg.Func = cloneCall(arg.Func)
	return arg
}

func cloneCall(c Call) Call {
	c.Range = slices.Clone(c.Range)
	c.Values = slices.Clone(c.Values)
	return c
}

func cloneFit(fit FitModule) FitModule {
	fit.Protect = slices.Clone(fit.Protect)
	fit.Func = cloneCall(fit.Func)
	fit.Defaults = maps.Clone(fit.Defaults)
	fit.Data = maps.Clone(fit.Data)
	return fit
}

func clonePredict(pred PredictModule) PredictModule {
	pred.Func = cloneCall(pred.Func)
	pred.Args = maps.Clone(pred.Args)
	return pred
}
