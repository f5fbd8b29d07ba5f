package model

import (
	"slices"
)

// CheckSpec reports whether mode and engine form a legal combination for model.
//
// An empty engine acts as a wildcard. An empty mode is never resolved silently: it fails with the
// list of legal modes. ModeUnknown is legal for every model and engine.
func (r *Registry) CheckSpec(model string, mode Mode, engine string) error {
	t, err := r.get(model)
	if err != nil {
		return err
	}
	if err := checkModeMember(model, t, mode); err != nil {
		return err
	}
	return r.checkEngineMode(model, t, mode, engine)
}

// checkModeMember requires mode to be one of the model's registered modes.
func checkModeMember(model string, t *tables, mode Mode) error {
	if mode == ModeUnknown || (mode != "" && slices.Contains(t.modes, mode)) {
		return nil
	}
	return &IncompatibleError{Model: model, Mode: mode, Field: "mode", Legal: toStrings(t.modes)}
}

// checkEngineMode cross-checks engine and mode against the engine table.
func (r *Registry) checkEngineMode(model string, t *tables, mode Mode, engine string) error {
	if r.externallyProvided(model, t) {
		if engine != "" && !t.hasEngine(engine) {
			return &NotRegisteredError{What: "engine", Name: engine, Model: model, Available: t.engineNames()}
		}
		return nil
	}

	if engine != "" && !t.hasEngine(engine) {
		return &NotRegisteredError{What: "engine", Name: engine, Model: model, Available: t.engineNames()}
	}
	if len(t.engines) == 0 {
		return nil
	}

	legal := []string{string(ModeUnknown)}
	for _, row := range t.engines {
		if engine != "" && row.Engine != engine {
			continue
		}
		if !slices.Contains(legal, string(row.Mode)) {
			legal = append(legal, string(row.Mode))
		}
	}
	if mode == "" || !slices.Contains(legal, string(mode)) {
		return &IncompatibleError{Model: model, Engine: engine, Mode: mode, Field: "mode", Legal: legal}
	}

	if engine == "" || mode == ModeUnknown {
		return nil
	}
	engines := t.enginesFor(mode)
	if !slices.Contains(engines, engine) {
		return &IncompatibleError{Model: model, Engine: engine, Mode: mode, Field: "engine", Legal: engines}
	}
	return nil
}

// externallyProvided reports whether the reference table says some of the model's engines live in
// another package and have not registered themselves here yet. Such models only get an engine
// existence check.
func (r *Registry) externallyProvided(model string, t *tables) bool {
	for _, row := range r.referenceRows(model) {
		if row.Package == "" || row.Package == r.pkg {
			continue
		}
		if !t.hasEngineMode(row.Engine, Mode(row.Mode)) {
			return true
		}
	}
	return false
}

// requireEngineMode fails unless (engine, mode) is in the engine table.
func requireEngineMode(model string, t *tables, engine string, mode Mode) error {
	if t.hasEngineMode(engine, mode) {
		return nil
	}
	available := make([]string, 0, len(t.engines))
	for _, row := range t.engines {
		available = append(available, row.Engine+"/"+string(row.Mode))
	}
	return &NotRegisteredError{What: "engine/mode", Name: engine + "/" + string(mode), Model: model, Available: available}
}

func (t *tables) hasEngine(engine string) bool {
	return slices.ContainsFunc(t.engines, func(row EngineRow) bool { return row.Engine == engine })
}

func (t *tables) hasEngineMode(engine string, mode Mode) bool {
	return slices.Contains(t.engines, EngineRow{Engine: engine, Mode: mode})
}

// engineNames returns the distinct engines registered for any mode, in registration order.
func (t *tables) engineNames() []string {
	var names []string
	for _, row := range t.engines {
		if !slices.Contains(names, row.Engine) {
			names = append(names, row.Engine)
		}
	}
	return names
}

// enginesFor returns the engines registered for mode.
func (t *tables) enginesFor(mode Mode) []string {
	var names []string
	for _, row := range t.engines {
		if row.Mode == mode && !slices.Contains(names, row.Engine) {
			names = append(names, row.Engine)
		}
	}
	return names
}

// modesFor returns the modes registered for engine.
func (t *tables) modesFor(engine string) []Mode {
	var modes []Mode
	for _, row := range t.engines {
		if row.Engine == engine && !slices.Contains(modes, row.Mode) {
			modes = append(modes, row.Mode)
		}
	}
	return modes
}
