package model

import (
	"fmt"
	"slices"
)

// HasModel reports whether model has been registered.
func (r *Registry) HasModel(model string) bool {
	_, ok := r.models[model]
	return ok
}

// Models returns the registered model types in registration order.
func (r *Registry) Models() []string {
	return slices.Clone(r.order)
}

// Modes returns the global mode set.
func (r *Registry) Modes() []Mode {
	return slices.Clone(r.modes)
}

// ModelModes returns the modes registered for model, starting with ModeUnknown.
func (r *Registry) ModelModes(model string) ([]Mode, error) {
	t, err := r.get(model)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.modes), nil
}

// Engines returns the engine/mode pairs registered for model.
func (r *Registry) Engines(model string) ([]EngineRow, error) {
	t, err := r.get(model)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.engines), nil
}

// Args returns the argument mappings registered for model.
func (r *Registry) Args(model string) ([]ArgRow, error) {
	t, err := r.get(model)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.args), nil
}

// Dependencies returns the package dependencies registered for model.
func (r *Registry) Dependencies(model string) ([]DependencyRow, error) {
	t, err := r.get(model)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.deps), nil
}

// Fits returns the fit modules registered for model.
func (r *Registry) Fits(model string) ([]FitRow, error) {
	t, err := r.get(model)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.fits), nil
}

// Fit returns the fit module registered for an engine and mode.
func (r *Registry) Fit(model string, mode Mode, engine string) (FitRow, error) {
	t, err := r.get(model)
	if err != nil {
		return FitRow{}, err
	}
	i := slices.IndexFunc(t.fits, func(row FitRow) bool { return row.Engine == engine && row.Mode == mode })
	if i < 0 {
		return FitRow{}, &NotRegisteredError{What: "fit module", Name: engine + "/" + string(mode), Model: model}
	}
	return t.fits[i], nil
}

// PredictByType returns the predict modules of model that produce typ. A model without any
// predict module fails with ErrNoPredict; one without modules for typ fails with ErrNoPredictType.
func (r *Registry) PredictByType(model string, typ PredictType) ([]PredictRow, error) {
	t, err := r.get(model)
	if err != nil {
		return nil, err
	}
	if len(t.predicts) == 0 {
		return nil, fmt.Errorf("model %q: %w", model, ErrNoPredict)
	}

	var rows []PredictRow
	for _, row := range t.predicts {
		if row.Type == typ {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("model %q, type %q: %w", model, typ, ErrNoPredictType)
	}
	return rows, nil
}

// Predict returns the predict module for an engine, mode and prediction type.
func (r *Registry) Predict(model string, mode Mode, engine string, typ PredictType) (PredictRow, error) {
	rows, err := r.PredictByType(model, typ)
	if err != nil {
		return PredictRow{}, err
	}
	i := slices.IndexFunc(rows, func(row PredictRow) bool { return row.Engine == engine && row.Mode == mode })
	if i < 0 {
		return PredictRow{}, &NotRegisteredError{What: "predict module", Name: fmt.Sprintf("%s/%s/%s", engine, mode, typ), Model: model}
	}
	return rows[i], nil
}

// Encodings returns the encodings of model. A model that never registered an encoding gets
// DefaultEncoding for every engine/mode pair, with Derived set.
func (r *Registry) Encodings(model string) (Encodings, error) {
	t, err := r.get(model)
	if err != nil {
		return Encodings{}, err
	}
	return encodingsOf(model, t), nil
}

// encodingsOf returns the registered encodings of t, or the defaults for each engine and mode
// while none are registered.
func encodingsOf(model string, t *tables) Encodings {
	if t.hasEncoding {
		return Encodings{Rows: slices.Clone(t.encodings)}
	}

	rows := make([]EncodingRow, 0, len(t.engines))
	for _, eng := range t.engines {
		rows = append(rows, EncodingRow{Model: model, Engine: eng.Engine, Mode: eng.Mode, Encoding: DefaultEncoding})
	}
	return Encodings{Rows: rows, Derived: true}
}
