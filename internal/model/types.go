package model

import "slices"

// Mode is the predictive task a model performs.
type Mode string

const (
	// ModeClassification predicts a class label.
	ModeClassification Mode = "classification"

	// ModeRegression predicts a numeric outcome.
	ModeRegression Mode = "regression"

	// ModeCensoredRegression predicts a possibly censored time-to-event outcome.
	ModeCensoredRegression Mode = "censored regression"

	// ModeUnknown means the mode has not been committed yet. It is legal for every model and engine.
	ModeUnknown Mode = "unknown"
)

// builtinModes seeds the global mode set of every new registry.
var builtinModes = []Mode{ModeClassification, ModeRegression, ModeCensoredRegression, ModeUnknown}

// Interface is the calling convention of an engine's fitting function.
type Interface string

const (
	// InterfaceDataFrame passes predictors and outcome as a data frame.
	InterfaceDataFrame Interface = "data.frame"

	// InterfaceFormula passes a model formula and a data frame.
	InterfaceFormula Interface = "formula"

	// InterfaceMatrix passes a predictor matrix and an outcome vector.
	InterfaceMatrix Interface = "matrix"
)

// Interfaces lists every calling convention accepted in a fit module.
var Interfaces = []Interface{InterfaceDataFrame, InterfaceFormula, InterfaceMatrix}

// Valid reports whether i is a known calling convention.
func (i Interface) Valid() bool {
	return slices.Contains(Interfaces, i)
}

// PredictType identifies the kind of prediction a predict module produces.
type PredictType string

const (
	PredictRaw        PredictType = "raw"
	PredictNumeric    PredictType = "numeric"
	PredictClass      PredictType = "class"
	PredictProb       PredictType = "prob"
	PredictConfInt    PredictType = "conf_int"
	PredictPredInt    PredictType = "pred_int"
	PredictQuantile   PredictType = "quantile"
	PredictTime       PredictType = "time"
	PredictSurvival   PredictType = "survival"
	PredictLinearPred PredictType = "linear_pred"
	PredictHazard     PredictType = "hazard"
)

// PredictTypes lists every prediction type in its canonical order.
var PredictTypes = []PredictType{
	PredictRaw, PredictNumeric, PredictClass, PredictProb, PredictConfInt, PredictPredInt,
	PredictQuantile, PredictTime, PredictSurvival, PredictLinearPred, PredictHazard,
}

// Valid reports whether t is a known prediction type.
func (t PredictType) Valid() bool {
	return slices.Contains(PredictTypes, t)
}

// Indicators controls how categorical predictors are expanded before reaching an engine.
type Indicators string

const (
	// IndicatorsNone leaves factors as they are.
	IndicatorsNone Indicators = "none"

	// IndicatorsTraditional creates one column fewer than there are levels.
	IndicatorsTraditional Indicators = "traditional"

	// IndicatorsOneHot creates one column per level.
	IndicatorsOneHot Indicators = "one_hot"
)

// IndicatorOptions lists every accepted indicator expansion.
var IndicatorOptions = []Indicators{IndicatorsNone, IndicatorsTraditional, IndicatorsOneHot}

// Valid reports whether i is a known indicator expansion.
func (i Indicators) Valid() bool {
	return slices.Contains(IndicatorOptions, i)
}

// Transforms are the scales a tuning range may be expressed on.
var Transforms = []string{"log", "log2", "log10"}

// Call names a function to invoke and, for tuning arguments, the metadata describing its values.
type Call struct {
	Package string    `json:"pkg,omitempty"    yaml:"pkg,omitempty"`
	Func    string    `json:"fun"              yaml:"fun"`
	Range   []float64 `json:"range,omitempty"  yaml:"range,omitempty"  jsonschema:"minItems=2,maxItems=2"`
	Trans   string    `json:"trans,omitempty"  yaml:"trans,omitempty"  jsonschema:"enum=log,enum=log2,enum=log10"`
	Values  []any     `json:"values,omitempty" yaml:"values,omitempty"`
}

// String renders the call as pkg::fun.
func (c Call) String() string {
	if c.Package == "" {
		return c.Func
	}
	return c.Package + "::" + c.Func
}

// ArgSpec maps an argument exposed by a model type onto the name its engine expects.
type ArgSpec struct {
	// Name is the argument name callers of the model type use.
	Name string
	// Original is the argument name of the engine function.
	Original    string
	Func        Call
	HasSubmodel bool
}

// FitModule is what the registry needs to fit a model with one engine and mode.
type FitModule struct {
	Interface Interface
	// Protect lists arguments the dispatcher supplies itself; callers cannot override them.
	Protect  []string
	Func     Call
	Defaults map[string]any
	// Data optionally maps engine-specific data argument names.
	Data map[string]string
}

// Hook transforms data on its way into or out of a prediction function.
type Hook func(value any, args map[string]any) (any, error)

// PredictModule is what the registry needs to produce one prediction type.
type PredictModule struct {
	Pre  Hook
	Post Hook
	Func Call
	Args map[string]any
}

// Encoding describes how predictors are encoded before they reach an engine.
type Encoding struct {
	PredictorIndicators Indicators `json:"predictor_indicators" yaml:"predictor_indicators"`
	ComputeIntercept    bool       `json:"compute_intercept"    yaml:"compute_intercept"`
	RemoveIntercept     bool       `json:"remove_intercept"     yaml:"remove_intercept"`
	AllowSparseX        bool       `json:"allow_sparse_x"       yaml:"allow_sparse_x"`
}

// DefaultEncoding is reported for models that never registered an encoding.
var DefaultEncoding = Encoding{
	PredictorIndicators: IndicatorsTraditional,
	ComputeIntercept:    true,
	RemoveIntercept:     true,
	AllowSparseX:        false,
}

// EngineRow is one entry of a model's engine/mode compatibility matrix.
type EngineRow struct {
	Engine string
	Mode   Mode
}

// ArgRow is an argument mapping registered for an engine.
type ArgRow struct {
	Engine string
	ArgSpec
}

// DependencyRow lists the packages an engine needs at fit time for one mode.
type DependencyRow struct {
	Engine   string
	Mode     Mode
	Packages []string
}

// FitRow is a fit module keyed by engine and mode.
type FitRow struct {
	Engine string
	Mode   Mode
	FitModule
}

// PredictRow is a predict module keyed by engine, mode and prediction type.
type PredictRow struct {
	Engine string
	Mode   Mode
	Type   PredictType
	PredictModule
}

// EncodingRow is an encoding keyed by engine and mode.
type EncodingRow struct {
	Model  string
	Engine string
	Mode   Mode
	Encoding
}

// Encodings is the result of an encoding lookup. Derived is set when the model never registered
// an encoding and Rows were built from DefaultEncoding for each engine/mode pair.
type Encodings struct {
	Rows    []EncodingRow
	Derived bool
}
