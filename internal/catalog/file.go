package catalog

import "github.com/ekisa-team/modelcap/internal/model"

// File is one catalog document.
type File struct {
	Version string     `json:"version" yaml:"version"`
	Models  []ModelDef `json:"models"  yaml:"models"`
}

// ModelDef declares a model type and everything its engines provide. With Extend set the model
// must already exist and only the engines are added.
type ModelDef struct {
	Name    string      `json:"name"              yaml:"name"              jsonschema:"minLength=1"`
	Extend  bool        `json:"extend,omitempty"  yaml:"extend,omitempty"`
	Modes   []string    `json:"modes,omitempty"   yaml:"modes,omitempty"`
	Engines []EngineDef `json:"engines,omitempty" yaml:"engines,omitempty"`
}

// EngineDef declares one engine of a model.
type EngineDef struct {
	Name         string          `json:"name"                   yaml:"name"                   jsonschema:"minLength=1"`
	Modes        []string        `json:"modes"                  yaml:"modes"                  jsonschema:"minItems=1"`
	Dependencies []DependencyDef `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Args         []ArgDef        `json:"args,omitempty"         yaml:"args,omitempty"`
	Fit          []FitDef        `json:"fit,omitempty"          yaml:"fit,omitempty"`
	Predict      []PredictDef    `json:"predict,omitempty"      yaml:"predict,omitempty"`
	Encoding     []EncodingDef   `json:"encoding,omitempty"     yaml:"encoding,omitempty"`
}

// DependencyDef names a package the engine needs. Without modes it applies to all of the
// engine's modes.
type DependencyDef struct {
	Pkg   string   `json:"pkg"             yaml:"pkg"             jsonschema:"minLength=1"`
	Modes []string `json:"modes,omitempty" yaml:"modes,omitempty"`
}

// ArgDef maps a model argument to the engine's argument name.
type ArgDef struct {
	Name        string     `json:"name"                   yaml:"name"                   jsonschema:"minLength=1"`
	Original    string     `json:"original"               yaml:"original"               jsonschema:"minLength=1"`
	Func        model.Call `json:"func"                   yaml:"func"`
	HasSubmodel bool       `json:"has_submodel,omitempty" yaml:"has_submodel,omitempty"`
}

// FitDef is the fit module of one mode.
type FitDef struct {
	Mode      string            `json:"mode"           yaml:"mode"`
	Interface string            `json:"interface"      yaml:"interface"      jsonschema:"enum=data.frame,enum=formula,enum=matrix"`
	Protect   []string          `json:"protect"        yaml:"protect"`
	Func      model.Call        `json:"func"           yaml:"func"`
	Defaults  map[string]any    `json:"defaults"       yaml:"defaults"`
	Data      map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// PredictDef is the predict module of one mode and prediction type. Pre and Post name hooks
// resolved through the loader's Hooks.
type PredictDef struct {
	Mode string         `json:"mode"           yaml:"mode"`
	Type string         `json:"type"           yaml:"type" jsonschema:"enum=raw,enum=numeric,enum=class,enum=prob,enum=conf_int,enum=pred_int,enum=quantile,enum=time,enum=survival,enum=linear_pred,enum=hazard"`
	Pre  string         `json:"pre,omitempty"  yaml:"pre,omitempty"`
	Post string         `json:"post,omitempty" yaml:"post,omitempty"`
	Func model.Call     `json:"func"           yaml:"func"`
	Args map[string]any `json:"args"           yaml:"args"`
}

// EncodingDef is the predictor encoding of one mode.
type EncodingDef struct {
	Mode                string `json:"mode"                 yaml:"mode"`
	PredictorIndicators string `json:"predictor_indicators" yaml:"predictor_indicators" jsonschema:"enum=none,enum=traditional,enum=one_hot"`
	ComputeIntercept    bool   `json:"compute_intercept"    yaml:"compute_intercept"`
	RemoveIntercept     bool   `json:"remove_intercept"     yaml:"remove_intercept"`
	AllowSparseX        bool   `json:"allow_sparse_x"       yaml:"allow_sparse_x"`
}
