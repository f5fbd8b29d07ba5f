package model

import (
	"log/slog"
	"slices"

	"github.com/ekisa-team/modelcap/internal/reftable"
)

// Registry is the catalog of model types, their modes and engines, and the metadata needed to fit
// and predict with each engine. Registration is append-only.
//
// A Registry does no locking. Populate it from a single goroutine, then Seal it before sharing it;
// Manager does both.
type Registry struct {
	models    map[string]*tables
	order     []string
	modes     []Mode
	reference *reftable.Table
	pkg       string
	logger    *slog.Logger
	sealed    bool
}

// tables holds everything registered for one model type.
type tables struct {
	modes     []Mode
	engines   []EngineRow
	deps      []DependencyRow
	args      []ArgRow
	fits      []FitRow
	predicts  []PredictRow
	encodings []EncodingRow
	// hasEncoding is false until the first encoding registration creates the table.
	hasEncoding bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithReference sets the static model/engine/mode reference table.
func WithReference(table *reftable.Table) Option {
	return func(r *Registry) {
		r.reference = table
	}
}

// WithPackage names the package whose registrations are considered self-registered when
// compared against the reference table.
func WithPackage(name string) Option {
	return func(r *Registry) {
		r.pkg = name
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		models: make(map[string]*tables),
		modes:  slices.Clone(builtinModes),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Seal makes the registry read-only. Every later mutation fails with ErrSealed.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// writable returns the tables of a registered model, refusing when the registry is sealed.
func (r *Registry) writable(model string) (*tables, error) {
	if r.sealed {
		return nil, ErrSealed
	}
	return r.get(model)
}

// get returns the tables of a registered model.
func (r *Registry) get(model string) (*tables, error) {
	t, ok := r.models[model]
	if !ok {
		return nil, &NotRegisteredError{What: "model", Name: model}
	}
	return t, nil
}

// addGlobalMode records mode in the global mode set.
func (r *Registry) addGlobalMode(mode Mode) {
	if !slices.Contains(r.modes, mode) {
		r.modes = append(r.modes, mode)
	}
}

// referenceRows returns the reference table entries for a model.
func (r *Registry) referenceRows(model string) []reftable.Row {
	if r.reference == nil {
		return nil
	}
	return r.reference.ForModel(model)
}
