// Package catalog declares model types as data. A catalog document lists models, their modes
// and engines, and per engine the dependencies, argument mappings, fit, predict and encoding
// modules. Loading a document replays it into a registry in registration order:
// model, modes, engines, dependencies and arguments, then fit, predict and encoding modules.
package catalog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"go.yaml.in/yaml/v3"

	"github.com/ekisa-team/modelcap/internal/model"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader decodes catalog documents and applies them to registries.
type Loader struct {
	hooks  Hooks
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHooks adds hooks that predict definitions may reference by name.
func WithHooks(hooks Hooks) LoaderOption {
	return func(l *Loader) {
		for name, h := range hooks {
			l.hooks[name] = h
		}
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader that knows the built-in hooks.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		hooks:  DefaultHooks(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Decode validates data against the catalog schema and version constraint and decodes it.
func (l *Loader) Decode(name string, data []byte) (*File, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: invalid YAML: %v", ErrInvalidDocument, name, err)
	}

	schema, err := compiled()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, name, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, name, err)
	}
	if err := validateVersion(file.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &file, nil
}

// LoadFile decodes the document at path and applies it to reg.
func (l *Loader) LoadFile(ctx context.Context, reg *model.Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: failed to read %s: %w", path, err)
	}
	return l.load(ctx, reg, path, data)
}

// LoadGlobs applies every document matching patterns, in lexical order per pattern.
// A path matched by several patterns is loaded once.
func (l *Loader) LoadGlobs(ctx context.Context, reg *model.Registry, patterns []string) error {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("catalog: bad pattern %q: %w", pattern, err)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if !slices.Contains(paths, m) {
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 && len(patterns) > 0 {
		return fmt.Errorf("catalog: %w: %v", ErrNoFiles, patterns)
	}

	for _, path := range paths {
		if err := l.LoadFile(ctx, reg, path); err != nil {
			return err
		}
	}
	return nil
}

// LoadBuiltin applies the catalog bundled with the binary.
func (l *Loader) LoadBuiltin(ctx context.Context, reg *model.Registry) error {
	names, err := doublestar.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return fmt.Errorf("catalog: listing built-in catalog: %w", err)
	}
	slices.Sort(names)

	for _, name := range names {
		data, err := fs.ReadFile(builtinFS, name)
		if err != nil {
			return fmt.Errorf("catalog: failed to read %s: %w", name, err)
		}
		if err := l.load(ctx, reg, name, data); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) load(ctx context.Context, reg *model.Registry, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := l.Decode(name, data)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := l.Apply(reg, file); err != nil {
		return fmt.Errorf("catalog: %s: %w", name, err)
	}

	l.logger.Info("Catalog loaded", "file", name, "models", len(file.Models))
	return nil
}

// Apply replays a decoded document into reg. It stops at the first failing registration.
func (l *Loader) Apply(reg *model.Registry, file *File) error {
	for _, def := range file.Models {
		if err := l.applyModel(reg, def); err != nil {
			return fmt.Errorf("model %q: %w", def.Name, err)
		}
	}
	return nil
}

func (l *Loader) applyModel(reg *model.Registry, def ModelDef) error {
	if def.Extend {
		if !reg.HasModel(def.Name) {
			return &model.NotRegisteredError{What: "model", Name: def.Name}
		}
	} else if err := reg.RegisterModel(def.Name); err != nil {
		return err
	}

	for _, mode := range def.Modes {
		if err := reg.RegisterMode(def.Name, model.Mode(mode)); err != nil {
			return err
		}
	}

	for _, eng := range def.Engines {
		if err := l.applyEngine(reg, def.Name, eng); err != nil {
			return fmt.Errorf("engine %q: %w", eng.Name, err)
		}
	}
	return nil
}

func (l *Loader) applyEngine(reg *model.Registry, name string, eng EngineDef) error {
	for _, mode := range eng.Modes {
		if err := reg.RegisterEngine(name, model.Mode(mode), eng.Name); err != nil {
			return err
		}
	}

	for _, dep := range eng.Dependencies {
		if err := reg.RegisterDependency(name, eng.Name, dep.Pkg, toModes(dep.Modes)...); err != nil {
			return err
		}
	}

	for _, arg := range eng.Args {
		spec := model.ArgSpec{Name: arg.Name, Original: arg.Original, Func: arg.Func, HasSubmodel: arg.HasSubmodel}
		if err := reg.RegisterArg(name, eng.Name, spec); err != nil {
			return err
		}
	}

	for _, fit := range eng.Fit {
		module := model.FitModule{
			Interface: model.Interface(fit.Interface),
			Protect:   fit.Protect,
			Func:      fit.Func,
			Defaults:  fit.Defaults,
			Data:      fit.Data,
		}
		if err := reg.RegisterFit(name, model.Mode(fit.Mode), eng.Name, module); err != nil {
			return err
		}
	}

	for _, pred := range eng.Predict {
		module, err := l.predictModule(pred)
		if err != nil {
			return err
		}
		if err := reg.RegisterPredict(name, model.Mode(pred.Mode), eng.Name, model.PredictType(pred.Type), module); err != nil {
			return err
		}
	}

	for _, enc := range eng.Encoding {
		options := model.Encoding{
			PredictorIndicators: model.Indicators(enc.PredictorIndicators),
			ComputeIntercept:    enc.ComputeIntercept,
			RemoveIntercept:     enc.RemoveIntercept,
			AllowSparseX:        enc.AllowSparseX,
		}
		if err := reg.RegisterEncoding(name, model.Mode(enc.Mode), eng.Name, options); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) predictModule(pred PredictDef) (model.PredictModule, error) {
	pre, err := l.hook(pred.Pre)
	if err != nil {
		return model.PredictModule{}, err
	}
	post, err := l.hook(pred.Post)
	if err != nil {
		return model.PredictModule{}, err
	}
	return model.PredictModule{Pre: pre, Post: post, Func: pred.Func, Args: pred.Args}, nil
}

func (l *Loader) hook(name string) (model.Hook, error) {
	if name == "" {
		return nil, nil
	}
	h, ok := l.hooks[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownHook, name)
	}
	return h, nil
}

func toModes(values []string) []model.Mode {
	modes := make([]model.Mode, len(values))
	for i, v := range values {
		modes[i] = model.Mode(v)
	}
	return modes
}
