package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelcap/internal/catalog"
	"github.com/ekisa-team/modelcap/internal/config"
	"github.com/ekisa-team/modelcap/internal/env"
	"github.com/ekisa-team/modelcap/internal/envvar"
	"github.com/ekisa-team/modelcap/internal/logger"
	"github.com/ekisa-team/modelcap/internal/model"
	"github.com/ekisa-team/modelcap/internal/reftable"
)

var version = "dev"

// app is the state shared by every command.
type app struct {
	configPath string
	schemaPath string
	logLevel   string

	cfg     *config.Config
	loader  *catalog.Loader
	manager *model.Manager
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "modelcap",
		Short: "Inspect and validate the model capability registry",
		Long: `modelcap loads model definitions into a registry of model types, modes and engines,
and answers questions about which combinations are legal and how each engine is called.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultConfigFile(),
		"config file (a missing file uses the built-in defaults)")
	root.PersistentFlags().StringVar(&a.schemaPath, "schema", "",
		"config JSON schema (default: embedded schema)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"log level: debug, info, warn or error (default from config or "+envvar.ModelcapLogLevel+")")

	root.AddCommand(
		newModelsCmd(a),
		newShowCmd(a),
		newCheckCmd(a),
		newPlanCmd(a),
		newValidateCmd(a),
		newSchemaCmd(a),
		newWatchCmd(a),
	)

	return root
}

// init loads .env, the config file and the logger. It runs before every command.
func (a *app) init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadOrDefault(a.configPath, a.schemaPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.setupLogger(); err != nil {
		return err
	}

	a.loader = catalog.NewLoader()
	a.manager = model.NewManager()
	return nil
}

func (a *app) setupLogger() error {
	name := a.logLevel
	if name == "" {
		name = os.Getenv(envvar.ModelcapLogLevel)
	}
	if name == "" {
		name = a.cfg.Log.Level
	}
	level, err := logger.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}

	opts := []logger.Option{logger.WithLevel(level)}
	if a.cfg.Log.File != "" {
		opts = append(opts, logger.WithLogToFile(true), logger.WithLogFile(a.cfg.Log.File))
	}
	slog.SetDefault(logger.New(env.FromEnv(), opts...))
	return nil
}

// load builds the registry described by cfg and publishes it.
func (a *app) load(ctx context.Context, cfg *config.Config) error {
	ref, err := referenceTable(cfg)
	if err != nil {
		return err
	}

	return a.manager.Load(ctx, func(ctx context.Context, reg *model.Registry) error {
		if cfg.Catalog.Builtin {
			if err := a.loader.LoadBuiltin(ctx, reg); err != nil {
				return err
			}
		}
		if patterns := cfg.CatalogPatterns(); len(patterns) > 0 {
			return a.loader.LoadGlobs(ctx, reg, patterns)
		}
		return nil
	}, model.WithReference(ref), model.WithPackage(cfg.Package), model.WithLogger(slog.Default()))
}

// registry loads the configured registry and returns it.
func (a *app) registry(ctx context.Context) (*model.Registry, error) {
	if reg := a.manager.Registry(); reg != nil {
		return reg, nil
	}
	if err := a.load(ctx, a.cfg); err != nil {
		return nil, err
	}
	return a.manager.Registry(), nil
}

func referenceTable(cfg *config.Config) (*reftable.Table, error) {
	if path := cfg.ReferencePath(); path != "" {
		return reftable.Load(path)
	}
	return reftable.Default()
}
