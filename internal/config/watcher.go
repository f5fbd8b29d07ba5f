package config

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const debounce = 500 * time.Millisecond

// Watcher watches the config file and the catalog files it names. Any change reloads the
// config and hands it to onReload.
type Watcher struct {
	path       string
	schemaPath string
	onReload   func(*Config, error)
	current    *Config
	mu         sync.RWMutex
	reloads    atomic.Uint32

	fs      *fsnotify.Watcher
	timerMu sync.Mutex
	timer   *time.Timer
	done    chan struct{}
}

// NewWatcher creates a new config watcher.
func NewWatcher(path string, schemaPath string, onReload func(*Config, error)) (*Watcher, error) {
	watcher := &Watcher{
		path:       path,
		schemaPath: schemaPath,
		onReload:   onReload,
		done:       make(chan struct{}),
	}

	cfg, err := LoadAndValidate(path, schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}
	watcher.current = cfg

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	watcher.fs = fs

	if err := fs.Add(path); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}
	watcher.addCatalogFiles(cfg)

	go watcher.watch()

	return watcher, nil
}

// watch watches for configuration changes.
func (cw *Watcher) watch() {
	defer close(cw.done)

	for {
		select {
		case event, ok := <-cw.fs.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			slog.Debug("File changed", "path", event.Name, "op", event.Op.String())

			cw.timerMu.Lock()
			if cw.timer != nil {
				cw.timer.Stop()
			}
			cw.timer = time.AfterFunc(debounce, cw.reload)
			cw.timerMu.Unlock()

		case err, ok := <-cw.fs.Errors:
			if !ok {
				return
			}

			slog.Error("Watcher error", "error", err)
		}
	}
}

// reload reloads the config file.
func (cw *Watcher) reload() {
	count := cw.reloads.Add(1)
	slog.Info("Reloading config file", "path", cw.path, "count", count)

	cfg, err := LoadAndValidate(cw.path, cw.schemaPath)
	if err != nil {
		slog.Error("Failed to reload config", "error", err)
		cw.onReload(nil, err)
		return
	}

	cw.mu.Lock()
	cw.current = cfg
	cw.mu.Unlock()

	// Editors that replace files on save drop the old watch.
	_ = cw.fs.Add(cw.path)
	cw.addCatalogFiles(cfg)

	slog.Info("Config reloaded successfully", "count", count)
	cw.onReload(cfg, nil)
}

func (cw *Watcher) addCatalogFiles(cfg *Config) {
	for _, pattern := range cfg.CatalogPatterns() {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			slog.Warn("Invalid catalog pattern", "pattern", pattern, "error", err)
			continue
		}
		for _, file := range matches {
			if err := cw.fs.Add(file); err != nil {
				slog.Warn("Failed to watch catalog file", "path", file, "error", err)
			}
		}
	}
}

// Snapshot returns the current config snapshot (thread-safe).
func (cw *Watcher) Snapshot() *Config {
	cw.mu.RLock()
	defer cw.mu.RUnlock()

	return cw.current
}

// ReloadCount returns the number of times the config has been reloaded.
func (cw *Watcher) ReloadCount() uint32 {
	return cw.reloads.Load()
}

// Close stops watching. A pending reload is cancelled.
func (cw *Watcher) Close() error {
	cw.timerMu.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timerMu.Unlock()

	err := cw.fs.Close()
	<-cw.done
	return err
}
