package model

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// BuildFunc populates a fresh registry.
type BuildFunc func(ctx context.Context, reg *Registry) error

// Manager owns the registry the rest of the process reads from. Each load builds a new registry,
// seals it and swaps it in, so readers never see a registry that is still being populated.
type Manager struct {
	registry *Registry
	opts     []Option
	mu       sync.RWMutex // Use RWMutex for better read concurrency
}

// NewManager creates a Manager whose registries are created with opts.
func NewManager(opts ...Option) *Manager {
	return &Manager{opts: opts}
}

// Registry returns the current registry, or nil before the first successful Load.
func (m *Manager) Registry() *Registry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.registry
}

// Load builds a registry with build and publishes it. Extra opts apply to this build only.
// When build fails the current registry stays in place.
func (m *Manager) Load(ctx context.Context, build BuildFunc, opts ...Option) error {
	reg := NewRegistry(append(slices.Clone(m.opts), opts...)...)

	if err := build(ctx, reg); err != nil {
		return fmt.Errorf("manager: failed to build registry: %w", err)
	}
	reg.Seal()

	m.mu.Lock()
	previous := m.registry
	m.registry = reg
	m.mu.Unlock()

	reg.logger.Info("Registry loaded", "models", len(reg.Models()), "replaced", previous != nil)
	return nil
}
