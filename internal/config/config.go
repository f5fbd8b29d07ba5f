package config

import (
	"github.com/ekisa-team/modelcap/internal/xfs"
)

// Config holds the main configuration for the application.
type Config struct {
	Version   string          `json:"version"             yaml:"version"`
	Package   string          `json:"package,omitempty"   yaml:"package,omitempty"`
	Catalog   CatalogConfig   `json:"catalog"             yaml:"catalog"`
	Reference ReferenceConfig `json:"reference,omitempty" yaml:"reference,omitempty"`
	Log       LogConfig       `json:"log,omitempty"       yaml:"log,omitempty"`
}

// CatalogConfig selects the catalog documents replayed into the registry.
type CatalogConfig struct {
	Builtin bool     `json:"builtin"         yaml:"builtin"`
	Paths   []string `json:"paths,omitempty" yaml:"paths,omitempty"` // doublestar patterns
}

// ReferenceConfig points at an external reference table. An empty path uses the embedded one.
type ReferenceConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	File  string `json:"file,omitempty"  yaml:"file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{Builtin: true},
		Log:     LogConfig{Level: "info"},
	}
}

// CatalogPatterns returns the catalog patterns with a leading ~ expanded.
func (c *Config) CatalogPatterns() []string {
	return xfs.ExpandAll(c.Catalog.Paths)
}

// ReferencePath returns the reference table path with a leading ~ expanded.
func (c *Config) ReferencePath() string {
	if c.Reference.Path == "" {
		return ""
	}
	return xfs.ExpandTilde(c.Reference.Path)
}
