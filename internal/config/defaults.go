package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/ekisa-team/modelcap/internal/envvar"
)

// DefaultConfigPath returns the default path for the modelcap config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "modelcap", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "modelcap")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "modelcap")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "modelcap")
		}
		return filepath.Join(home, ".config", "modelcap")
	}
}

// DefaultConfigFile returns the config file path, honoring MODELCAP_CONFIG.
func DefaultConfigFile() string {
	if path := os.Getenv(envvar.ModelcapConfig); path != "" {
		return path
	}
	return filepath.Join(DefaultConfigPath(), "config.yaml")
}

// DefaultCatalogPattern matches user catalog documents under the config directory.
func DefaultCatalogPattern() string {
	return filepath.Join(DefaultConfigPath(), "catalog", "**", "*.yaml")
}
