// Package env resolves the environment the process runs in.
package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/modelcap/internal/envvar"
)

// Environment is the deployment environment of the process.
type Environment string

const (
	// Development logs human-readable output to the terminal.
	Development Environment = "development"

	// Production logs JSON.
	Production Environment = "production"
)

// FromEnv reads the environment from MODELCAP_ENV, defaulting to Development.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.ModelcapEnv))
}

// Parse maps a name to an Environment. Unknown names map to Development.
func Parse(name string) Environment {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "prod", "production":
		return Production
	default:
		return Development
	}
}
