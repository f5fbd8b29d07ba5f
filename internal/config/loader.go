package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

//go:embed modelcap.v1.schema.json
var embeddedSchema string

const embeddedSchemaURL = "modelcap://config/modelcap.v1.schema.json"

var defaultSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(embeddedSchemaURL, embeddedSchema)
})

// LoadAndValidate loads and validates the configuration. An empty schemaPath validates against
// the embedded schema.
func LoadAndValidate(path, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: invalid YAML: %w", err)
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to compile schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}

	return config, nil
}

// LoadOrDefault loads path when it exists and returns Default otherwise.
func LoadOrDefault(path, schemaPath string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadAndValidate(path, schemaPath)
}

// Schema returns the embedded configuration schema.
func Schema() string {
	return embeddedSchema
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	if schemaPath == "" {
		return defaultSchema()
	}
	return jsonschema.Compile(schemaPath)
}
