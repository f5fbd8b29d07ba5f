package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "modelcap://catalog.schema.json"

// SupportedVersions is the constraint a catalog's version must satisfy.
const SupportedVersions = "^1"

// Schema returns the JSON schema of a catalog document, reflected from File.
func Schema() ([]byte, error) {
	r := &invopop.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	s := r.Reflect(&File{})
	s.Title = "modelcap catalog"
	s.Description = "Model types, modes and engines registered with modelcap."

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to marshal schema: %w", err)
	}
	return b, nil
}

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := Schema()
	if err != nil {
		return nil, err
	}
	schema, err := jsonschema.CompileString(schemaURL, string(raw))
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to compile schema: %w", err)
	}
	return schema, nil
})

// validateVersion checks the document version against SupportedVersions.
func validateVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: version %s does not satisfy %s", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}
