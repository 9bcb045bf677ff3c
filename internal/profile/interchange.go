package profile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"ovencontroller/internal/models"
)

// Export serializes a profile to a human-editable YAML document, grounded
// on itohio-golpm/pkg/config's YAML round-trip (config.Save/Load), adapted
// here to a single profile instead of a whole application config.
func Export(p models.Profile) ([]byte, error) {
	b, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile %q: %w", p.Name, err)
	}
	return b, nil
}

// Import parses a YAML document into a Profile and validates it.
func Import(data []byte) (models.Profile, error) {
	var p models.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return models.Profile{}, fmt.Errorf("parse profile yaml: %w", err)
	}
	if err := Validate(p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}
