package depot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest lists components to register, in order.
type Manifest struct {
	Components []ComponentSpec `yaml:"components"`
}

type ComponentSpec struct {
	Name string `yaml:"name"`
	Size int    `yaml:"size"`
}

// LoadManifest reads a YAML component manifest.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a YAML component manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}
