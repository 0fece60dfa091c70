package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mensylisir/pmmlkit/file"
)

// SearchSpace maps fully qualified estimator and transformer identifiers to
// their hyper-parameter grids.
type SearchSpace map[string]interface{}

// LoadSearchSpace reads a YAML search space. An empty document is an empty
// space.
func LoadSearchSpace(path string) (SearchSpace, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read search space '%s': %w", path, err)
	}
	space := SearchSpace{}
	if err := yaml.Unmarshal(content, &space); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search space from '%s': %w", path, err)
	}
	return space, nil
}

// MarshalSearchSpace renders space as YAML with sorted keys.
func MarshalSearchSpace(space SearchSpace) ([]byte, error) {
	content, err := yaml.Marshal(map[string]interface{}(space))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search space: %w", err)
	}
	return content, nil
}

// WriteSearchSpace writes space as YAML to path, creating parent directories.
func WriteSearchSpace(path string, space SearchSpace) error {
	content, err := MarshalSearchSpace(space)
	if err != nil {
		return err
	}
	return file.WriteFile(path, content)
}
