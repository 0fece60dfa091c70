package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of a ConverterConfig file.
type Loader struct {
	filePath string
}

// NewLoader creates a new configuration loader for the given file path.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads the configuration file, checks its header, applies defaults and
// validates the spec.
func (l *Loader) Load() (*ConverterConfig, error) {
	if l.filePath == "" {
		return nil, fmt.Errorf("configuration file path is empty")
	}
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", l.filePath, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("configuration file '%s' is empty", l.filePath)
	}

	var cfg ConverterConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML from '%s': %w", l.filePath, err)
	}

	if cfg.APIVersion != APIVersion {
		return nil, fmt.Errorf("config validation failed: apiVersion must be '%s' in '%s', got '%s'", APIVersion, l.filePath, cfg.APIVersion)
	}
	if cfg.Kind != Kind {
		return nil, fmt.Errorf("config validation failed: kind must be '%s' in '%s', got '%s'", Kind, l.filePath, cfg.Kind)
	}
	if cfg.Metadata.Name == "" {
		return nil, fmt.Errorf("config validation failed: metadata.name is a required field in '%s'", l.filePath)
	}

	SetDefaults(&cfg.Spec)
	if err := Validate(&cfg.Spec); err != nil {
		return nil, fmt.Errorf("config validation failed in '%s': %w", l.filePath, err)
	}
	return &cfg, nil
}
