package config

import (
	"fmt"

	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/logger"
	"github.com/mensylisir/pmmlkit/util"
)

const (
	DefaultConfigName = "default"
	DefaultLogLevel   = "info"
)

// Default returns the configuration used when no file is given.
func Default() *ConverterConfig {
	cfg := &ConverterConfig{
		APIVersion: APIVersion,
		Kind:       Kind,
		Metadata:   MetadataSpec{Name: DefaultConfigName},
	}
	SetDefaults(&cfg.Spec)
	return cfg
}

// SetDefaults fills unset fields of spec in place. The resources dir and
// java home fall back to their environment variables.
func SetDefaults(spec *ConverterSpec) {
	if spec == nil {
		return
	}
	spec.Encoding = util.FirstNonEmpty(spec.Encoding, common.DefaultEncoding)
	spec.Log.Level = util.FirstNonEmpty(spec.Log.Level, DefaultLogLevel)
	spec.ResourcesDir = util.FirstNonEmpty(spec.ResourcesDir, util.GetenvOrDefault(common.ResourcesDirEnv, ""))
	spec.JavaHome = util.FirstNonEmpty(spec.JavaHome, util.GetenvOrDefault(common.JavaHomeEnv, ""))
}

// Validate checks the fields SetDefaults cannot fix.
func Validate(spec *ConverterSpec) error {
	if spec == nil {
		return fmt.Errorf("spec cannot be nil")
	}
	if _, err := logger.ParseLevel(spec.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", spec.Log.Level, err)
	}
	if spec.ManifestCacheTTL < 0 {
		return fmt.Errorf("manifestCacheTTL must not be negative, got %s", spec.ManifestCacheTTL)
	}
	for i, entry := range spec.UserClasspath {
		if entry == "" {
			return fmt.Errorf("userClasspath[%d] is empty", i)
		}
	}
	return nil
}
