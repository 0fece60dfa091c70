package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/mensylisir/pmmlkit/classpath"
	"github.com/mensylisir/pmmlkit/converter"
	"github.com/mensylisir/pmmlkit/util"
)

const (
	APIVersion = "pmmlkit.mensylisir.io/v1alpha1"
	Kind       = "ConverterConfig"
)

// ConverterConfig is the top-level configuration structure.
type ConverterConfig struct {
	APIVersion string        `yaml:"apiVersion"`
	Kind       string        `yaml:"kind"`
	Metadata   MetadataSpec  `yaml:"metadata"`
	Spec       ConverterSpec `yaml:"spec"`
}

// MetadataSpec names a configuration.
type MetadataSpec struct {
	Name string `yaml:"name"`
}

// ConverterSpec defines how conversions are run.
type ConverterSpec struct {
	JavaHome      string   `yaml:"javaHome,omitempty"`
	Encoding      string   `yaml:"encoding,omitempty"`
	ResourcesDir  string   `yaml:"resourcesDir,omitempty"` // replaces the packaged bundles when set
	UserClasspath []string `yaml:"userClasspath,omitempty"`
	WithRepr      bool     `yaml:"withRepr,omitempty"`
	Debug         bool     `yaml:"debug,omitempty"`
	WorkDir       string   `yaml:"workDir,omitempty"`
	Log           LogSpec  `yaml:"log,omitempty"`

	// ManifestCacheTTL bounds how long scanned bundle manifests are
	// remembered, e.g. "10m". Zero keeps them until the bundle changes.
	ManifestCacheTTL time.Duration `yaml:"manifestCacheTTL,omitempty"`
}

// LogSpec configures the global logger.
type LogSpec struct {
	Dir   string `yaml:"dir,omitempty"` // empty logs to stderr
	Level string `yaml:"level,omitempty"`
}

// Classpath returns the bundles a conversion uses: the packaged ones, or
// the contents of ResourcesDir when set, followed by UserClasspath.
func (s *ConverterSpec) Classpath() (classpath.Classpath, error) {
	packaged, err := s.packagedClasspath()
	if err != nil {
		return nil, err
	}
	user, err := s.userClasspath()
	if err != nil {
		return nil, err
	}
	return classpath.Assemble(packaged, user), nil
}

func (s *ConverterSpec) userClasspath() (classpath.Classpath, error) {
	user, err := classpath.Expand(s.UserClasspath)
	if err != nil {
		return nil, errors.Wrap(err, "invalid userClasspath")
	}
	return user, nil
}

func (s *ConverterSpec) packagedClasspath() (classpath.Classpath, error) {
	if s.ResourcesDir == "" {
		return classpath.Packaged(), nil
	}
	dir, err := util.ExpandPath(s.ResourcesDir)
	if err != nil {
		return nil, err
	}
	cp, err := classpath.FromDirectory(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid resourcesDir %s", s.ResourcesDir)
	}
	return cp, nil
}

// ConverterOptions maps the spec onto converter.Options. Runner and Out are
// left for the caller.
func (s *ConverterSpec) ConverterOptions() (converter.Options, error) {
	packaged, err := s.packagedClasspath()
	if err != nil {
		return converter.Options{}, err
	}
	user, err := s.userClasspath()
	if err != nil {
		return converter.Options{}, err
	}
	javaHome, err := util.ExpandPath(s.JavaHome)
	if err != nil {
		return converter.Options{}, err
	}
	workDir, err := util.ExpandPath(s.WorkDir)
	if err != nil {
		return converter.Options{}, err
	}
	return converter.Options{
		UserClasspath:    user,
		PackageClasspath: packaged,
		WithRepr:         s.WithRepr,
		Debug:            s.Debug,
		Encoding:         s.Encoding,
		JavaHome:         javaHome,
		WorkDir:          workDir,
	}, nil
}
