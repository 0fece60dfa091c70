package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/pmmlkit/classpath"
	"github.com/mensylisir/pmmlkit/common"
)

const sampleConverterConfigYAML = `
apiVersion: pmmlkit.mensylisir.io/v1alpha1
kind: ConverterConfig
metadata:
  name: nightly
spec:
  javaHome: /usr/lib/jvm/java-17
  encoding: ISO-8859-1
  userClasspath:
    - /opt/converters/custom.jar
    - /opt/converters/extra.jar
  withRepr: true
  debug: true
  workDir: /var/tmp/pmmlkit
  manifestCacheTTL: 10m
  log:
    dir: /var/log/pmmlkit
    level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), common.FileMode0644))
	return path
}

func TestLoad_Success(t *testing.T) {
	cfg, err := NewLoader(writeConfig(t, sampleConverterConfigYAML)).Load()
	require.NoError(t, err)

	assert.Equal(t, APIVersion, cfg.APIVersion)
	assert.Equal(t, Kind, cfg.Kind)
	assert.Equal(t, "nightly", cfg.Metadata.Name)

	spec := cfg.Spec
	assert.Equal(t, "/usr/lib/jvm/java-17", spec.JavaHome)
	assert.Equal(t, "ISO-8859-1", spec.Encoding)
	assert.Equal(t, []string{"/opt/converters/custom.jar", "/opt/converters/extra.jar"}, spec.UserClasspath)
	assert.True(t, spec.WithRepr)
	assert.True(t, spec.Debug)
	assert.Equal(t, "/var/tmp/pmmlkit", spec.WorkDir)
	assert.Equal(t, 10*time.Minute, spec.ManifestCacheTTL)
	assert.Equal(t, "/var/log/pmmlkit", spec.Log.Dir)
	assert.Equal(t, "debug", spec.Log.Level)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv(common.JavaHomeEnv, "/opt/jdk")
	t.Setenv(common.ResourcesDirEnv, "")
	cfg, err := NewLoader(writeConfig(t, `
apiVersion: pmmlkit.mensylisir.io/v1alpha1
kind: ConverterConfig
metadata:
  name: minimal
`)).Load()
	require.NoError(t, err)
	assert.Equal(t, common.DefaultEncoding, cfg.Spec.Encoding)
	assert.Equal(t, DefaultLogLevel, cfg.Spec.Log.Level)
	assert.Equal(t, "/opt/jdk", cfg.Spec.JavaHome)
	assert.Empty(t, cfg.Spec.ResourcesDir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"not yaml", "apiVersion: [unterminated"},
		{"wrong apiVersion", "apiVersion: v1\nkind: ConverterConfig\nmetadata:\n  name: x\n"},
		{"wrong kind", "apiVersion: pmmlkit.mensylisir.io/v1alpha1\nkind: ClusterConfig\nmetadata:\n  name: x\n"},
		{"missing name", "apiVersion: pmmlkit.mensylisir.io/v1alpha1\nkind: ConverterConfig\n"},
		{"bad log level", "apiVersion: pmmlkit.mensylisir.io/v1alpha1\nkind: ConverterConfig\nmetadata:\n  name: x\nspec:\n  log:\n    level: loud\n"},
		{"negative manifest cache ttl", "apiVersion: pmmlkit.mensylisir.io/v1alpha1\nkind: ConverterConfig\nmetadata:\n  name: x\nspec:\n  manifestCacheTTL: -1m\n"},
		{"bad manifest cache ttl", "apiVersion: pmmlkit.mensylisir.io/v1alpha1\nkind: ConverterConfig\nmetadata:\n  name: x\nspec:\n  manifestCacheTTL: soon\n"},
		{"empty classpath entry", "apiVersion: pmmlkit.mensylisir.io/v1alpha1\nkind: ConverterConfig\nmetadata:\n  name: x\nspec:\n  userClasspath: ['']\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(writeConfig(t, tt.content)).Load()
			assert.Error(t, err)
		})
	}

	_, err := NewLoader("").Load()
	assert.Error(t, err)
	_, err = NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, APIVersion, cfg.APIVersion)
	assert.Equal(t, Kind, cfg.Kind)
	assert.Equal(t, DefaultConfigName, cfg.Metadata.Name)
	assert.NoError(t, Validate(&cfg.Spec))
	assert.Error(t, Validate(nil))
}

func TestConverterOptions(t *testing.T) {
	resources := t.TempDir()
	for _, name := range []string{"b.jar", "a.jar"} {
		require.NoError(t, os.WriteFile(filepath.Join(resources, name), nil, common.FileMode0644))
	}
	spec := &ConverterSpec{
		JavaHome:      "/opt/jdk",
		Encoding:      "UTF-8",
		ResourcesDir:  resources,
		UserClasspath: []string{"/opt/custom.jar"},
		WithRepr:      true,
		WorkDir:       "/var/tmp",
	}

	opts, err := spec.ConverterOptions()
	require.NoError(t, err)
	assert.Equal(t, classpath.Classpath{filepath.Join(resources, "a.jar"), filepath.Join(resources, "b.jar")}, opts.PackageClasspath)
	assert.Equal(t, classpath.Classpath{"/opt/custom.jar"}, opts.UserClasspath)
	assert.True(t, opts.WithRepr)
	assert.False(t, opts.Debug)
	assert.Equal(t, "/opt/jdk", opts.JavaHome)
	assert.Equal(t, "/var/tmp", opts.WorkDir)
	assert.Nil(t, opts.Runner)

	cp, err := spec.Classpath()
	require.NoError(t, err)
	assert.Equal(t, classpath.Classpath{filepath.Join(resources, "a.jar"), filepath.Join(resources, "b.jar"), "/opt/custom.jar"}, cp)

	spec.ResourcesDir = filepath.Join(resources, "missing")
	_, err = spec.ConverterOptions()
	assert.Error(t, err)
}

func TestSearchSpaceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "space.yaml")
	space := SearchSpace{
		"sklearn.tree.DecisionTreeClassifier": map[string]interface{}{
			"max_depth": []interface{}{1, 2, 3},
		},
		"sklearn.naive_bayes.GaussianNB": map[string]interface{}{},
	}
	require.NoError(t, WriteSearchSpace(path, space))

	loaded, err := LoadSearchSpace(path)
	require.NoError(t, err)
	assert.Equal(t, space, loaded)

	_, err = LoadSearchSpace(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
