package common

import (
	"io/fs"
	"os"
	"path/filepath"
)

const (
	AppName = "pmmlkit"
	// ResourcesDirEnv overrides the location of the packaged resource bundles.
	ResourcesDirEnv = "PMMLKIT_RESOURCES_DIR"
	// JavaHomeEnv is consulted when no runtime home is configured explicitly.
	JavaHomeEnv = "JAVA_HOME"
)

// GetTmpDir returns the directory transient artifacts are created in by default.
func GetTmpDir() string {
	return os.TempDir()
}

// DefaultResourcesDir is the "resources" directory next to the running executable.
func DefaultResourcesDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "resources"
	}
	return filepath.Join(filepath.Dir(exe), "resources")
}

// Log field keys.
const (
	ConversionName = "Conversion"
	StepName       = "Step"
	BundleName     = "Bundle"
	ComponentName  = "Component"
)

// MaxLoggedValueLength caps console field values and logged command lines.
// The classpath of a converter command alone can run to kilobytes.
const MaxLoggedValueLength = 1024

const (
	// FileMode0755 represents rwxr-xr-x
	FileMode0755 fs.FileMode = 0755
	// FileMode0644 represents rw-r--r--
	FileMode0644 fs.FileMode = 0644
	// FileMode0600 represents rw-------
	FileMode0600 fs.FileMode = 0600
)

// External converter contract.
const (
	// ManifestEntry lists the identifiers a resource bundle provides converters for.
	ManifestEntry = "META-INF/sklearn2pmml.properties"
	// ConverterMainClass is the entry point of the external converter application.
	ConverterMainClass = "org.jpmml.sklearn.Main"
	// PipelineInputFlag precedes the serialized pipeline path.
	PipelineInputFlag = "--pkl-pipeline-input"
	// PMMLOutputFlag precedes the destination path.
	PMMLOutputFlag = "--pmml-output"
	// VersionFlag asks the runtime to print its version on stderr.
	VersionFlag = "-version"
	// ClasspathFlag precedes the joined classpath.
	ClasspathFlag = "-cp"
)

// Transient artifact naming.
const (
	PipelineDumpPrefix = "pipeline"
	PipelineDumpSuffix = ".json.gz"
	ModelDumpPrefix    = "model"
	// DumpCompressionLevel is the gzip level used for pipeline dumps.
	DumpCompressionLevel = 3
)

const (
	DefaultEncoding = "UTF-8"
	// DefaultEstimatorStepName names the single step of a pipeline built around a bare estimator.
	DefaultEstimatorStepName = "estimator"
)

// Remainder sentinels of a column transformer.
const (
	RemainderDrop        = "drop"
	RemainderPassthrough = "passthrough"
)
