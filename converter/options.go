package converter

import (
	"io"
	"os"

	"github.com/mensylisir/pmmlkit/classpath"
	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/runner"
	"github.com/mensylisir/pmmlkit/util"
)

// Options control one conversion. The zero value converts quietly with the
// java executable on PATH and the packaged resource bundles only.
type Options struct {
	// UserClasspath is appended to the packaged bundles, in order.
	UserClasspath classpath.Classpath
	// PackageClasspath replaces classpath.Packaged() when not nil.
	PackageClasspath classpath.Classpath
	// WithRepr attaches a textual snapshot of the pipeline before dumping it.
	WithRepr bool
	// Debug prints the version preamble, the command and both process
	// streams, and preserves transient files instead of deleting them.
	Debug bool
	// Encoding decodes the process streams. Defaults to UTF-8.
	Encoding string
	// JavaHome locates the java executable; empty means PATH.
	JavaHome string
	// WorkDir receives transient files. Defaults to the system temp directory.
	WorkDir string
	// Runner overrides the java runner built from JavaHome and Encoding.
	Runner runner.Runner
	// Out receives the report. Defaults to stdout.
	Out io.Writer
}

func (o Options) withDefaults() Options {
	o.Encoding = util.FirstNonEmpty(o.Encoding, common.DefaultEncoding)
	o.WorkDir = util.FirstNonEmpty(o.WorkDir, common.GetTmpDir())
	if o.PackageClasspath == nil {
		o.PackageClasspath = classpath.Packaged()
	}
	if o.Runner == nil {
		o.Runner = runner.NewJavaRunner(o.JavaHome, o.Encoding, nil)
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}

// Result describes a finished converter run.
type Result struct {
	Command  []string
	ExitCode int
	// Stdout and Stderr are the decoded process streams.
	Stdout string
	Stderr string
	// Preserved lists the transient files kept in debug mode.
	Preserved []string
}
