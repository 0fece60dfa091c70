package runner

import (
	"context"

	"github.com/mensylisir/pmmlkit/executor"
)

// RuntimeVersion is the name and version the external runtime reports about
// itself.
type RuntimeVersion struct {
	Name    string
	Version string
}

// Unknown is reported when the runtime cannot be probed.
var Unknown = RuntimeVersion{Name: "unknown", Version: "not available"}

func (v RuntimeVersion) String() string {
	return v.Name + ": " + v.Version
}

// Runner launches the external converter runtime.
type Runner interface {
	// Command builds the full command line running mainClass on classpath.
	Command(classpath string, mainClass string, args ...string) []string
	// Run executes command in dir and waits for it. A command that cannot be
	// started yields an errdefs.RuntimeUnavailableError.
	Run(ctx context.Context, dir string, command []string) (*executor.Result, error)
	// Version probes the runtime. It never fails; Unknown stands in for any
	// problem.
	Version(ctx context.Context) RuntimeVersion
}
