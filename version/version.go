// Package version reports the versions of the pieces a conversion depends on.
package version

import (
	"runtime"
	"runtime/debug"

	"github.com/mensylisir/pmmlkit/serializer"
)

// Version of pmmlkit, overridden at link time with
// -ldflags "-X github.com/mensylisir/pmmlkit/version.Version=...".
var Version = "0.1.0-dev"

const unknown = "(unknown)"

// Component is one name: version line of the report.
type Component struct {
	Name    string
	Version string
}

func (c Component) String() string {
	return c.Name + ": " + c.Version
}

// reportedModules are the libraries whose version affects what a dump
// contains. gonum holds the numeric arrays and the mapper's column data.
var reportedModules = []struct{ name, path string }{
	{"gonum", "gonum.org/v1/gonum"},
}

// Components lists the toolchain, pmmlkit itself, the numeric library and
// the dump format, in that order.
func Components() []Component {
	deps := map[string]string{}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range info.Deps {
			if dep.Replace != nil {
				dep = dep.Replace
			}
			deps[dep.Path] = dep.Version
		}
	}
	components := []Component{
		{Name: "go", Version: runtime.Version()},
		{Name: "pmmlkit", Version: Version},
	}
	for _, m := range reportedModules {
		v, ok := deps[m.path]
		if !ok || v == "" {
			v = unknown
		}
		components = append(components, Component{Name: m.name, Version: v})
	}
	return append(components, Component{Name: "serializer", Version: serializer.Format})
}
