// Package classpath assembles the ordered list of resource bundles handed to
// the external converter and reads named entries out of those bundles.
package classpath

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/logger"
	"github.com/mensylisir/pmmlkit/util"
)

// Classpath is an ordered list of bundle locations. Earlier entries win when
// two bundles provide the same resource.
type Classpath []string

// String joins the entries with the platform path list separator.
func (cp Classpath) String() string {
	return strings.Join(cp, string(os.PathListSeparator))
}

// Assemble returns the packaged entries followed by the user entries, in the
// order given. Duplicates are kept.
func Assemble(packaged, user Classpath) Classpath {
	out := make(Classpath, 0, len(packaged)+len(user))
	out = append(out, packaged...)
	return append(out, user...)
}

var (
	packagedOnce sync.Once
	packaged     Classpath
)

// Packaged returns the bundles shipped with the application: every .jar in
// the directory named by PMMLKIT_RESOURCES_DIR, or in the resources directory
// next to the executable. It is read once per process and the result must
// not be modified.
func Packaged() Classpath {
	packagedOnce.Do(func() {
		dir := util.GetenvOrDefault(common.ResourcesDirEnv, common.DefaultResourcesDir())
		cp, err := FromDirectory(dir)
		if err != nil {
			logger.Log.Bundle(dir).Debugf("No packaged resources: %v", err)
			return
		}
		packaged = cp
	})
	return packaged
}

// FromDirectory lists the .jar files directly inside dir, sorted by name.
func FromDirectory(dir string) (Classpath, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list resource directory %s", dir)
	}
	var cp Classpath
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".jar") {
			continue
		}
		cp = append(cp, filepath.Join(dir, e.Name()))
	}
	sort.Strings(cp)
	return cp, nil
}

// Expand resolves a leading "~" in every entry.
func Expand(entries []string) (Classpath, error) {
	out := make(Classpath, 0, len(entries))
	for _, e := range entries {
		expanded, err := util.ExpandPath(e)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}
