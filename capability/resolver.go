// Package capability discovers which estimator and transformer identifiers
// the external converter supports, from the manifests of the bundles on its
// classpath, and filters search-space configurations down to them.
package capability

import (
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mensylisir/pmmlkit/cache"
	"github.com/mensylisir/pmmlkit/classpath"
	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/errdefs"
	"github.com/mensylisir/pmmlkit/logger"
)

// bundleKey identifies one version of a bundle file on disk.
type bundleKey struct {
	path    string
	size    int64
	modTime int64
}

// Resolver reads bundle manifests, remembering the identifiers of every
// bundle it has scanned until the bundle file changes or the entry outlives
// the TTL.
type Resolver struct {
	manifests *cache.Cache[bundleKey, []string]
}

// NewResolver returns a Resolver whose remembered manifests expire after
// ttl. Zero keeps them for the life of the Resolver.
func NewResolver(ttl time.Duration) *Resolver {
	return newResolver(ttl, time.Now)
}

func newResolver(ttl time.Duration, now func() time.Time) *Resolver {
	return &Resolver{manifests: cache.NewCache[bundleKey, []string](
		cache.WithDefaultTTL[bundleKey, []string](ttl),
		cache.WithClock[bundleKey, []string](now),
	)}
}

// SupportedIdentifiers returns every manifest key found in the bundles of cp.
// Bundles without a manifest contribute nothing; a bundle that cannot be
// read, or a malformed manifest, fails the whole scan.
func (r *Resolver) SupportedIdentifiers(cp classpath.Classpath) (map[string]struct{}, error) {
	r.manifests.DeleteExpired()
	supported := make(map[string]struct{})
	for _, bundle := range cp {
		ids, err := r.bundleIdentifiers(bundle)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			supported[id] = struct{}{}
		}
	}
	logger.Log.Debugf("Scanned %d bundles, %d manifests remembered", len(cp), r.manifests.Len())
	return supported, nil
}

func (r *Resolver) bundleIdentifiers(bundle string) ([]string, error) {
	info, err := os.Stat(bundle)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open resource bundle %s", bundle)
	}
	key := bundleKey{path: bundle, size: info.Size(), modTime: info.ModTime().UnixNano()}
	return r.manifests.GetOrLoad(key, func() ([]string, error) {
		log := logger.Log.Bundle(bundle)
		var ids []string
		err := classpath.ReadEntry(bundle, common.ManifestEntry, func(_ string, rd io.Reader, found bool) error {
			if !found {
				log.Debugf("No %s entry", common.ManifestEntry)
				return nil
			}
			props, err := ParseProperties(rd)
			if err != nil {
				var parseErr *errdefs.ManifestParseError
				if errors.As(err, &parseErr) {
					parseErr.Bundle = bundle
				}
				return err
			}
			ids = Keys(props)
			log.Debugf("Found %d supported identifiers", len(ids))
			return nil
		})
		if ids == nil {
			ids = []string{}
		}
		return ids, err
	})
}

// FilterSupported returns the entries of space whose key is supported. A key
// also counts as supported when its StripModule form is, or when it equals
// the StripModule form of a supported identifier.
func (r *Resolver) FilterSupported(space map[string]interface{}, cp classpath.Classpath) (map[string]interface{}, error) {
	supported, err := r.SupportedIdentifiers(cp)
	if err != nil {
		return nil, err
	}
	accepted := make(map[string]struct{}, 2*len(supported))
	for id := range supported {
		accepted[id] = struct{}{}
		accepted[StripModule(id)] = struct{}{}
	}
	out := make(map[string]interface{})
	for key, value := range space {
		if _, ok := accepted[key]; ok {
			out[key] = value
			continue
		}
		if _, ok := supported[StripModule(key)]; ok {
			out[key] = value
		}
	}
	return out, nil
}

// StripModule drops the second to last dotted segment, turning a private
// submodule path such as sklearn.tree._classes.DecisionTreeClassifier into
// its public form sklearn.tree.DecisionTreeClassifier. Names without a dot
// are returned unchanged.
func StripModule(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return name
	}
	parts = append(parts[:len(parts)-2], parts[len(parts)-1])
	return strings.Join(parts, ".")
}

// Sorted returns the identifiers of set in lexical order.
func Sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
