package classpath

import (
	"archive/zip"
	"io"

	"github.com/pkg/errors"
)

// EntryFunc receives the content of a bundle entry. found is false, and r
// nil, when the bundle has no such entry.
type EntryFunc func(bundle string, r io.Reader, found bool) error

// ReadEntry opens bundle as a zip archive and hands the named entry to fn.
// An unreadable bundle is an error; a missing entry is not.
func ReadEntry(bundle, name string, fn EntryFunc) error {
	zr, err := zip.OpenReader(bundle)
	if err != nil {
		return errors.Wrapf(err, "failed to open resource bundle %s", bundle)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return errors.Wrapf(err, "failed to open %s in %s", name, bundle)
		}
		defer rc.Close()
		return fn(bundle, rc, true)
	}
	return fn(bundle, nil, false)
}
