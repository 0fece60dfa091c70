// Package serializer writes pipelines in the dump format the external
// converter reads: the class/state envelope tree as JSON, gzip compressed.
package serializer

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/estimator"
	"github.com/mensylisir/pmmlkit/file"
	"github.com/mensylisir/pmmlkit/pipeline"
)

// Format names the dump encoding in version reports.
const Format = "json+gzip"

// Document is a decoded dump. State is left raw; only the converter side
// knows how to rebuild components from it.
type Document struct {
	Class string          `json:"class"`
	State json.RawMessage `json:"state"`
}

// Dump writes c to w.
func Dump(w io.Writer, c estimator.Component) error {
	if c == nil {
		return errors.New("nothing to dump")
	}
	zw, err := gzip.NewWriterLevel(w, common.DumpCompressionLevel)
	if err != nil {
		return errors.Wrap(err, "failed to create compressor")
	}
	if err := json.NewEncoder(zw).Encode(pipeline.Wrap(c)); err != nil {
		zw.Close()
		return errors.Wrapf(err, "failed to encode %s", c.ClassName())
	}
	return errors.Wrap(zw.Close(), "failed to flush dump")
}

// DumpFile dumps c into a new file of set and returns its path. The file is
// registered with set before anything is written to it, so a failed dump is
// still released with the rest of the set.
func DumpFile(set *file.TransientSet, c estimator.Component) (string, error) {
	f, err := set.Create(common.PipelineDumpPrefix, common.PipelineDumpSuffix)
	if err != nil {
		return "", err
	}
	if err := Dump(f, c); err != nil {
		f.Close()
		return f.Name(), err
	}
	if err := f.Close(); err != nil {
		return f.Name(), errors.Wrapf(err, "failed to close %s", f.Name())
	}
	return f.Name(), nil
}

// Load decodes a dump.
func Load(r io.Reader) (*Document, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "not a compressed dump")
	}
	defer zr.Close()
	doc := &Document{}
	if err := json.NewDecoder(zr).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode dump")
	}
	if doc.Class == "" {
		return nil, errors.New("dump has no class tag")
	}
	return doc, nil
}

// LoadFile decodes the dump at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dump %s", path)
	}
	defer f.Close()
	return Load(f)
}
