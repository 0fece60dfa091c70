package capability

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/mensylisir/pmmlkit/errdefs"
)

// Property is one key = value record of a manifest.
type Property struct {
	Key   string
	Value string
}

// ParseProperties reads newline-delimited key = value records. Lines starting
// with # and blank lines are skipped; the first = separates key from value
// and the whitespace around both is trimmed. Any other line is a
// *errdefs.ManifestParseError. Records are returned in file order.
func ParseProperties(r io.Reader) ([]Property, error) {
	var props []Property
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, ok := strings.Cut(trimmed, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &errdefs.ManifestParseError{Line: lineNo, Text: line}
		}
		props = append(props, Property{Key: key, Value: strings.TrimSpace(value)})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read manifest")
	}
	return props, nil
}

// Keys returns the keys of props in order.
func Keys(props []Property) []string {
	keys := make([]string, len(props))
	for i, p := range props {
		keys[i] = p.Key
	}
	return keys
}
