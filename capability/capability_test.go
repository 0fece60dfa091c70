package capability

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/pmmlkit/classpath"
	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/errdefs"
)

func writeJar(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for entry, content := range entries {
		w, err := zw.Create(entry)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func manifestJar(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	return writeJar(t, dir, name, map[string]string{common.ManifestEntry: strings.Join(lines, "\n") + "\n"})
}

func TestParseProperties(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
		wantLine int
	}{
		{"comment and records", "# comment\na.B = 1\nc.D = 2\n", []string{"a.B", "c.D"}, 0},
		{"blank lines and crlf", "\r\n  a.B=1\r\n\r\n", []string{"a.B"}, 0},
		{"byte order mark", "\ufeffa.B = 1", []string{"a.B"}, 0},
		{"value with equals", "a.B = x=y", []string{"a.B"}, 0},
		{"missing separator", "a.B = 1\nnot a record\n", nil, 2},
		{"empty key", "= 1", nil, 1},
		{"empty input", "", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, err := ParseProperties(strings.NewReader(tt.input))
			if tt.wantLine > 0 {
				var parseErr *errdefs.ManifestParseError
				require.True(t, errors.As(err, &parseErr), "got %v", err)
				assert.Equal(t, tt.wantLine, parseErr.Line)
				assert.ErrorIs(t, err, errdefs.ErrManifestParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, nilIfEmpty(Keys(props)))
		})
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestParsePropertiesKeepsValues(t *testing.T) {
	props, err := ParseProperties(strings.NewReader("a.B = x=y\n"))
	require.NoError(t, err)
	assert.Equal(t, []Property{{Key: "a.B", Value: "x=y"}}, props)
}

func TestStripModule(t *testing.T) {
	tests := map[string]string{
		"pkg.sub.Foo": "pkg.Foo",
		"pkg.Foo":     "Foo",
		"sklearn.tree._classes.DecisionTreeClassifier": "sklearn.tree.DecisionTreeClassifier",
		"Foo": "Foo",
		"":    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripModule(in), in)
	}
}

func TestSupportedIdentifiers(t *testing.T) {
	dir := t.TempDir()
	first := manifestJar(t, dir, "first.jar", "# comment", "a.B = 1", "c.D = 2")
	second := manifestJar(t, dir, "second.jar", "c.D = 3", "e.F = 4")
	plain := writeJar(t, dir, "plain.jar", map[string]string{"README": "no manifest"})

	ids, err := NewResolver(0).SupportedIdentifiers(classpath.Classpath{first, plain, second})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.B", "c.D", "e.F"}, Sorted(ids))

	ids, err = NewResolver(0).SupportedIdentifiers(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSupportedIdentifiersFailures(t *testing.T) {
	dir := t.TempDir()
	good := manifestJar(t, dir, "good.jar", "a.B = 1")
	bad := manifestJar(t, dir, "bad.jar", "a.B = 1", "garbage")
	broken := filepath.Join(dir, "broken.jar")
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), common.FileMode0644))

	_, err := NewResolver(0).SupportedIdentifiers(classpath.Classpath{good, bad})
	var parseErr *errdefs.ManifestParseError
	require.True(t, errors.As(err, &parseErr), "got %v", err)
	assert.Equal(t, bad, parseErr.Bundle)
	assert.Equal(t, 2, parseErr.Line)

	_, err = NewResolver(0).SupportedIdentifiers(classpath.Classpath{good, broken})
	assert.Error(t, err)

	_, err = NewResolver(0).SupportedIdentifiers(classpath.Classpath{filepath.Join(dir, "missing.jar")})
	assert.Error(t, err)
}

func TestResolverCachesUntilBundleChanges(t *testing.T) {
	dir := t.TempDir()
	jar := manifestJar(t, dir, "s.jar", "a.B = 1")
	r := NewResolver(0)

	ids, err := r.SupportedIdentifiers(classpath.Classpath{jar})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.B"}, Sorted(ids))
	assert.EqualValues(t, 1, r.manifests.Len())

	ids, err = r.SupportedIdentifiers(classpath.Classpath{jar})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.B"}, Sorted(ids))
	assert.EqualValues(t, 1, r.manifests.Len())

	manifestJar(t, dir, "s.jar", "a.B = 1", "x.Yz = 2")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(jar, later, later))

	ids, err = r.SupportedIdentifiers(classpath.Classpath{jar})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.B", "x.Yz"}, Sorted(ids))
}

func TestResolverForgetsManifestsAfterTTL(t *testing.T) {
	dir := t.TempDir()
	jar := manifestJar(t, dir, "s.jar", "a.B = 1")
	now := time.Unix(1000, 0)
	r := newResolver(time.Minute, func() time.Time { return now })

	_, err := r.SupportedIdentifiers(classpath.Classpath{jar})
	require.NoError(t, err)
	assert.EqualValues(t, 1, r.manifests.Len())

	now = now.Add(2 * time.Minute)
	_, err = r.SupportedIdentifiers(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, r.manifests.Len())

	ids, err := r.SupportedIdentifiers(classpath.Classpath{jar})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.B"}, Sorted(ids))
	assert.EqualValues(t, 1, r.manifests.Len())
}

func TestFilterSupported(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name      string
		supported []string
		space     map[string]interface{}
		want      map[string]interface{}
	}{
		{
			name:      "exact match",
			supported: []string{"pkg.sub.Foo"},
			space:     map[string]interface{}{"pkg.sub.Foo": map[string]interface{}{"a": []int{1}}, "other.Bar": nil},
			want:      map[string]interface{}{"pkg.sub.Foo": map[string]interface{}{"a": []int{1}}},
		},
		{
			name:      "key in private submodule",
			supported: []string{"pkg.Foo"},
			space:     map[string]interface{}{"pkg.sub.Foo": 1},
			want:      map[string]interface{}{"pkg.sub.Foo": 1},
		},
		{
			name:      "supported id in private submodule",
			supported: []string{"sklearn.tree._classes.DecisionTreeClassifier"},
			space:     map[string]interface{}{"sklearn.tree.DecisionTreeClassifier": "grid", "sklearn.tree.ExtraTreeClassifier": "grid"},
			want:      map[string]interface{}{"sklearn.tree.DecisionTreeClassifier": "grid"},
		},
		{
			name:      "key is the public form of a supported id",
			supported: []string{"pkg.sub.Foo"},
			space:     map[string]interface{}{"pkg.Foo": 1, "other.Bar": 2},
			want:      map[string]interface{}{"pkg.Foo": 1},
		},
		{
			name:      "nothing supported",
			supported: nil,
			space:     map[string]interface{}{"a.B": 1},
			want:      map[string]interface{}{},
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jar := manifestJar(t, dir, "caps"+string(rune('a'+i))+".jar", propertyLines(tt.supported)...)
			got, err := NewResolver(0).FilterSupported(tt.space, classpath.Classpath{jar})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func propertyLines(ids []string) []string {
	lines := []string{"# generated"}
	for _, id := range ids {
		lines = append(lines, id+" = "+id+"Converter")
	}
	return lines
}

func TestFilterSupportedPropagatesScanErrors(t *testing.T) {
	dir := t.TempDir()
	bad := manifestJar(t, dir, "bad.jar", "garbage")
	_, err := NewResolver(0).FilterSupported(map[string]interface{}{"a.B": 1}, classpath.Classpath{bad})
	assert.ErrorIs(t, err, errdefs.ErrManifestParse)
}
