package classpath

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/pmmlkit/common"
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

func TestAssembleKeepsOrderAndDuplicates(t *testing.T) {
	packaged := Classpath{"p1.jar", "p2.jar"}
	user := Classpath{"u1.jar", "p1.jar"}

	cp := Assemble(packaged, user)
	assert.Equal(t, Classpath{"p1.jar", "p2.jar", "u1.jar", "p1.jar"}, cp)

	cp[0] = "changed"
	assert.Equal(t, "p1.jar", packaged[0], "inputs are not aliased")
	assert.Equal(t, Classpath{"u1.jar"}, Assemble(nil, Classpath{"u1.jar"}))
}

func TestString(t *testing.T) {
	sep := string(os.PathListSeparator)
	assert.Equal(t, "a.jar"+sep+"b.jar", Classpath{"a.jar", "b.jar"}.String())
	assert.Equal(t, "", Classpath(nil).String())
}

func TestFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeJar(t, dir, "b.jar", nil)
	writeJar(t, dir, "a.JAR", nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), common.FileMode0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jar"), common.FileMode0755))

	cp, err := FromDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, Classpath{filepath.Join(dir, "a.JAR"), filepath.Join(dir, "b.jar")}, cp)

	_, err = FromDirectory(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestPackagedIsReadOnce(t *testing.T) {
	dir := t.TempDir()
	jar := writeJar(t, dir, "sklearn2pmml.jar", nil)
	t.Setenv(common.ResourcesDirEnv, dir)

	assert.Equal(t, Classpath{jar}, Packaged())

	writeJar(t, dir, "later.jar", nil)
	assert.Equal(t, Classpath{jar}, Packaged())
}

func TestExpand(t *testing.T) {
	cp, err := Expand([]string{"/opt/a.jar", "b.jar"})
	require.NoError(t, err)
	assert.Equal(t, Classpath{"/opt/a.jar", "b.jar"}, cp)

	cp, err = Expand([]string{"~/c.jar"})
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(cp[0], "~"))
}

func TestReadEntry(t *testing.T) {
	dir := t.TempDir()
	with := writeJar(t, dir, "with.jar", map[string]string{
		common.ManifestEntry: "a.B = 1\n",
		"other.txt":          "ignored",
	})
	without := writeJar(t, dir, "without.jar", map[string]string{"other.txt": "ignored"})

	type visit struct {
		bundle  string
		found   bool
		content string
	}
	var visits []visit
	for _, bundle := range []string{with, without} {
		err := ReadEntry(bundle, common.ManifestEntry, func(bundle string, r io.Reader, found bool) error {
			v := visit{bundle: bundle, found: found}
			if found {
				data, err := io.ReadAll(r)
				require.NoError(t, err)
				v.content = string(data)
			}
			visits = append(visits, v)
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []visit{{with, true, "a.B = 1\n"}, {without, false, ""}}, visits)
}

func TestReadEntryFailsOnUnreadableBundle(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.jar")
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), common.FileMode0644))

	calls := 0
	fn := func(string, io.Reader, bool) error {
		calls++
		return nil
	}
	assert.Error(t, ReadEntry(broken, common.ManifestEntry, fn))
	assert.Error(t, ReadEntry(filepath.Join(dir, "missing.jar"), common.ManifestEntry, fn))
	assert.Zero(t, calls)
}
