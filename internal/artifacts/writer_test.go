package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Memory(t *testing.T) {
	w := NewMemory()

	require.NoError(t, w.WriteFile("sitemaps/sitemap.xml", []byte("<urlset/>")))
	require.NoError(t, w.WriteJSON("manifest.json", map[string]int{"pages": 3}))
	require.NoError(t, w.WriteYAML("chunks/chunk-1.yaml", map[string][]string{"pages": {"a", "b"}}))

	assert.Equal(t, []string{"chunks/chunk-1.yaml", "manifest.json", "sitemaps/sitemap.xml"}, w.Written())

	data, err := w.ReadFile("manifest.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"pages":3}`, string(data))

	data, err = w.ReadFile("chunks/chunk-1.yaml")
	require.NoError(t, err)
	assert.Equal(t, "pages:\n  - a\n  - b\n", string(data))

	assert.Equal(t, len("<urlset/>")+len(`{
  "pages": 3
}
`)+len("pages:\n  - a\n  - b\n"), w.BytesWritten())
}

func TestWriter_CleanOS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "old"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old", "stale.json"), []byte("{}"), 0o600))

	w := NewOS(dir)
	require.NoError(t, w.Clean())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, w.WriteFile("pages/race-guide/boston.json", []byte("{}")))
	_, err = os.Stat(filepath.Join(dir, "pages", "race-guide", "boston.json"))
	assert.NoError(t, err)
}
