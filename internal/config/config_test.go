package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("site:\n  name: PacePro\n  base_url: https://pacepro.example\ncatalog:\n  marathon: true\n"))
	require.NoError(t, err)

	assert.Equal(t, "PacePro", cfg.Site.Name)
	assert.Equal(t, "./dist", cfg.Output.Directory)
	assert.Equal(t, 1000, cfg.Output.MaxPerChunk)
	assert.Equal(t, 50000, cfg.Output.MaxURLsPerSitemap)
	assert.Equal(t, 30, cfg.Validation.TitleMin)
	assert.Equal(t, 60, cfg.Validation.TitleMax)
	assert.Equal(t, 120, cfg.Validation.DescriptionMin)
	assert.Equal(t, 160, cfg.Validation.DescriptionMax)
	assert.InDelta(t, 0.7, cfg.Validation.SimilarityThreshold, 1e-9)
	assert.Equal(t, 50, cfg.Batch.Size)
	assert.Equal(t, "seobuilder.findings", cfg.Events.Subject)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SEO_TEST_BASE", "https://env.example")
	cfg, err := Parse([]byte("site:\n  base_url: ${SEO_TEST_BASE}\ncatalog:\n  marathon: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.Site.BaseURL)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no sources", "site:\n  base_url: https://x.example\n", "catalog.directories"},
		{"relative base url", "site:\n  base_url: /relative\ncatalog:\n  marathon: true\n", "site.base_url"},
		{"trailing slash", "site:\n  base_url: https://x.example/\ncatalog:\n  marathon: true\n", "slash"},
		{"inverted title band", "site:\n  base_url: https://x.example\ncatalog:\n  marathon: true\nvalidation:\n  title_min: 80\n  title_max: 60\n", "title_min"},
		{"elevation without url", "site:\n  base_url: https://x.example\ncatalog:\n  marathon: true\nelevation:\n  enabled: true\n", "elevation.url"},
		{"bad duration", "site:\n  base_url: https://x.example\ncatalog:\n  marathon: true\nwatch:\n  interval: soon\n", "watch.interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, seoerrors.IsCategory(err, seoerrors.CategoryValidation))
			se, ok := seoerrors.As(err)
			require.True(t, ok)
			assert.Contains(t, se.Context["reason"], tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, seoerrors.IsCategory(err, seoerrors.CategoryConfig))
}

func TestInit_RoundTrip(t *testing.T) {
	t.Setenv("ELEVATION_SERVICE_URL", "http://elevation.local")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err, "second init without force must refuse to overwrite")
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Catalog.Marathon)
	assert.Equal(t, "https://pacepro.example", cfg.Site.BaseURL)
	assert.Equal(t, "http://elevation.local", cfg.Elevation.URL)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

func TestDurations(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "10s", cfg.Elevation.Timeout)
	assert.Equal(t, int64(0), int64(cfg.WatchInterval()))
	assert.Equal(t, "2s", cfg.WatchDebounce().String())
	cfg.Watch.Interval = "15m"
	assert.Equal(t, "15m0s", cfg.WatchInterval().String())
}
