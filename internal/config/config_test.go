package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelstats/reelstats/internal/ratelimit"
)

func clearKeys(t *testing.T) {
	t.Setenv(EnvTMDBKey, "")
	t.Setenv(EnvOMDbKey, "")
	t.Setenv(EnvYouTubeKey, "")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "reelstats.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.Store.BatchCap)
	assert.Equal(t, 150, cfg.Fetch.CatalogTarget)
	assert.Equal(t, 6, cfg.Fetch.TrailerPages)
	assert.Equal(t, "official trailer", cfg.Fetch.TrailerQuery)
	assert.True(t, cfg.Report.Charts())
	assert.Equal(t, ratelimit.DefaultConfig(), cfg.RateLimits.For("tmdb"))
}

func TestLoadFile(t *testing.T) {
	clearKeys(t)
	path := filepath.Join(t.TempDir(), "reelstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /tmp/movies.db
  debug: true
log:
  mode: production
report:
  charts_enabled: false
store:
  batch_cap: 10
fetch:
  catalog_target: 40
  region: GB
api_keys:
  tmdb: file-key
rate_limits:
  omdb:
    strategy: fixed_delay
    fixed_delay: 100ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/movies.db", cfg.Database.Path)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, "production", cfg.Log.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Report.Charts())
	assert.Equal(t, 10, cfg.Store.BatchCap)
	assert.Equal(t, 40, cfg.Fetch.CatalogTarget)
	assert.Equal(t, "GB", cfg.Fetch.SearchOptions().Region)
	assert.Equal(t, "en", cfg.Fetch.SearchOptions().Language)
	assert.Equal(t, "file-key", cfg.APIKeys.TMDB)

	omdb := cfg.RateLimits.For("omdb")
	assert.Equal(t, ratelimit.StrategyFixedDelay, omdb.Strategy)
	assert.Equal(t, 100*time.Millisecond, omdb.FixedDelay)
}

func TestEnvOverridesKeys(t *testing.T) {
	clearKeys(t)
	t.Setenv(EnvTMDBKey, "env-tmdb")
	t.Setenv(EnvOMDbKey, "env-omdb")

	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_keys:\n  tmdb: file-key\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-tmdb", cfg.APIKeys.TMDB)
	assert.Equal(t, "env-omdb", cfg.APIKeys.OMDb)

	err = cfg.RequireKeys()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingKeys))
	assert.Contains(t, err.Error(), EnvYouTubeKey)

	t.Setenv(EnvYouTubeKey, "env-yt")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.RequireKeys())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [oops"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
