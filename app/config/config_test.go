package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, SourceHTTP, cfg.Catalog.Source)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 512, cfg.Catalog.CacheSize)
	assert.Equal(t, "address:", cfg.History.Prefix)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, 10, cfg.Parser.MinLength)
	assert.Equal(t, 15, cfg.Parser.DebounceMinLength)
	assert.Equal(t, 1500*time.Millisecond, cfg.Parser.DebounceQuiet)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("history:\n  backend: redis\n  limit: 5\nparser:\n  debounce_quiet: 500ms\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), yaml, 0o600))
	t.Setenv("CATALOG_BASE_URL", "http://wilayah.test/api")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.History.Backend)
	assert.Equal(t, 5, cfg.History.Limit)
	assert.Equal(t, 500*time.Millisecond, cfg.Parser.DebounceQuiet)
	assert.Equal(t, "http://wilayah.test/api", cfg.Catalog.BaseURL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "sqlite")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
