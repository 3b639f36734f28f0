package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("ROGUEBINGO_PORT", "")

	cfg, err := LoadServer(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadServerFromDotenv(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "")
	// godotenv never overrides variables that are already set, even to ""
	t.Cleanup(func() {
		_ = os.Unsetenv("ROGUEBINGO_PORT")
		_ = os.Unsetenv("LOG_LEVEL")
	})
	path := writeFile(t, ".env", "ROGUEBINGO_PORT=9090\nLOG_LEVEL=debug\n")

	cfg, err := LoadServer(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadServerRedisRequiresURL(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("REDIS_URL", "")

	_, err := LoadServer("")
	assert.Error(t, err)
}

func TestLoadServerRejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "postgres")

	_, err := LoadServer("")
	assert.Error(t, err)
}
