package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults for missing keys", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: every other value falls back to its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8000", conf.HTTPPort)
		assert.Equal(t, "3000", conf.SocketPort)
		assert.Equal(t, 7, conf.Game.BoardSize)
		assert.Equal(t, 4, conf.Game.WinLength)
		assert.True(t, conf.Game.HorizontalIsolation)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Empty(t, conf.Postgres.DSN)
	})

	t.Run("Reads nested sections", func(t *testing.T) {
		path := writeConfig(t, `
game:
  board-size: 9
  horizontal-isolation: false
redis:
  host: cache
  port: "6380"
postgres:
  dsn: postgres://user:pass@db:5432/stacky
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 9, conf.Game.BoardSize)
		assert.False(t, conf.Game.HorizontalIsolation)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "postgres://user:pass@db:5432/stacky", conf.Postgres.DSN)
	})

	t.Run("Fails on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to load config file")
	})
}
