package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "https://www.alphavantage.co", config.Clients.AlphaVantage.BaseURL)
	assert.Equal(t, 5, config.Clients.AlphaVantage.RateLimit)
	assert.Equal(t, "data/watchlist", config.Storage.Watchlist.Path)
	assert.Equal(t, "info", config.Logging.Level)
	assert.False(t, config.IsProduction())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockdash.toml")
	content := `
environment = "production"

[server]
port = 9090

[clients.alphavantage]
api_key = "file-key"
timeout = "5s"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	// Unset file keys keep their defaults.
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, "https://www.alphavantage.co", config.Clients.AlphaVantage.BaseURL)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 5*time.Second, config.Clients.AlphaVantage.GetTimeout())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STOCKDASH_ENV", "prod")
	t.Setenv("STOCKDASH_PORT", "7070")
	t.Setenv("STOCKDASH_LOG_LEVEL", "warn")
	t.Setenv("STOCKDASH_DATA_PATH", "/var/lib/stockdash")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "/var/lib/stockdash", config.Storage.Watchlist.Path)
}

func TestGetTimeout_InvalidFallsBack(t *testing.T) {
	c := AlphaVantageConfig{Timeout: "not-a-duration"}
	assert.Equal(t, 30*time.Second, c.GetTimeout())
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("env wins over config", func(t *testing.T) {
		t.Setenv("ALPHAVANTAGE_API_KEY", "env-key")
		config := NewDefaultConfig()
		config.Clients.AlphaVantage.APIKey = "file-key"

		key, err := config.ResolveAPIKey()
		require.NoError(t, err)
		assert.Equal(t, "env-key", key)
	})

	t.Run("config fallback", func(t *testing.T) {
		t.Setenv("ALPHAVANTAGE_API_KEY", "")
		t.Setenv("STOCKDASH_ALPHAVANTAGE_API_KEY", "")
		config := NewDefaultConfig()
		config.Clients.AlphaVantage.APIKey = "file-key"

		key, err := config.ResolveAPIKey()
		require.NoError(t, err)
		assert.Equal(t, "file-key", key)
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Setenv("ALPHAVANTAGE_API_KEY", "")
		t.Setenv("STOCKDASH_ALPHAVANTAGE_API_KEY", "")
		config := NewDefaultConfig()

		_, err := config.ResolveAPIKey()
		assert.Error(t, err)
	})
}
