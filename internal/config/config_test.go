package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/logging"
)

func TestDefault(t *testing.T) {
	home := isolateHome(t)

	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join(home, ".ecotrack", "state.json"), cfg.Store.Path)
	assert.Equal(t, filepath.Join(home, ".ecotrack", "config.yaml"), cfg.ConfigPath())
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, config.DefaultCoachTimeout, cfg.Coach.Timeout)
	assert.Equal(t, "http://127.0.0.1:8787/v1/coach", cfg.Coach.ProxyURL)
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.SetConfigPath(path)
	require.NoError(t, cfg.Set("coach.timeout", "7s"))
	require.NoError(t, cfg.Set("output.default_format", "json"))
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 7s")
	assert.NotContains(t, string(data), "api_key")

	loaded := config.Default()
	loaded.SetConfigPath(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, 7*time.Second, loaded.Coach.Timeout)
	assert.Equal(t, config.FormatJSON, loaded.Output.DefaultFormat)
}

func TestConfig_LoadMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.SetConfigPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, cfg.Load())
}

func TestConfig_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [\n"), 0o600))

	cfg := config.Default()
	cfg.SetConfigPath(path)
	require.Error(t, cfg.Load())
}

func TestConfig_GetSet(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		key   string
		value string
	}{
		{"store.path", "/tmp/state.json"},
		{"output.precision", "3"},
		{"logging.level", "debug"},
		{"coach.enabled", "false"},
		{"coach.timeout", "2m0s"},
		{"server.max_tokens", "512"},
		{"server.read_timeout", "10s"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, cfg.Set(tt.key, tt.value))
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}

	_, err := cfg.Get("coach.api_key")
	require.ErrorIs(t, err, config.ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("nope", "x"), config.ErrUnknownKey)
	require.Error(t, cfg.Set("output.precision", "many"))
	require.Error(t, cfg.Set("coach.timeout", "soon"))
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := config.Default()
	env := map[string]string{
		"ECOTRACK_LOGGING_LEVEL":   "warn",
		"ECOTRACK_COACH_PROXY_URL": "http://proxy.test/v1/coach",
		"ECOTRACK_COACH_TIMEOUT":   "not-a-duration",
	}
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "http://proxy.test/v1/coach", cfg.Coach.ProxyURL)
	assert.Equal(t, config.DefaultCoachTimeout, cfg.Coach.Timeout, "bad values are skipped")
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "ECOTRACK_SERVER_UPSTREAM_URL", config.EnvName("server.upstream_url"))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"bad format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }, "output.default_format"},
		{"bad precision", func(c *config.Config) { c.Output.Precision = 9 }, "output.precision"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"empty store", func(c *config.Config) { c.Store.Path = "" }, "store.path"},
		{"coach without url", func(c *config.Config) { c.Coach.ProxyURL = "" }, "coach.proxy_url"},
		{"zero timeout", func(c *config.Config) { c.Coach.Timeout = 0 }, "coach.timeout"},
		{"zero tokens", func(c *config.Config) { c.Server.MaxTokens = 0 }, "server.max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("disabled coach needs no url", func(t *testing.T) {
		cfg := config.Default()
		cfg.Coach.Enabled = false
		cfg.Coach.ProxyURL = ""
		require.NoError(t, cfg.Validate())
	})
}

func TestKeys_Sorted(t *testing.T) {
	keys := config.Keys()
	require.NotEmpty(t, keys)
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "coach.proxy_url")
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)

	lc.File = "/tmp/ecotrack.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/ecotrack.log", got.File)
}
