package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{Path: "/home/u/.ecotrack/state.json"},
		Output: config.OutputConfig{
			DefaultFormat: "table",
			Precision:     2,
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Coach: config.CoachConfig{
			Enabled:  true,
			ProxyURL: "http://127.0.0.1:8787/v1/coach",
			Timeout:  15 * time.Second,
		},
		Server: config.ServerConfig{
			Address:   "127.0.0.1:8787",
			Model:     "gpt-4o-mini",
			MaxTokens: 300,
		},
	}
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
  precision: 1
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, 1, target.Output.Precision)
	assert.Equal(t, "info", target.Logging.Level, "absent sections are untouched")
	assert.Equal(t, "/home/u/.ecotrack/state.json", target.Store.Path)
}

func TestShallowMergeYAML_SectionReplacedWhole(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
server:
  address: 0.0.0.0:9000
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "0.0.0.0:9000", target.Server.Address)
	assert.Empty(t, target.Server.Model, "fields missing from an overlaid section are zeroed")
	assert.Zero(t, target.Server.MaxTokens)
}

func TestShallowMergeYAML_CoachDuration(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
coach:
  enabled: false
  proxy_url: http://example.test/v1/coach
  timeout: 3s
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.False(t, target.Coach.Enabled)
	assert.Equal(t, 3*time.Second, target.Coach.Timeout)
}

func TestShallowMergeYAML_EmptyAndCommentOnly(t *testing.T) {
	for _, content := range []string{"", "# just a comment\n"} {
		target := newDefaultTarget()
		require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
		assert.Equal(t, newDefaultTarget(), target)
	}
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
logging:
  level: debug
  format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "debug", target.Logging.Level)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "x"))
	require.Error(t, config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "output: [unclosed")))
}
