package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/config"
)

// writeProjectConfig creates $root/.ecotrack/config.yaml with content.
func writeProjectConfig(t *testing.T, root, content string) string {
	t.Helper()
	dir := filepath.Join(root, ".ecotrack")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("ECOTRACK_HOME", filepath.Join(home, ".ecotrack"))
	t.Setenv("ECOTRACK_PROJECT_DIR", "")
	return home
}

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	isolateHome(t)
	flagDir := t.TempDir()

	got := config.ResolveProjectDir(context.Background(), flagDir, "")
	assert.Equal(t, filepath.Join(flagDir, ".ecotrack"), got)
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	isolateHome(t)
	flagDir := t.TempDir()
	t.Setenv("ECOTRACK_PROJECT_DIR", t.TempDir())

	got := config.ResolveProjectDir(context.Background(), flagDir, "")
	assert.Equal(t, filepath.Join(flagDir, ".ecotrack"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	isolateHome(t)
	envDir := t.TempDir()
	t.Setenv("ECOTRACK_PROJECT_DIR", envDir)

	got := config.ResolveProjectDir(context.Background(), "", "")
	assert.Equal(t, filepath.Join(envDir, ".ecotrack"), got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeProjectConfig(t, root, "output:\n  default_format: json\n")

	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got := config.ResolveProjectDir(context.Background(), "", subDir)
	assert.Equal(t, filepath.Join(root, ".ecotrack"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_IgnoresGlobalDir(t *testing.T) {
	home := isolateHome(t)
	writeProjectConfig(t, home, "logging:\n  level: debug\n")

	got := config.ResolveProjectDir(context.Background(), "", home)
	assert.Empty(t, got, "the global config dir is never a project")
}

func TestResolveProjectDir_NoProjectFallback(t *testing.T) {
	isolateHome(t)

	got := config.ResolveProjectDir(context.Background(), "", t.TempDir())
	assert.Empty(t, got)
}

func TestResolveProjectDir_SuffixNotDoubled(t *testing.T) {
	isolateHome(t)

	got := config.ResolveProjectDir(context.Background(), "/my/project/.ecotrack", "")
	assert.Equal(t, "/my/project/.ecotrack", got)
}

func TestSetResolvedProjectDir_RoundTrip(t *testing.T) {
	t.Cleanup(func() { config.SetResolvedProjectDir("") })

	config.SetResolvedProjectDir("/some/project/.ecotrack")
	assert.Equal(t, "/some/project/.ecotrack", config.GetResolvedProjectDir())
}

func TestNewWithProjectDir_EmptyIsGlobal(t *testing.T) {
	isolateHome(t)

	cfg := config.NewWithProjectDir(context.Background(), "")
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
}

func TestNewWithProjectDir_OverlayWins(t *testing.T) {
	isolateHome(t)
	projectDir := writeProjectConfig(t, t.TempDir(), "coach:\n  enabled: false\n  proxy_url: http://team:9000/v1/coach\n  timeout: 5s\n")

	cfg := config.NewWithProjectDir(context.Background(), projectDir)
	assert.False(t, cfg.Coach.Enabled)
	assert.Equal(t, "http://team:9000/v1/coach", cfg.Coach.ProxyURL)
	assert.Equal(t, "info", cfg.Logging.Level, "absent sections keep global values")
}

func TestNewWithProjectDir_EnvBeatsOverlay(t *testing.T) {
	isolateHome(t)
	projectDir := writeProjectConfig(t, t.TempDir(), "output:\n  default_format: json\n  precision: 2\n")
	t.Setenv("ECOTRACK_OUTPUT_DEFAULT_FORMAT", "ndjson")

	cfg := config.NewWithProjectDir(context.Background(), projectDir)
	assert.Equal(t, config.FormatNDJSON, cfg.Output.DefaultFormat)
}

func TestNewWithProjectDir_CorruptedYAML(t *testing.T) {
	isolateHome(t)
	projectDir := writeProjectConfig(t, t.TempDir(), "output: [unclosed")

	cfg := config.NewWithProjectDir(context.Background(), projectDir)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat, "falls back to global config")
}

func TestNewWithProjectDir_MissingConfigYAML(t *testing.T) {
	isolateHome(t)
	projectDir := filepath.Join(t.TempDir(), "project", ".ecotrack")

	cfg := config.NewWithProjectDir(context.Background(), projectDir)
	require.NotNil(t, cfg)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
}
