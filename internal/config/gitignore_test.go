package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/config"
)

func gitignoreLines(t *testing.T, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestGitignoreContent_KeepsActivityDataAndCredentialsOut(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	require.True(t, created)

	lines := gitignoreLines(t, dir)
	tests := []struct {
		pattern string
		ignored bool
	}{
		{"state.json", true},
		{"state.json.lock", true},
		{"state.json.tmp", true},
		{".env", true},
		{"*.log", true},
		{"config.yaml", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()
			if tt.ignored {
				assert.Contains(t, lines, tt.pattern, "pattern must be on a line of its own")
				return
			}
			assert.NotContains(t, lines, tt.pattern, "project config stays tracked")
		})
	}
}

func TestEnsureGitignore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		setup       func(t *testing.T) string
		wantCreated bool
		wantContent string
	}{
		{
			name:        "fresh project dir",
			setup:       func(t *testing.T) string { return filepath.Join(t.TempDir(), ".ecotrack") },
			wantCreated: true,
			wantContent: config.GitignoreContent(),
		},
		{
			name: "nested project dir is created",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "home", "projects", "garden", ".ecotrack")
			},
			wantCreated: true,
			wantContent: config.GitignoreContent(),
		},
		{
			name: "user edits are preserved",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				custom := "# shared with the team\nstate.json\n!config.yaml\n"
				require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(custom), 0o600))
				return dir
			},
			wantCreated: false,
			wantContent: "# shared with the team\nstate.json\n!config.yaml\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := tt.setup(t)

			created, err := config.EnsureGitignore(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)

			data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(data))

			again, err := config.EnsureGitignore(dir)
			require.NoError(t, err)
			assert.False(t, again, "an existing .gitignore is never rewritten")
		})
	}
}

func TestEnsureGitignore_PathIsAFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	created, err := config.EnsureGitignore(file)
	require.Error(t, err)
	assert.False(t, created)
}
