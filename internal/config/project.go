package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/ecotrack/internal/logging"
)

// projectDirName is the per-directory config folder, e.g. a household or
// team checkout that shares coach settings.
const projectDirName = ".ecotrack"

// errNoProject is returned by findProject when no project config exists
// between startDir and the filesystem root.
var errNoProject = errors.New("no project configuration found")

// resolvedProjectDir holds the resolved project directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .ecotrack directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. ECOTRACK_PROJECT_DIR env var
//  3. walking up from startDir to the first .ecotrack/config.yaml that is
//     not the global config directory
//
// Returns the absolute path to $PROJECT/.ecotrack/ or "" if none is found.
// Does NOT create the directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv("ECOTRACK_PROJECT_DIR"); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	projectRoot, err := findProject(startDir)
	if err != nil {
		if !errors.Is(err, errNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}

	return toAbsProjectDir(ctx, projectRoot)
}

// findProject walks up from startDir looking for .ecotrack/config.yaml.
// The global config directory never counts as a project.
func findProject(startDir string) (string, error) {
	if startDir == "" {
		return "", errNoProject
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	globalDir, _ := GetConfigDir()
	if globalDir != "" {
		if abs, absErr := filepath.Abs(globalDir); absErr == nil {
			globalDir = abs
		}
	}

	for {
		candidate := filepath.Join(dir, projectDirName)
		if candidate != globalDir {
			if _, statErr := os.Stat(filepath.Join(candidate, "config.yaml")); statErr == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNoProject
		}
		dir = parent
	}
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, "config.yaml")
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error.
		return cfg
	}

	cfgCopy := New()
	if err := ShallowMergeYAML(cfgCopy, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}
	// Environment still wins over the project file.
	cfgCopy.ApplyEnv(os.LookupEnv)

	return cfgCopy
}

// toAbsProjectDir converts dir to an absolute path and appends ".ecotrack"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == projectDirName {
		return abs
	}

	return filepath.Join(abs, projectDirName)
}
