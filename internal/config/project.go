package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rshade/companydir/internal/logging"
)

const envProjectDir = "COMPANYDIR_PROJECT_DIR"

// ResolveProjectDir determines the project-local .companydir directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. COMPANYDIR_PROJECT_DIR env var
//  3. walking up from startDir looking for .companydir/config.yaml
//
// The global directory returned by Dir is never treated as a project directory.
// Returns an absolute path or empty string when no project is found.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(envProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	global, _ := filepath.Abs(Dir())

	for {
		candidate := filepath.Join(dir, configDirName)
		if candidate != global {
			if _, statErr := os.Stat(filepath.Join(candidate, configFileName)); statErr == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadWithProject loads the global config at path, shallow-merges
// projectDir/config.yaml on top when present, then applies environment
// overrides and validates. An empty projectDir behaves like Load.
func LoadWithProject(ctx context.Context, path, projectDir string) (*Config, error) {
	if projectDir == "" {
		return Load(path)
	}

	cfg := New()
	if err := readInto(cfg, path); err != nil {
		return nil, err
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, overlayPath); mergeErr != nil {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Ctx(ctx).
				Str("component", "config").
				Str("operation", "merge_project_config").
				Err(mergeErr).
				Str("overlay_path", overlayPath).
				Msg("failed to merge project config, using global config")
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking project config %s: %w", overlayPath, err)
	}

	return finish(cfg, path)
}

// toAbsProjectDir converts dir to an absolute path and appends ".companydir"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Ctx(ctx).
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == configDirName {
		return abs
	}

	return filepath.Join(abs, configDirName)
}
