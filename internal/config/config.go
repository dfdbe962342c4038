// Package config locates the project's local configuration area and loads
// the optional macrec configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirName is the per-project configuration directory.
const DirName = ".macrec"

// configFile is the optional configuration file inside DirName.
const configFile = "config.yaml"

// Config controls where the history log and macro roots live. Every field
// is optional; zero values take project-relative defaults in Load.
type Config struct {
	// LogPath is the SQLite history log location.
	LogPath string `yaml:"log_path"`

	// WritableRoot is the directory user-authored macros are stored in.
	WritableRoot string `yaml:"writable_root"`

	// SearchRoots are read-only macro directories scanned after the
	// writable root, in order.
	SearchRoots []string `yaml:"search_roots"`
}

// Load reads <projectDir>/.macrec/config.yaml if present and fills in
// defaults for anything unset. A missing file is not an error - it yields
// the pure-default configuration. Relative paths in the file are resolved
// against projectDir.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(projectDir, DirName, configFile)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(projectDir, DirName, "history.db")
	}
	if cfg.WritableRoot == "" {
		cfg.WritableRoot = filepath.Join(projectDir, DirName, "macros")
	}

	cfg.LogPath = resolveAgainst(projectDir, cfg.LogPath)
	cfg.WritableRoot = resolveAgainst(projectDir, cfg.WritableRoot)
	for i, root := range cfg.SearchRoots {
		cfg.SearchRoots[i] = resolveAgainst(projectDir, root)
	}

	return cfg, nil
}

// FindProjectDir walks up from start looking for a directory containing
// DirName. Falls back to start when nothing above it has one.
func FindProjectDir(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for {
		info, err := os.Stat(filepath.Join(dir, DirName))
		if err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			abs, err := filepath.Abs(start)
			if err != nil {
				return start
			}
			return abs
		}
		dir = parent
	}
}

// resolveAgainst makes path absolute relative to base if it isn't already.
func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
