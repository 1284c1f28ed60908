// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// XDGCacheHome returns the XDG cache home or a default fallback.
func XDGCacheHome() string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".cache")
}

// DefaultLayoutDir returns the default directory for layout files.
func DefaultLayoutDir() string {
	return filepath.Join(XDGConfigHome(), "keylab", "layouts")
}

// DefaultLayoutPath builds the default path of a named layout file.
func DefaultLayoutPath(name string) string {
	return filepath.Join(DefaultLayoutDir(), name+".kl")
}

// DefaultAlphabetPath returns the default alphabet file path.
func DefaultAlphabetPath() string {
	return filepath.Join(XDGConfigHome(), "keylab", "alphabet.txt")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "keylab", "keylab.db")
}

// DefaultCorpusCacheDir returns the cache directory for counted corpora.
func DefaultCorpusCacheDir() string {
	return filepath.Join(XDGCacheHome(), "keylab", "corpus")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "keylab", "config.toml")
}
