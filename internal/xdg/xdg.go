// Package xdg provides helpers to resolve XDG Base Directory paths for fsql.
// It implements the XDG Base Directory specification for determining
// appropriate locations for configuration files and state data, falling back
// to the traditional dot-directories when the XDG variables are unset.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the XDG config directory for fsql.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/fsql when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "fsql")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// StateDir returns the XDG state directory for fsql, where the statement
// history lives. The directory is created with private permissions (0700)
// if missing. It falls back to ~/.local/state/fsql when XDG_STATE_HOME is
// unset.
func StateDir() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(base, "fsql")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
