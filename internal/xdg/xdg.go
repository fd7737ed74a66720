// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg resolves the XDG Base Directory locations used by vitrine.
//
// The config directory holds config.json. The state directory holds the
// bbolt file that backs local and session storage when the OS keyring is
// not used. Both directories are created with private permissions.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name under each XDG base.
const AppName = "vitrine"

const (
	configFileName  = "config.json"
	storageFileName = "storage.db"
)

// ConfigDir returns the XDG config directory for vitrine, creating it with
// 0700 if missing. It falls back to ~/.config/vitrine when XDG_CONFIG_HOME
// is unset.
func ConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for vitrine, creating it with
// 0700 if missing. It falls back to ~/.local/state/vitrine when
// XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return appDir("XDG_STATE_HOME", ".local", "state")
}

// ConfigFile returns the path of config.json. The file may not exist.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// StorageFile returns the default path of the bbolt storage file.
func StorageFile() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, storageFileName), nil
}

func appDir(envVar string, homeFallback ...string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(append([]string{home}, homeFallback...)...)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
