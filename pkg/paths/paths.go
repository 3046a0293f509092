// Package paths resolves gitfarm's file locations following the XDG base
// directory specification.
package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appDir = "gitfarm"

// ConfigFile returns the default location of the repo manifest,
// $XDG_CONFIG_HOME/gitfarm/config.yaml.
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, appDir, "config.yaml")
}

// SettingsFile returns the default location of the app settings,
// $XDG_CONFIG_HOME/gitfarm/gitfarm.toml.
func SettingsFile() string {
	return filepath.Join(xdg.ConfigHome, appDir, "gitfarm.toml")
}

// StateDir returns the directory for run state such as log files
func StateDir() string {
	return filepath.Join(xdg.StateHome, appDir)
}
