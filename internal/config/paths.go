package config

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the data directory
const EnvHome = "TIMEBOXD_HOME"

// GetHome returns $TIMEBOXD_HOME or ~/.timeboxd
func GetHome() string {
	home := os.Getenv(EnvHome)
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".timeboxd"
		}
		return filepath.Join(homeDir, ".timeboxd")
	}
	return ExpandPath(home)
}

// GetDBPath returns $TIMEBOXD_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "state.db")
}

// GetSettingsPath returns $TIMEBOXD_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// GetLockPath returns $TIMEBOXD_HOME/run.lock
func GetLockPath() string {
	return filepath.Join(GetHome(), "run.lock")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
