package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DataPaths holds the per-user locations the CLI reads and writes
type DataPaths struct {
	ConfigDir string // directory holding config.yaml
	DataDir   string // directory holding the state database
}

// DetectDataPaths resolves the default locations for the current OS
func DetectDataPaths() (DataPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DataPaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	return dataPathsFor(runtime.GOOS, home, os.Getenv)
}

func dataPathsFor(goos, home string, getenv func(string) string) (DataPaths, error) {
	switch goos {
	case "darwin":
		base := filepath.Join(home, "Library", "Application Support", appName)
		return DataPaths{
			ConfigDir: filepath.Join(home, ".config", appName),
			DataDir:   base,
		}, nil
	case "linux":
		dataHome := getenv("XDG_DATA_HOME")
		if dataHome == "" {
			dataHome = filepath.Join(home, ".local", "share")
		}
		configHome := getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			configHome = filepath.Join(home, ".config")
		}
		return DataPaths{
			ConfigDir: filepath.Join(configHome, appName),
			DataDir:   filepath.Join(dataHome, appName),
		}, nil
	case "windows":
		appData := getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return DataPaths{
			ConfigDir: filepath.Join(appData, appName),
			DataDir:   filepath.Join(appData, appName, "data"),
		}, nil
	default:
		return DataPaths{}, fmt.Errorf("unsupported OS: %s (only macOS, Linux and Windows are supported)", goos)
	}
}

// ConfigFile returns the default config.yaml path
func (p DataPaths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// DefaultStoragePath returns the default database location for driver
func (p DataPaths) DefaultStoragePath(driver string) string {
	switch driver {
	case "pebble":
		return filepath.Join(p.DataDir, "pebble")
	case "redis", "memory":
		return ""
	default:
		return filepath.Join(p.DataDir, "state.db")
	}
}
