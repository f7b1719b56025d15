package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalDataDir returns the path to the global data directory (~/.todo).
// It's a variable to allow overriding in tests.
var GetGlobalDataDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DataDirName), nil
}

// ResolveDataDir returns the directory holding preferences, logs and crash logs.
// Resolution order (first match wins):
// 1. Explicit "dataDir" (flag/env/config file)
// 2. Local project directory ./.todo (if exists)
// 3. XDG_DATA_HOME/todo (if XDG_DATA_HOME is set)
// 4. Global fallback ~/.todo
func ResolveDataDir(v *viper.Viper) string {
	if path := v.GetString("dataDir"); path != "" {
		return path
	}

	if info, err := os.Stat(DataDirName); err == nil && info.IsDir() {
		return DataDirName
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "todo")
	}

	dir, err := GetGlobalDataDir()
	if err != nil {
		return DataDirName
	}
	return dir
}
