// Package config provides centralized configuration for todo.
// All default values are defined here to keep a single source of truth.
package config

import "time"

const (
	// ConfigName is the config file base name searched in ./ and $HOME.
	ConfigName = ".todo"

	// EnvPrefix prefixes environment overrides, e.g. TODO_LOG_LEVEL.
	EnvPrefix = "TODO"

	// DataDirName is the per-user and per-project data directory name.
	DataDirName = ".todo"
)

// Appearance modes for appearance.default.
const (
	AppearanceAuto  = "auto"
	AppearanceDark  = "dark"
	AppearanceLight = "light"
)

const (
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultLogMaxSizeMB    = 10
	DefaultLogMaxBackups   = 3
	DefaultLogMaxAgeDays   = 28
	DefaultPrefsBackend    = "sqlite"
	DefaultRedisPrefix     = "todo:prefs:"
	DefaultServerAddr      = "127.0.0.1:8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// DefaultCORSOrigins are the origins allowed by the HTTP view unless configured.
var DefaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
