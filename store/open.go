package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Preference backends understood by OpenPreferences.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// PreferenceOptions selects and configures a preference backend.
type PreferenceOptions struct {
	Backend string
	// Path is the database file (sqlite) or YAML file (file).
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// OpenPreferences constructs the backend named by opts.Backend.
func OpenPreferences(ctx context.Context, opts PreferenceOptions) (PreferenceStore, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendMemory:
		return NewMemoryPreferences(), nil
	case BackendSQLite:
		return NewSQLitePreferences(opts.Path)
	case BackendFile:
		return NewFilePreferences(afero.NewOsFs(), opts.Path)
	case BackendRedis:
		return DialRedisPreferences(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("unsupported preferences backend: %s. Supported backends are memory, sqlite, file, redis", opts.Backend)
	}
}
