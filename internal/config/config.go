package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Captain-Vikram/To-Do-List/store"
)

// AppConfig is the fully resolved application configuration.
type AppConfig struct {
	DataDir     string            `mapstructure:"dataDir" validate:"required"`
	Log         LogConfig         `mapstructure:"log"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Appearance  AppearanceConfig  `mapstructure:"appearance"`
	Server      ServerConfig      `mapstructure:"server"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB" validate:"gte=1"`
	MaxBackups int    `mapstructure:"maxBackups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"maxAgeDays" validate:"gte=0"`
}

type PreferencesConfig struct {
	Backend string      `mapstructure:"backend" validate:"oneof=memory sqlite file redis"`
	Path    string      `mapstructure:"path"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0,lte=15"`
	Prefix   string `mapstructure:"prefix"`
}

type AppearanceConfig struct {
	Default string `mapstructure:"default" validate:"oneof=auto dark light"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required,hostname_port"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout" validate:"gt=0"`
	CORSOrigins     []string      `mapstructure:"corsOrigins"`
}

// validate caches struct info across calls.
var validate = validator.New()

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSizeMB", DefaultLogMaxSizeMB)
	v.SetDefault("log.maxBackups", DefaultLogMaxBackups)
	v.SetDefault("log.maxAgeDays", DefaultLogMaxAgeDays)

	v.SetDefault("preferences.backend", DefaultPrefsBackend)
	v.SetDefault("preferences.path", "")
	v.SetDefault("preferences.redis.addr", "localhost:6379")
	v.SetDefault("preferences.redis.password", "")
	v.SetDefault("preferences.redis.db", 0)
	v.SetDefault("preferences.redis.prefix", DefaultRedisPrefix)

	v.SetDefault("appearance.default", AppearanceAuto)

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.readTimeout", DefaultReadTimeout)
	v.SetDefault("server.writeTimeout", DefaultWriteTimeout)
	v.SetDefault("server.shutdownTimeout", DefaultShutdownTimeout)
	v.SetDefault("server.corsOrigins", DefaultCORSOrigins)
}

// Load reads .env, environment variables and the config file into v, then
// unmarshals and validates the result. cfgFile overrides the search paths.
// A missing config file is not an error.
func Load(v *viper.Viper, cfgFile string) (*AppConfig, error) {
	// It's okay if .env doesn't exist.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Debug("ignoring unreadable .env", "error", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DataDir = ResolveDataDir(v)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Preferences.Backend = strings.ToLower(cfg.Preferences.Backend)
	cfg.Appearance.Default = strings.ToLower(cfg.Appearance.Default)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Preferences.Backend == store.BackendRedis && cfg.Preferences.Redis.Addr == "" {
		return errors.New("invalid configuration: preferences.redis.addr is required for the redis backend")
	}
	return nil
}

// PreferenceOptions maps the preferences section to store options, placing
// file-backed stores under the data directory unless a path is configured.
func (c *AppConfig) PreferenceOptions() store.PreferenceOptions {
	path := c.Preferences.Path
	if path == "" {
		switch c.Preferences.Backend {
		case store.BackendSQLite:
			path = filepath.Join(c.DataDir, "preferences.db")
		case store.BackendFile:
			path = filepath.Join(c.DataDir, "preferences.yaml")
		}
	}
	return store.PreferenceOptions{
		Backend:       c.Preferences.Backend,
		Path:          path,
		RedisAddr:     c.Preferences.Redis.Addr,
		RedisPassword: c.Preferences.Redis.Password,
		RedisDB:       c.Preferences.Redis.DB,
		RedisPrefix:   c.Preferences.Redis.Prefix,
	}
}

// LogFile returns the rotating log file used while the terminal UI owns the
// screen.
func (c *AppConfig) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "logs", "todo.log")
}
