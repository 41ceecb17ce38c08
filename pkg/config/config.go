// Package config loads the application configuration with viper. Files
// live under $WORKDIR/appconfig: default.yaml is always read, then an
// environment-specific overlay, then STAFFDIR_-prefixed env vars win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	App    App    `mapstructure:"app"`
	Server Server `mapstructure:"server"`
	Cache  Cache  `mapstructure:"cache"`
	DB     DB     `mapstructure:"database"`
	Auth   Auth   `mapstructure:"auth"`
	Log    Log    `mapstructure:"log"`
}

type App struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type Server struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// Cache selects and configures the cache driver: "redis" or "memory".
type Cache struct {
	Driver   string         `mapstructure:"driver"`
	Redis    RedisConfig    `mapstructure:"redis"`
	InMemory InMemoryConfig `mapstructure:"inmemory"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Database int32  `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type InMemoryConfig struct {
	DefaultExpiration int64 `mapstructure:"defaultExpiration"`
	CleanupInterval   int64 `mapstructure:"cleanupInterval"`
}

type DB struct {
	DSN string `mapstructure:"dsn"`
}

type Auth struct {
	JWTSecret   string `mapstructure:"jwtSecret"`
	TokenExpiry string `mapstructure:"tokenExpiry"`
	BcryptCost  int    `mapstructure:"bcryptCost"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads default.yaml plus the overlay for the given environment
// from $WORKDIR/appconfig and unmarshals the merged result.
func LoadConfig(environment string) (*AppConfig, error) {
	workdir := os.Getenv("WORKDIR")
	if workdir == "" {
		workdir = "."
	}
	configDir := filepath.Join(workdir, "appconfig")

	v := viper.New()
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetConfigName("default")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	if environment != "" && environment != "default" {
		v.SetConfigName(environment)
		if err := v.MergeInConfig(); err != nil {
			// Overlays are optional; only a parse failure is fatal.
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("failed to merge %s config: %w", environment, err)
			}
		}
	}

	v.SetEnvPrefix("STAFFDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "memory"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}
