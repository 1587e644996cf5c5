// Package config loads server configuration from defaults, an optional
// config.yaml in the working directory, and environment variables, in
// increasing order of precedence.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	keyPort     = "port"
	keyDBPath   = "db_path"
	keyLogLevel = "log_level"
)

// Config holds everything the server needs to start.
type Config struct {
	Port     int
	DBPath   string
	LogLevel string
}

// Load resolves the configuration. A missing config.yaml is not an error;
// PORT, DB_PATH, and LOG_LEVEL environment variables override everything.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault(keyPort, 3001)
	v.SetDefault(keyDBPath, "data/pet-care.db")
	v.SetDefault(keyLogLevel, "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.BindEnv(keyPort, "PORT")
	v.BindEnv(keyDBPath, "DB_PATH")
	v.BindEnv(keyLogLevel, "LOG_LEVEL")

	cfg := &Config{
		Port:     v.GetInt(keyPort),
		DBPath:   v.GetString(keyDBPath),
		LogLevel: v.GetString(keyLogLevel),
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}
