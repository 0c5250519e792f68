// Package config loads CLI configuration for runlog from a config file
// and RUNLOG_* environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runlog CLI configuration.
type Config struct {
	Logs      LogsConfig      `mapstructure:"logs"`
	Retention RetentionConfig `mapstructure:"retention"`
}

// LogsConfig locates the session log files.
type LogsConfig struct {
	// Dir is the base log directory.
	Dir string `mapstructure:"dir"`
	// Prefix is the log file name prefix.
	Prefix string `mapstructure:"prefix"`
}

// RetentionConfig controls the cleanup policy applied by `runlog clean`.
type RetentionConfig struct {
	// MaxAgeDays is how long log files are kept.
	MaxAgeDays int `mapstructure:"max_age_days"`
	// Schedule is an optional cron expression for repeated sweeps.
	Schedule string `mapstructure:"schedule"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logs: LogsConfig{
			Dir:    "logs",
			Prefix: "runlog",
		},
		Retention: RetentionConfig{
			MaxAgeDays: 30,
		},
	}
}

// Init wires viper: config file discovery, env overrides, and defaults.
// A missing config file is not an error.
func Init() error {
	defaults := Default()
	viper.SetDefault("logs.dir", defaults.Logs.Dir)
	viper.SetDefault("logs.prefix", defaults.Logs.Prefix)
	viper.SetDefault("retention.max_age_days", defaults.Retention.MaxAgeDays)
	viper.SetDefault("retention.schedule", defaults.Retention.Schedule)

	viper.SetConfigName("runlog")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(ConfigDir())

	viper.SetEnvPrefix("RUNLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// Load reads the configuration from viper into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when
// unmarshaling fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the user's runlog config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "runlog")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".runlog"
	}
	return filepath.Join(home, ".config", "runlog")
}
