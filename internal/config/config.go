// Package config defines the forge configuration, loaded through viper
// from a config file, environment variables (FORGE_ prefix), and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete forge configuration.
type Config struct {
	Validation ValidationConfig `mapstructure:"validation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Paths      PathsConfig      `mapstructure:"paths"`
}

// ValidationConfig holds the default search options for validators.
// Individual commands may override any of these with flags.
type ValidationConfig struct {
	// Directory is where validators look for plan/spec files.
	Directory string `mapstructure:"directory"`
	// Extension filters candidate files.
	Extension string `mapstructure:"extension"`
	// MaxAgeMinutes bounds how old a file may be and still count as fresh.
	MaxAgeMinutes int `mapstructure:"max_age_minutes"`
	// WaitSeconds, when positive, makes validators wait up to this long
	// for a candidate file to appear before blocking on absence.
	WaitSeconds int `mapstructure:"wait_seconds"`
}

// LoggingConfig controls the audit log.
type LoggingConfig struct {
	// Level is the minimum level recorded (DEBUG/INFO/WARN/ERROR).
	Level string `mapstructure:"level"`
	// File is the log file name inside the state logs directory.
	File string `mapstructure:"file"`
	// MaxSizeMB rotates the log file past this size; 0 disables rotation.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress"`
}

// PathsConfig holds filesystem locations for forge state.
type PathsConfig struct {
	// StateDir holds logs and session stats. Defaults to ~/.claude/forge.
	StateDir string `mapstructure:"state_dir"`
}

// SetDefaults registers the default configuration values with viper.
func SetDefaults() {
	viper.SetDefault("validation.directory", "specs")
	viper.SetDefault("validation.extension", ".md")
	viper.SetDefault("validation.max_age_minutes", 5)
	viper.SetDefault("validation.wait_seconds", 0)

	viper.SetDefault("logging.level", "INFO")
	viper.SetDefault("logging.file", "forge-cli.log")
	viper.SetDefault("logging.max_size_mb", 10)
	viper.SetDefault("logging.max_backups", 5)
	viper.SetDefault("logging.compress", false)

	viper.SetDefault("paths.state_dir", DefaultStateDir())
}

// Load unmarshals the effective configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Paths.StateDir = expandHome(cfg.Paths.StateDir)
	return &cfg, nil
}

// ConfigDir returns the directory searched for the forge config file.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "forge")
}

// DefaultStateDir returns the default location for forge logs and stats.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".forge"
	}
	return filepath.Join(home, ".claude", "forge")
}

// LogPath returns the full path of the audit log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.StateDir, "logs", c.Logging.File)
}

// StatsPath returns the full path of the session stats store.
func (c *Config) StatsPath() string {
	return filepath.Join(c.Paths.StateDir, "session_stats.json")
}

// MaxAge returns the validation freshness window as a duration.
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.Validation.MaxAgeMinutes) * time.Minute
}

// Wait returns the validation wait bound as a duration.
func (c *Config) Wait() time.Duration {
	return time.Duration(c.Validation.WaitSeconds) * time.Second
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
