// Package config provides configuration management for gitdeck.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the gitdeck application.
type Config struct {
	Storage       StorageConfig      `mapstructure:"storage"`
	Scan          ScanConfig         `mapstructure:"scan"`
	Git           GitConfig          `mapstructure:"git"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Log           LogConfig          `mapstructure:"log"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ScanConfig holds commit-scan settings.
type ScanConfig struct {
	BatchSize int `mapstructure:"batch_size"`
}

// GitConfig holds external git tool settings.
type GitConfig struct {
	Binary string `mapstructure:"binary"`
}

// NotificationConfig holds desktop notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage:       StorageConfig{DataDir: "~/.gitdeck"},
		Scan:          ScanConfig{BatchSize: 100},
		Git:           GitConfig{Binary: "git"},
		Notifications: NotificationConfig{Enabled: true},
		MCP:           MCPConfig{Enabled: true},
		Log:           LogConfig{Level: "info", Format: "text"},
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.gitdeck" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".gitdeck")
	}

	if cfg.Scan.BatchSize < 1 {
		cfg.Scan.BatchSize = 100
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("scan.batch_size", cfg.Scan.BatchSize)
	viper.Set("git.binary", cfg.Git.Binary)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("mcp.enabled", cfg.MCP.Enabled)
	viper.Set("log.level", cfg.Log.Level)
	viper.Set("log.format", cfg.Log.Format)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".gitdeck", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "gitdeck.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("storage.data_dir", "~/.gitdeck")
	viper.SetDefault("scan.batch_size", 100)
	viper.SetDefault("git.binary", "git")
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("mcp.enabled", true)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}
