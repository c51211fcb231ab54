package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format" yaml:"format"`
	Quiet   bool   `mapstructure:"quiet" yaml:"quiet"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`

	// Default values for the count command
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

// DefaultsConfig holds default values for the count command
type DefaultsConfig struct {
	Command       string `mapstructure:"command" yaml:"command"`
	SkipMalformed bool   `mapstructure:"skip_malformed" yaml:"skip_malformed"`
	Workers       int    `mapstructure:"workers" yaml:"workers"`
	MaxLineBytes  int    `mapstructure:"max_line_bytes" yaml:"max_line_bytes"`
	// MaxPriority below zero disables the priority filter
	MaxPriority int `mapstructure:"max_priority" yaml:"max_priority"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			Command:      "journalctl -o json",
			Workers:      4,
			MaxLineBytes: 1 << 20,
			MaxPriority:  -1,
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.logstat.yaml or ./.logstat.yml
// 2. ~/.logstat.yaml or ~/.logstat.yml
// 3. $XDG_CONFIG_HOME/logstat/config.yaml (or ~/.config/logstat/config.yaml)
// 4. /etc/logstat/config.yaml
func Load() (*Config, error) {
	cfg, _, err := LoadWithMeta()
	return cfg, err
}

// LoadWithMeta is Load that also reports which file was read, if any
func LoadWithMeta() (*Config, string, error) {
	configFile := findConfigFile()
	cfg := Default()
	if configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, configFile, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	return cfg, configFile, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".logstat.yaml", ".logstat.yml", "logstat.yaml", "logstat.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string

	// 1. Current directory
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// 3. Config directory (e.g., ~/.config/logstat/)
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "logstat"))
	}

	// 4. System config
	searchPaths = append(searchPaths, "/etc/logstat")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOGSTAT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOGSTAT_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("LOGSTAT_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("LOGSTAT_COMMAND"); v != "" {
		cfg.Defaults.Command = v
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
