package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/l3aro/igv-query/pkg/filter"
	"gopkg.in/yaml.v3"
)

// ExportFormat selects the serialization used by the export command.
type ExportFormat string

const (
	FormatMsgpack ExportFormat = "msgpack"
	FormatJSON    ExportFormat = "json"
)

// Config holds all configuration for igvq
type Config struct {
	// DefaultFilter is applied when no --filter flag is given. The empty
	// string means every graph is selected.
	DefaultFilter string `yaml:"default_filter" env:"IGVQ_DEFAULT_FILTER"`

	// ExportFormat is the default format for the export command.
	ExportFormat ExportFormat `yaml:"export_format" env:"IGVQ_EXPORT_FORMAT"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" env:"IGVQ_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultFilter: "true",
		ExportFormat:  FormatMsgpack,
		Verbose:       false,
	}
}

// globalConfigFilePath returns the global config file path (~/.igvq/config.yaml)
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".igvq/config.yaml"
	}
	return filepath.Join(home, ".igvq", "config.yaml")
}

// projectConfigFilePath returns the project-level config file path (./.igvq/config.yaml)
func projectConfigFilePath() string {
	return ".igvq/config.yaml"
}

// GlobalPath exposes the global config location for the init command.
func GlobalPath() string {
	return globalConfigFilePath()
}

// ProjectPath exposes the project config location for the init command.
func ProjectPath() string {
	return projectConfigFilePath()
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.igvq/config.yaml)
// 3. Global config (~/.igvq/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalConfigPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalConfigPath, err)
		}
	}

	projectConfigPath := projectConfigFilePath()
	if data, err := os.ReadFile(projectConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectConfigPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file path.
// It creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IGVQ_DEFAULT_FILTER"); v != "" {
		cfg.DefaultFilter = v
	}
	if v := os.Getenv("IGVQ_EXPORT_FORMAT"); v != "" {
		cfg.ExportFormat = ExportFormat(v)
	}
	if v := os.Getenv("IGVQ_VERBOSE"); v != "" {
		cfg.Verbose = v == "true" || v == "1" || v == "yes"
	}
}

// Validate checks that the configuration has valid required fields
func (c *Config) Validate() error {
	switch c.ExportFormat {
	case FormatMsgpack, FormatJSON:
	default:
		return fmt.Errorf("invalid export_format: %s (must be 'msgpack' or 'json')", c.ExportFormat)
	}

	if _, err := filter.Compile(c.DefaultFilter); err != nil {
		return fmt.Errorf("invalid default_filter: %w", err)
	}

	return nil
}
