// Package config provides CLI configuration management for the chatlens
// command-line tool. It supports loading configuration from YAML files,
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/otherjamesbrown/chatlens/pkg/language"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Default configuration values.
const (
	DefaultLanguage      = "English"
	DefaultOutputFormat  = OutputFormatText
	DefaultStarterGap    = 7 * time.Hour
	DefaultActivityYears = 1
	DefaultConfigDir     = ".chatlens"
	DefaultConfigFile    = "config.yaml"
)

// AnalysisConfig holds tunables for the derived statistics.
type AnalysisConfig struct {
	// StarterGap is the silence after which the next message counts as a
	// conversation starter.
	StarterGap time.Duration `yaml:"starter_gap,omitempty"`

	// ActivityYears is how many trailing calendar years the smoothed
	// activity series covers.
	ActivityYears int `yaml:"activity_years,omitempty"`
}

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// Language selects the export-language pattern table used to
	// classify media placeholders and system markers.
	Language string `yaml:"language"`

	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`

	// Analysis holds the derived-statistics tunables.
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Language:     DefaultLanguage,
		OutputFormat: DefaultOutputFormat,
		Analysis: AnalysisConfig{
			StarterGap:    DefaultStarterGap,
			ActivityYears: DefaultActivityYears,
		},
	}
}

// ConfigDir returns the configuration directory path.
// Uses $CHATLENS_CONFIG_DIR if set, otherwise ~/.chatlens
func ConfigDir() (string, error) {
	if dir := os.Getenv("CHATLENS_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the CLI configuration from file and environment variables.
// Configuration is loaded in this order (later sources override earlier):
// 1. Default values
// 2. Config file (~/.chatlens/config.yaml or $CHATLENS_CONFIG_DIR/config.yaml)
// 3. Environment variables (CHATLENS_LANGUAGE, CHATLENS_OUTPUT_FORMAT, ...)
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// We need a temp struct for unmarshaling durations as strings.
	type analysisFile struct {
		StarterGap    string `yaml:"starter_gap"`
		ActivityYears int    `yaml:"activity_years"`
	}
	type configFile struct {
		Language     string       `yaml:"language"`
		OutputFormat OutputFormat `yaml:"output_format"`
		Debug        bool         `yaml:"debug"`
		Analysis     analysisFile `yaml:"analysis"`
	}

	var fileCfg configFile
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.Language != "" {
		cfg.Language = fileCfg.Language
	}
	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	cfg.Debug = fileCfg.Debug
	if fileCfg.Analysis.StarterGap != "" {
		gap, err := time.ParseDuration(fileCfg.Analysis.StarterGap)
		if err != nil {
			return fmt.Errorf("parsing starter_gap: %w", err)
		}
		cfg.Analysis.StarterGap = gap
	}
	if fileCfg.Analysis.ActivityYears != 0 {
		cfg.Analysis.ActivityYears = fileCfg.Analysis.ActivityYears
	}

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("CHATLENS_LANGUAGE"); v != "" {
		cfg.Language = v
	}

	if v := os.Getenv("CHATLENS_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("CHATLENS_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	if v := os.Getenv("CHATLENS_STARTER_GAP"); v != "" {
		if gap, err := time.ParseDuration(v); err == nil {
			cfg.Analysis.StarterGap = gap
		}
	}
}

// Validate checks that the configuration is valid.
func (c *CLIConfig) Validate() error {
	if _, err := language.Get(c.Language); err != nil {
		return err
	}

	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output_format: %q (must be text, json, or yaml)", c.OutputFormat)
	}

	if c.Analysis.StarterGap <= 0 {
		return fmt.Errorf("starter_gap must be positive")
	}

	if c.Analysis.ActivityYears <= 0 {
		return fmt.Errorf("activity_years must be positive")
	}

	return nil
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *CLIConfig) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)

	// Convert to YAML-friendly format with durations as strings.
	type analysisFile struct {
		StarterGap    string `yaml:"starter_gap,omitempty"`
		ActivityYears int    `yaml:"activity_years,omitempty"`
	}
	type configFile struct {
		Language     string       `yaml:"language"`
		OutputFormat OutputFormat `yaml:"output_format"`
		Debug        bool         `yaml:"debug,omitempty"`
		Analysis     analysisFile `yaml:"analysis,omitempty"`
	}

	fileCfg := configFile{
		Language:     cfg.Language,
		OutputFormat: cfg.OutputFormat,
		Debug:        cfg.Debug,
		Analysis: analysisFile{
			StarterGap:    cfg.Analysis.StarterGap.String(),
			ActivityYears: cfg.Analysis.ActivityYears,
		},
	}

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
