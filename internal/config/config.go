package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/schoolbag/internal/bag"
	"github.com/eugenenazirov/schoolbag/internal/i18n"
	"github.com/eugenenazirov/schoolbag/internal/report"
)

const (
	defaultOpenInterval = 2 * time.Second
	defaultLogLevel     = "warn"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	MaxItems        int           `yaml:"max_items"`
	MandatoryItems  []string      `yaml:"mandatory_items"`
	OutputFile      string        `yaml:"output_file"`
	Locale          string        `yaml:"locale"`
	OpenAfterExport bool          `yaml:"open_after_export"`
	OpenInterval    time.Duration `yaml:"open_interval"`
	LogLevel        string        `yaml:"log_level"`
	DryRun          bool          `yaml:"-"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	MaxItems        int      `yaml:"max_items"`
	MandatoryItems  []string `yaml:"mandatory_items"`
	OutputFile      string   `yaml:"output_file"`
	Locale          string   `yaml:"locale"`
	OpenAfterExport *bool    `yaml:"open_after_export"`
	OpenInterval    string   `yaml:"open_interval"`
	LogLevel        string   `yaml:"log_level"`
}

// CLIOverrides holds command-line flag overrides. Nil pointers mean the flag
// was not given; any given value is validated like the other sources.
type CLIOverrides struct {
	ConfigFile string
	MaxItems   *int
	OutputFile *string
	Locale     *string
	NoOpen     bool
	DryRun     bool
	LogLevel   *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables (overridden by YAML)
	applyEnvConfig(&cfg)

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		MaxItems:        bag.DefaultCapacity,
		MandatoryItems:  bag.DefaultMandatory(),
		OutputFile:      report.DefaultFileName,
		Locale:          i18n.BaseLocale,
		OpenAfterExport: true,
		OpenInterval:    defaultOpenInterval,
		LogLevel:        defaultLogLevel,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.MaxItems != 0 {
		cfg.MaxItems = yamlCfg.MaxItems
	}

	if len(yamlCfg.MandatoryItems) > 0 {
		cfg.MandatoryItems = yamlCfg.MandatoryItems
	}

	if yamlCfg.OutputFile != "" {
		cfg.OutputFile = yamlCfg.OutputFile
	}

	if yamlCfg.Locale != "" {
		cfg.Locale = yamlCfg.Locale
	}

	if yamlCfg.OpenAfterExport != nil {
		cfg.OpenAfterExport = *yamlCfg.OpenAfterExport
	}

	if yamlCfg.OpenInterval != "" {
		d, err := time.ParseDuration(yamlCfg.OpenInterval)
		if err != nil {
			return fmt.Errorf("parse open_interval: %w", err)
		}
		cfg.OpenInterval = d
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if raw := strings.TrimSpace(os.Getenv("BAG_MAX_ITEMS")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			cfg.MaxItems = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("BAG_MANDATORY_ITEMS")); raw != "" {
		if names := parseNames(raw); len(names) > 0 {
			cfg.MandatoryItems = names
		}
	}

	if path := strings.TrimSpace(os.Getenv("BAG_OUTPUT_FILE")); path != "" {
		cfg.OutputFile = path
	}

	if locale := strings.TrimSpace(os.Getenv("BAG_LOCALE")); locale != "" {
		cfg.Locale = locale
	}

	if raw := strings.TrimSpace(os.Getenv("BAG_OPEN_AFTER_EXPORT")); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.OpenAfterExport = value
		}
	}

	if level := strings.TrimSpace(os.Getenv("BAG_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.MaxItems != nil {
		cfg.MaxItems = *overrides.MaxItems
	}

	if overrides.OutputFile != nil && *overrides.OutputFile != "" {
		cfg.OutputFile = *overrides.OutputFile
	}

	if overrides.Locale != nil && *overrides.Locale != "" {
		cfg.Locale = *overrides.Locale
	}

	if overrides.NoOpen {
		cfg.OpenAfterExport = false
	}

	if overrides.DryRun {
		cfg.DryRun = true
		cfg.OpenAfterExport = false
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.MaxItems < 1 {
		return fmt.Errorf("max items must be >= 1, got %d", cfg.MaxItems)
	}
	if len(cfg.MandatoryItems) == 0 {
		return fmt.Errorf("mandatory items cannot be empty")
	}
	if strings.TrimSpace(cfg.OutputFile) == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if cfg.OpenInterval < 0 {
		return fmt.Errorf("open interval must be >= 0")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return nil
}

// parseNames splits a comma-separated list, dropping blank entries.
func parseNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
