package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	BaseFolder string          `yaml:"base_folder" envconfig:"BASE_FOLDER"`
	UserName   string          `yaml:"user_name" envconfig:"USER_NAME" validate:"required"`
	Reports    []ReportEntry   `yaml:"reports" validate:"required,min=1,dive"`
	Detection  DetectionConfig `yaml:"detection" envconfig:"DETECTION"`
	Logging    LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Server     ServerConfig    `yaml:"server" envconfig:"SERVER"`
}

// ReportEntry maps a logical report name to a spreadsheet export.
// HeaderRow, when set, skips header detection for that file entirely.
type ReportEntry struct {
	Name      string `yaml:"name" validate:"required"`
	File      string `yaml:"file" validate:"required"`
	Sheet     string `yaml:"sheet"`
	HeaderRow *int   `yaml:"header_row"`
}

// DetectionConfig tunes the header-row locator
type DetectionConfig struct {
	WindowSize  int      `yaml:"window_size" envconfig:"WINDOW_SIZE"`
	MinScore    float64  `yaml:"min_score" envconfig:"MIN_SCORE"`
	FallbackRow int      `yaml:"fallback_row" envconfig:"FALLBACK_ROW"`
	Keywords    []string `yaml:"keywords"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ServerConfig contains HTTP server configuration for the web surface
type ServerConfig struct {
	Port            int `yaml:"port" envconfig:"PORT"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec" envconfig:"READ_TIMEOUT_SEC"`
	WriteTimeoutSec int `yaml:"write_timeout_sec" envconfig:"WRITE_TIMEOUT_SEC"`
	IdleTimeoutSec  int `yaml:"idle_timeout_sec" envconfig:"IDLE_TIMEOUT_SEC"`
}

// Load loads configuration from environment variables and config file.
// Environment variables (SAP_*) take precedence over file values.
func Load() (*Config, error) {
	cfg := Default()

	// Load from config file if one exists
	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(cfg, fileCfg)
	}

	// Environment variables override file values
	if err := envconfig.Process("SAP", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFrom loads configuration from a specific YAML file, applying env
// overrides and validation the same way Load does.
func LoadFrom(path string) (*Config, error) {
	fileCfg, err := loadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from file: %w", err)
	}

	cfg := mergeConfigs(Default(), fileCfg)

	if err := envconfig.Process("SAP", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays file config on top of defaults (file wins when set)
func mergeConfigs(base, file *Config) *Config {
	merged := *base

	if file.BaseFolder != "" {
		merged.BaseFolder = file.BaseFolder
	}
	if file.UserName != "" {
		merged.UserName = file.UserName
	}
	if len(file.Reports) > 0 {
		merged.Reports = file.Reports
	}
	if file.Detection.WindowSize > 0 {
		merged.Detection.WindowSize = file.Detection.WindowSize
	}
	if file.Detection.MinScore > 0 {
		merged.Detection.MinScore = file.Detection.MinScore
	}
	if file.Detection.FallbackRow > 0 {
		merged.Detection.FallbackRow = file.Detection.FallbackRow
	}
	if len(file.Detection.Keywords) > 0 {
		merged.Detection.Keywords = file.Detection.Keywords
	}
	if file.Logging.Level != "" {
		merged.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		merged.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		merged.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		merged.Logging.FilePath = file.Logging.FilePath
	}
	if file.Server.Port > 0 {
		merged.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeoutSec > 0 {
		merged.Server.ReadTimeoutSec = file.Server.ReadTimeoutSec
	}
	if file.Server.WriteTimeoutSec > 0 {
		merged.Server.WriteTimeoutSec = file.Server.WriteTimeoutSec
	}
	if file.Server.IdleTimeoutSec > 0 {
		merged.Server.IdleTimeoutSec = file.Server.IdleTimeoutSec
	}

	return &merged
}

// Validate validates the configuration
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Reports))
	for _, r := range c.Reports {
		if seen[r.Name] {
			return fmt.Errorf("duplicate report name: %s", r.Name)
		}
		seen[r.Name] = true

		if r.HeaderRow != nil && *r.HeaderRow < 0 {
			return fmt.Errorf("report %s: header_row must be non-negative", r.Name)
		}
	}

	if c.Detection.WindowSize <= 0 {
		return fmt.Errorf("detection window size must be positive")
	}
	if c.Detection.MinScore < 0 || c.Detection.MinScore > 1 {
		return fmt.Errorf("detection min score must be within [0,1]")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	return nil
}

// ReportPath resolves the absolute path of a report entry's file
func (c *Config) ReportPath(entry ReportEntry) string {
	if filepath.IsAbs(entry.File) {
		return entry.File
	}
	return filepath.Join(c.BaseFolder, entry.File)
}

// findConfigFile returns the path to the config file
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration mirroring the standard SAP export set
func Default() *Config {
	return &Config{
		BaseFolder: ".",
		UserName:   "Shaun Sauer",
		Reports: []ReportEntry{
			{Name: "cost_estimating", File: "sd-09 Cost Estimating Schedule.xlsx"},
			{Name: "milestone", File: "sd-01 Milestone Schedule.xlsx"},
			{Name: "contract", File: "sd-01 Contract Schedule.xlsx"},
			{Name: "order_data", File: "sd-17 PGE Gas Ops Order Data.xlsx"},
		},
		Detection: DetectionConfig{
			WindowSize:  10,
			MinScore:    0.35,
			FallbackRow: 0,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
			IdleTimeoutSec:  60,
		},
	}
}
