package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Scenario ScenarioConfig `mapstructure:"scenario"`
	Report   ReportConfig   `mapstructure:"report"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ScenarioConfig selects which posts to run
type ScenarioConfig struct {
	// Path to a scenario file. Empty runs the built-in example posts.
	Path string `mapstructure:"path"`
}

// ReportConfig controls how results are written
type ReportConfig struct {
	ShowUnfinished bool   `mapstructure:"show_unfinished"`
	XLSXPath       string `mapstructure:"xlsx_path"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables.
// An empty configPath uses defaults and environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POSTREVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if ext := strings.TrimPrefix(filepath.Ext(configPath), "."); ext == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("scenario.path", "")

	v.SetDefault("report.show_unfinished", true)
	v.SetDefault("report.xlsx_path", "")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

// bindEnvVars binds the short environment names used by the CLI.
// POSTREVIEW_SCENARIO would match the "scenario" section under AutomaticEnv
// and shadow every scenario.* key, so the scenario alias carries a suffix.
func bindEnvVars(v *viper.Viper) error {
	if err := v.BindEnv("scenario.path", "POSTREVIEW_SCENARIO_FILE", "POSTREVIEW_SCENARIO_PATH"); err != nil {
		return err
	}
	return v.BindEnv("report.xlsx_path", "POSTREVIEW_XLSX")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}

	if c.Report.XLSXPath != "" && !strings.EqualFold(filepath.Ext(c.Report.XLSXPath), ".xlsx") {
		return fmt.Errorf("report.xlsx_path must end in .xlsx: %s", c.Report.XLSXPath)
	}

	return nil
}
