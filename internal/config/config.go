package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the config file looked up when no path is given
const ConfigFileName = "rota_config.yaml"

// DefaultOutput is the output filename used when neither config nor flags set one
const DefaultOutput = "schedule.xlsx"

// DefaultBlackoutDays is the window length of a blackout rule that does not set days
const DefaultBlackoutDays = 7

// errConfigNotFound is returned by findConfigFile when no config file exists
var errConfigNotFound = errors.New("config file not found in current directory or home directory")

// BlackoutRule excludes Days days starting on every occurrence of RRule.
// A rule may carry its own DTSTART (e.g. "DTSTART=20250804T000000Z;FREQ=WEEKLY;INTERVAL=2");
// without one it starts on Monday 3 January 2000, which fixes the phase of INTERVAL and the
// weekday of a weekly rule without BYDAY.
type BlackoutRule struct {
	RRule string `yaml:"rrule" validate:"required"`
	Days  int    `yaml:"days,omitempty" validate:"omitempty,min=1,max=366"`
	Label string `yaml:"label,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Output    string         `yaml:"output,omitempty"`
	SheetName string         `yaml:"sheetName,omitempty" validate:"omitempty,max=31"`
	Fallback  string         `yaml:"fallback,omitempty" validate:"omitempty,oneof=resample-assigned repeat-previous top-up"`
	Blackouts []BlackoutRule `yaml:"blackouts,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads the configuration from path when given. Otherwise it looks for rota_config.yaml
// in the current directory, then in the user's home directory, and falls back to defaults
// when neither exists.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromPath(path)
	}

	configPath, err := findConfigFile()
	if errors.Is(err, errConfigNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.Blackouts {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in blackouts[%d]: %w", i, err)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	for i := range c.Blackouts {
		if c.Blackouts[i].Days == 0 {
			c.Blackouts[i].Days = DefaultBlackoutDays
		}
	}
}

// findConfigFile searches for rota_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, ConfigFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", errConfigNotFound
}
