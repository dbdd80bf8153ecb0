package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/harukisb/raidloot/pkg/core/model"
)

// DefaultResetRule is the weekly loot reset recurrence (Tuesday).
const DefaultResetRule = "FREQ=WEEKLY;BYDAY=TU"

// Config represents the application configuration
type Config struct {
	RaidTierID  string `yaml:"raidTierID" validate:"required"`
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// TierStart is the tier release date (YYYY-MM-DD); week numbers are
	// counted from it.
	TierStart string `yaml:"tierStart" validate:"required,datetime=2006-01-02"`

	// ResetRule is an RRULE string for the weekly loot reset.
	ResetRule string `yaml:"resetRule,omitempty"`

	// PositionOrder overrides the base priority ranking of positions,
	// highest first. Must list all 8 positions when set.
	PositionOrder []string `yaml:"positionOrder,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from raidloot_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
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

	return &cfg, nil
}

// Validate validates the configuration struct, the reset rule syntax and the
// position order.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := rrule.StrToRRule(cfg.ResetRuleOrDefault()); err != nil {
		return fmt.Errorf("invalid resetRule: %w", err)
	}

	if _, err := cfg.PriorityTable(); err != nil {
		return fmt.Errorf("invalid positionOrder: %w", err)
	}

	return nil
}

// ResetRuleOrDefault returns the configured reset rule, falling back to the
// default weekly reset.
func (c *Config) ResetRuleOrDefault() string {
	if c.ResetRule != "" {
		return c.ResetRule
	}
	return DefaultResetRule
}

// PriorityTable builds the position base priority table from the configured
// order, falling back to the default order.
func (c *Config) PriorityTable() (model.PriorityTable, error) {
	if len(c.PositionOrder) == 0 {
		return model.NewPriorityTable(model.DefaultPriorityOrder())
	}

	order := make([]model.Position, len(c.PositionOrder))
	for i, raw := range c.PositionOrder {
		order[i] = model.Position(raw)
	}
	return model.NewPriorityTable(order)
}

// findConfigFile searches for raidloot_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "raidloot_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
