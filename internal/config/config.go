// Package config loads settings for the migration, seed and audit tooling.
//
// Values are layered: defaults, then an optional YAML file, then the
// environment. Loading a .env file into the environment is left to main.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Seed     SeedConfig     `yaml:"seed"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	URL      string `yaml:"url" env:"DATABASE_URL"`
	LogLevel string `yaml:"log_level" env:"DB_LOG_LEVEL"`
	// SlowQueryMillis is the threshold above which gorm logs a query as slow
	SlowQueryMillis int `yaml:"slow_query_ms" env:"DB_SLOW_QUERY_MS"`
}

// SeedConfig contains the demo account settings used by the user seed
type SeedConfig struct {
	AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
	UserEmail     string `yaml:"user_email" env:"SEED_USER_EMAIL"`
	UserPassword  string `yaml:"user_password" env:"SEED_USER_PASSWORD"`
	BcryptCost    int    `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
}

// DefaultConfig returns default configuration. The seed passwords are
// development conveniences and must be overridden anywhere else.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL:             "sqlite://unilets.db",
			LogLevel:        "warn",
			SlowQueryMillis: 200,
		},
		Seed: SeedConfig{
			AdminEmail:    "admin@unilets.local",
			AdminPassword: "admin-dev-password",
			UserEmail:     "student@unilets.local",
			UserPassword:  "student-dev-password",
			BcryptCost:    10,
		},
	}
}

// Load builds the configuration. An empty path or a missing file leaves the
// defaults in place; environment variables always win.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings that have no usable fallback
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL not set in environment, .env or config file")
	}
	if c.Seed.BcryptCost < 4 || c.Seed.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31, got %d", c.Seed.BcryptCost)
	}
	return nil
}
