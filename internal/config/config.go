package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Supratim-02/hospitalstats/internal/report"
)

// Config holds all runtime configuration for a hospstats run.
type Config struct {
	DSN         string
	FilePath    string
	LogFormat   string // "text" or "json"
	Force       bool
	KeepStaging bool
	Reports     []string `yaml:"reports"` // subset of report names to run
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Reports []string `yaml:"reports"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.Reports = yc.Reports
	return c.validateReports()
}

// validateReports checks that every entry in Reports is a known report name.
// If Reports is empty, it defaults to all reports in canonical order.
func (c *Config) validateReports() error {
	if len(c.Reports) == 0 {
		c.Reports = report.Names()
		return nil
	}
	for _, name := range c.Reports {
		if _, ok := report.ByName(name); !ok {
			return fmt.Errorf("unknown report %q in config", name)
		}
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or HOSPITALSTATS_DB_URL is required")
	}
	return nil
}
