// Package config handles reshaping job configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/roiseries/features"
	"github.com/sartorproj/roiseries/frame"
	"github.com/sartorproj/roiseries/internal/logging"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config defines a TAF to TRF job.
type Config struct {
	Input      string      `yaml:"input"`
	Output     string      `yaml:"output"` // empty means stdout
	DateFormat string      `yaml:"date_format"`
	LogLevel   string      `yaml:"log_level"` // any level logging.ParseLevel accepts
	Shifts     []ShiftConf `yaml:"shifts"`
	Exclude    []RangeConf `yaml:"exclude"` // one range per column level: ID, feature
}

// ShiftConf is one named record offset.
type ShiftConf struct {
	Label  string `yaml:"label"`
	Offset int    `yaml:"offset"`
}

// RangeConf is an inclusive label range; empty bounds are open.
type RangeConf struct {
	Start string `yaml:"start"`
	Stop  string `yaml:"stop"`
}

// LoadConfig loads configuration from the specified YAML file path
// and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		// Default values
		LogLevel:   "info",
		DateFormat: "2006-01-02",
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}

	// Overrides from environment variables
	if input := os.Getenv("ROISERIES_INPUT"); input != "" {
		cfg.Input = input
	}
	if output := os.Getenv("ROISERIES_OUTPUT"); output != "" {
		cfg.Output = output
	}
	if logLevel := os.Getenv("ROISERIES_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields. Shift label rules are enforced by
// features.NewTAFToTRF.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input is required", ErrInvalid)
	}
	if len(c.Shifts) == 0 {
		return fmt.Errorf("%w: at least one shift is required", ErrInvalid)
	}
	if len(c.Exclude) > 2 {
		return fmt.Errorf("%w: exclude has %d ranges, at most 2 levels (ID, feature)", ErrInvalid, len(c.Exclude))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// TAFShifts converts the configured shifts, keeping their order.
func (c *Config) TAFShifts() []features.Shift {
	out := make([]features.Shift, len(c.Shifts))
	for i, s := range c.Shifts {
		out[i] = features.Shift{Label: s.Label, Offset: s.Offset}
	}
	return out
}

// Selector returns the exclusion selector, or nil when none is configured.
func (c *Config) Selector() frame.Selector {
	if len(c.Exclude) == 0 {
		return nil
	}
	sel := make(frame.Selector, len(c.Exclude))
	for i, r := range c.Exclude {
		sel[i] = frame.Between(r.Start, r.Stop)
	}
	return sel
}

// CSVOptions returns the table CSV options implied by the job.
func (c *Config) CSVOptions() *frame.CSVOptions {
	opts := frame.DefaultCSVOptions()
	opts.DateFormat = c.DateFormat
	return opts
}
