// Package config reads the YAML description of a simulation
// campaign.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one campaign run by the lc3ep tool.
type Config struct {
	SlotBytes    int     `yaml:"slot_bytes"`
	Mode         int     `yaml:"mode"`
	EPMR         int     `yaml:"epmr"`
	Frames       int     `yaml:"frames"`
	ErrorModel   string  `yaml:"error_model"`
	BitErrorRate float64 `yaml:"bit_error_rate"`
	BurstLen     int     `yaml:"burst_len"`
	Seed         int64   `yaml:"seed"`
	Database     string  `yaml:"database"` // empty disables persistence
	Campaign     string  `yaml:"campaign"` // label for stored results
}

// Default returns a runnable baseline configuration.
func Default() *Config {
	return &Config{
		SlotBytes:    80,
		Mode:         4,
		EPMR:         0,
		Frames:       1000,
		ErrorModel:   "ber",
		BitErrorRate: 0.001,
		BurstLen:     8,
		Seed:         1,
		Campaign:     "default",
	}
}

// Load reads and validates a campaign file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects configurations the codec cannot run.
func (c *Config) Validate() error {
	if c.SlotBytes < 40 || c.SlotBytes > 300 {
		return fmt.Errorf("slot_bytes %d outside 40..300", c.SlotBytes)
	}
	if c.Mode < 0 || c.Mode > 4 {
		return fmt.Errorf("mode %d outside 0..4", c.Mode)
	}
	if c.EPMR < 0 || c.EPMR > 3 {
		return fmt.Errorf("epmr %d outside 0..3", c.EPMR)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	switch c.ErrorModel {
	case "clean", "ber", "burst":
	default:
		return fmt.Errorf("unknown error_model %q", c.ErrorModel)
	}
	if c.BitErrorRate < 0 || c.BitErrorRate > 1 {
		return fmt.Errorf("bit_error_rate %g outside 0..1", c.BitErrorRate)
	}
	if c.BurstLen < 0 {
		return fmt.Errorf("burst_len must not be negative, got %d", c.BurstLen)
	}
	return nil
}
