package config

// Decode-option loading and validation for udstrace.

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/optidiag/udstrace/internal/errors"
)

// DecodeConfig tunes one trace decoding pass.
type DecodeConfig struct {
	// SampleCap bounds the rolling sample values retained per data
	// identifier. Defaults to 5.
	SampleCap int `yaml:"sample_cap,omitempty"`
	// LocalTag is the direction tag the capture tool uses for
	// tester-originated lines. Defaults to "Local".
	LocalTag string `yaml:"local_tag,omitempty"`
	// ECUNames overrides display names by ECU address (hex, with or
	// without 0x prefix).
	ECUNames map[string]string `yaml:"ecu_names,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() DecodeConfig {
	return DecodeConfig{
		SampleCap: 5,
		LocalTag:  "Local",
	}
}

// LoadConfig reads and validates a YAML decode configuration, applying
// defaults for omitted fields.
func LoadConfig(path string) (DecodeConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WrapConfigError(err, path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.WrapConfigError(fmt.Errorf("parse yaml: %w", err), path)
	}
	if cfg.SampleCap == 0 {
		cfg.SampleCap = 5
	}
	if cfg.LocalTag == "" {
		cfg.LocalTag = "Local"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.WrapConfigError(err, path)
	}
	return cfg, nil
}

// Validate checks field ranges and address shapes.
func (c DecodeConfig) Validate() error {
	if c.SampleCap < 1 || c.SampleCap > 256 {
		return fmt.Errorf("sample_cap must be between 1 and 256, got %d", c.SampleCap)
	}
	for addr := range c.ECUNames {
		if !validHexAddress(addr) {
			return fmt.Errorf("ecu_names key %q is not a hex address", addr)
		}
	}
	return nil
}

func validHexAddress(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
