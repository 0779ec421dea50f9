package config

import (
	"errors"
	"fmt"
	"strings"

	"vencode/internal/settings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if err := c.DefaultParameters().Validate(settings.DefaultOptions()); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if strings.ContainsAny(c.Defaults.OutputSuffix, `/\`) {
		return errors.New("defaults.output_suffix must not contain path separators")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
