package config

import (
	"github.com/alchip/ptsum/blockmap"
	"github.com/alchip/ptsum/errors"
	"github.com/alchip/ptsum/rpt"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Pin lists and marker come through SetDefaults, so an empty value
	// means the user explicitly configured one
	if len(c.Patterns.OutputPins) == 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "patterns.output_pins cannot be empty")
	}
	if len(c.Patterns.DataPins) == 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "patterns.data_pins cannot be empty")
	}
	if c.Patterns.StageMarker == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "patterns.stage_marker cannot be empty")
	}
	if c.Patterns.ClockPin == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "patterns.clock_pin cannot be empty")
	}

	// Pin fragments are user-supplied regexps; compiling them is the
	// real check
	if _, err := rpt.NewPatterns(c.PatternSpec()); err != nil {
		return err
	}

	for _, rule := range c.BlockMap.Rules {
		if _, err := blockmap.ParseEntry(rule); err != nil {
			return err
		}
	}

	return nil
}
