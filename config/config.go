// Package config loads the ptsum configuration from TOML files and the
// environment. Precedence, lowest to highest: built-in defaults, the
// user file ~/.ptsum/ptsum.toml, the project ptsum.toml found by upward
// directory search.
package config

import (
	"fmt"

	"github.com/alchip/ptsum/rpt"
)

// Config represents the ptsum configuration
type Config struct {
	Patterns PatternsConfig `mapstructure:"patterns"`
	BlockMap BlockMapConfig `mapstructure:"blockmap"`
	TclCfg   TclCfgConfig   `mapstructure:"tclcfg"`
}

// PatternsConfig configures pin classification for the report scanner.
// Pin entries are regexp fragments matched against the last hierarchy
// component of a point-table pin.
type PatternsConfig struct {
	OutputPins  []string `mapstructure:"output_pins"`  // cell output leaves counted as stages
	DataPins    []string `mapstructure:"data_pins"`    // flop data inputs taken as endpoint pins
	StageMarker string   `mapstructure:"stage_marker"` // annotation marking sensitized point rows
	ClockPin    string   `mapstructure:"clock_pin"`    // launch flop clock pin name
}

// BlockMapConfig configures hierarchy-prefix to block-name mapping.
// Rules use the "prefix=name" literal form; files hold "prefix -> name"
// or whitespace-pair lines. CLI-supplied rules are applied after these.
type BlockMapConfig struct {
	Rules []string `mapstructure:"rules"`
	Files []string `mapstructure:"files"`
}

// TclCfgConfig configures the tcl2cfg output header
type TclCfgConfig struct {
	Author  string `mapstructure:"author"`
	Section string `mapstructure:"section"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// PatternSpec converts the pattern section into the scanner's spec
func (c *Config) PatternSpec() rpt.PatternSpec {
	return rpt.PatternSpec{
		OutputPins:  c.Patterns.OutputPins,
		DataPins:    c.Patterns.DataPins,
		StageMarker: c.Patterns.StageMarker,
		ClockPin:    c.Patterns.ClockPin,
	}
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Patterns: {StageMarker: %q, ClockPin: %q}, BlockMap: {Rules: %d, Files: %d}}",
		c.Patterns.StageMarker, c.Patterns.ClockPin, len(c.BlockMap.Rules), len(c.BlockMap.Files))
}
