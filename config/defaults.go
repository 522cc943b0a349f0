package config

import (
	"github.com/spf13/viper"

	"github.com/alchip/ptsum/rpt"
	"github.com/alchip/ptsum/tclcfg"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Scanner pin classification defaults (typical stdcell libraries)
	v.SetDefault("patterns.output_pins", rpt.DefaultOutputPins)
	v.SetDefault("patterns.data_pins", rpt.DefaultDataPins)
	v.SetDefault("patterns.stage_marker", rpt.DefaultStageMarker)
	v.SetDefault("patterns.clock_pin", rpt.DefaultClockPin)

	// Block-map defaults: no rules, the resolver falls back to the
	// first hierarchy segment
	v.SetDefault("blockmap.rules", []string{})
	v.SetDefault("blockmap.files", []string{})

	// tcl2cfg header defaults
	v.SetDefault("tclcfg.author", tclcfg.DefaultAuthor)
	v.SetDefault("tclcfg.section", tclcfg.DefaultSection)
}
