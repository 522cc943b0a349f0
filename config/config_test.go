package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"

	"github.com/alchip/ptsum/errors"
	"github.com/alchip/ptsum/rpt"
	"github.com/alchip/ptsum/tclcfg"
)

// defaultConfig builds a Config from an isolated viper instance without
// touching user or project files.
func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := defaultConfig(t)

	if !reflect.DeepEqual(cfg.Patterns.OutputPins, rpt.DefaultOutputPins) {
		t.Errorf("expected default output pins %v, got %v", rpt.DefaultOutputPins, cfg.Patterns.OutputPins)
	}
	if !reflect.DeepEqual(cfg.Patterns.DataPins, rpt.DefaultDataPins) {
		t.Errorf("expected default data pins %v, got %v", rpt.DefaultDataPins, cfg.Patterns.DataPins)
	}
	if cfg.Patterns.StageMarker != rpt.DefaultStageMarker {
		t.Errorf("expected default stage marker %q, got %q", rpt.DefaultStageMarker, cfg.Patterns.StageMarker)
	}
	if cfg.Patterns.ClockPin != rpt.DefaultClockPin {
		t.Errorf("expected default clock pin %q, got %q", rpt.DefaultClockPin, cfg.Patterns.ClockPin)
	}
	if cfg.TclCfg.Author != tclcfg.DefaultAuthor {
		t.Errorf("expected default author %q, got %q", tclcfg.DefaultAuthor, cfg.TclCfg.Author)
	}
	if cfg.TclCfg.Section != tclcfg.DefaultSection {
		t.Errorf("expected default section %q, got %q", tclcfg.DefaultSection, cfg.TclCfg.Section)
	}
	if len(cfg.BlockMap.Rules) != 0 || len(cfg.BlockMap.Files) != 0 {
		t.Errorf("expected empty block map config, got %+v", cfg.BlockMap)
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"patterns.stage_marker", "&"},
		{"patterns.clock_pin", "CP"},
		{"tclcfg.author", "sunnyy@alchip.com"},
		{"tclcfg.section", "liblist"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := v.Get(tt.key)
			if got != tt.expected {
				t.Errorf("default %s = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		wantErr  bool
		sentinel error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:     "empty output pins is invalid",
			mutate:   func(cfg *Config) { cfg.Patterns.OutputPins = nil },
			wantErr:  true,
			sentinel: errors.ErrInvalidConfig,
		},
		{
			name:     "empty data pins is invalid",
			mutate:   func(cfg *Config) { cfg.Patterns.DataPins = []string{} },
			wantErr:  true,
			sentinel: errors.ErrInvalidConfig,
		},
		{
			name:     "empty stage marker is invalid",
			mutate:   func(cfg *Config) { cfg.Patterns.StageMarker = "" },
			wantErr:  true,
			sentinel: errors.ErrInvalidConfig,
		},
		{
			name:     "empty clock pin is invalid",
			mutate:   func(cfg *Config) { cfg.Patterns.ClockPin = "" },
			wantErr:  true,
			sentinel: errors.ErrInvalidConfig,
		},
		{
			name:     "uncompilable pin fragment is invalid",
			mutate:   func(cfg *Config) { cfg.Patterns.OutputPins = []string{"Z", "["} },
			wantErr:  true,
			sentinel: errors.ErrInvalidConfig,
		},
		{
			name:     "malformed block map rule is invalid",
			mutate:   func(cfg *Config) { cfg.BlockMap.Rules = []string{"no_equals_sign"} },
			wantErr:  true,
			sentinel: errors.ErrMalformedRule,
		},
		{
			name:    "well formed block map rule is valid",
			mutate:  func(cfg *Config) { cfg.BlockMap.Rules = []string{"cpu0/lsu=lsu"} },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("Validate() error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestPatternSpec(t *testing.T) {
	cfg := &Config{
		Patterns: PatternsConfig{
			OutputPins:  []string{"OUT"},
			DataPins:    []string{"IN"},
			StageMarker: "*",
			ClockPin:    "CK",
		},
	}
	spec := cfg.PatternSpec()
	if !reflect.DeepEqual(spec.OutputPins, []string{"OUT"}) || !reflect.DeepEqual(spec.DataPins, []string{"IN"}) {
		t.Errorf("unexpected pin lists in spec: %+v", spec)
	}
	if spec.StageMarker != "*" || spec.ClockPin != "CK" {
		t.Errorf("unexpected marker/clock in spec: %+v", spec)
	}
}

func TestFindProjectConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("found in ancestor", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "test1", "subdir")
		os.MkdirAll(subDir, DefaultDirPermissions)
		os.WriteFile(filepath.Join(tmpDir, "test1", "ptsum.toml"), []byte(""), DefaultFilePermissions)

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		os.Chdir(subDir)

		result := findProjectConfig()
		if result == "" {
			t.Fatal("expected to find config file")
		}
		if filepath.Base(result) != "ptsum.toml" {
			t.Errorf("expected ptsum.toml, got %s", filepath.Base(result))
		}
	})

	t.Run("no config found", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "test2", "subdir")
		os.MkdirAll(subDir, DefaultDirPermissions)

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		os.Chdir(subDir)

		result := findProjectConfig()
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ptsum.toml")
	content := `[patterns]
stage_marker = "*"
clock_pin = "CK"

[blockmap]
rules = ["cpu0/lsu=lsu"]

[tclcfg]
author = "pd-team@alchip.com"
`
	if err := os.WriteFile(configPath, []byte(content), DefaultFilePermissions); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.Patterns.StageMarker != "*" {
		t.Errorf("expected stage marker %q, got %q", "*", cfg.Patterns.StageMarker)
	}
	if cfg.Patterns.ClockPin != "CK" {
		t.Errorf("expected clock pin %q, got %q", "CK", cfg.Patterns.ClockPin)
	}
	// Unset keys keep their defaults
	if !reflect.DeepEqual(cfg.Patterns.OutputPins, rpt.DefaultOutputPins) {
		t.Errorf("expected default output pins, got %v", cfg.Patterns.OutputPins)
	}
	if cfg.TclCfg.Author != "pd-team@alchip.com" {
		t.Errorf("expected configured author, got %q", cfg.TclCfg.Author)
	}
	if cfg.TclCfg.Section != tclcfg.DefaultSection {
		t.Errorf("expected default section, got %q", cfg.TclCfg.Section)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_Caching(t *testing.T) {
	Reset()
	defer Reset()

	c1, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	c2, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if c1 != c2 {
		t.Error("expected cached config instance")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	Reset()
	defer Reset()
	t.Setenv("PTSUM_PATTERNS_CLOCK_PIN", "CK")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Patterns.ClockPin != "CK" {
		t.Errorf("expected env override CK, got %q", cfg.Patterns.ClockPin)
	}
}
