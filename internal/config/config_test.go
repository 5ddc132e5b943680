package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Reaction != "exothermic" {
		t.Errorf("expected reaction exothermic, got %s", cfg.Reaction)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Chamber != kinematics.DefaultChamber() {
		t.Errorf("unexpected chamber %+v", cfg.Chamber)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestParse_DefaultSplit(t *testing.T) {
	cfg, err := Parse([]byte("reaction: dissolution\ncontrols:\n  temperature: 60\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Controls.ReactantConc != 70 || cfg.Controls.ProductConc != 30 {
		t.Errorf("expected 70/30 split, got %.0f/%.0f", cfg.Controls.ReactantConc, cfg.Controls.ProductConc)
	}
	if cfg.Controls.Temperature != 60 || cfg.Controls.Pressure != 1 {
		t.Errorf("unexpected controls %+v", cfg.Controls)
	}
}

func TestParse_ExplicitConcentrations(t *testing.T) {
	cfg, err := Parse([]byte("reaction: dissolution\ncontrols:\n  reactant: 40\n  product: 60\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Controls.ReactantConc != 40 || cfg.Controls.ProductConc != 60 {
		t.Errorf("expected 40/60, got %.0f/%.0f", cfg.Controls.ReactantConc, cfg.Controls.ProductConc)
	}
}

func TestParse_UndersizedChamber(t *testing.T) {
	cfg, err := Parse([]byte("chamber:\n  radius: 0.2\n  height: 0.4\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, kinematics.ErrInvalidChamber) {
		t.Errorf("expected ErrInvalidChamber, got %v", err)
	}
	if _, err := cfg.Build(); err == nil {
		t.Error("expected build to reject the chamber")
	}
}

func TestParse_ZeroCoefficients(t *testing.T) {
	data := "controls:\n  temperature: 75\ncoefficients:\n  temperature: 0\n  concentration: 0\n  pressure: 0\n"
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Coefficients != (chem.Coefficients{}) {
		t.Fatalf("expected zero coefficients, got %+v", cfg.Coefficients)
	}

	s, err := cfg.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if st := s.State(); st.Shift != 0 || st.Status != chem.Balanced {
		t.Errorf("expected zero coefficients to hold the system balanced, got %.1f %v", st.Shift, st.Status)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("reaction: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.SetReaction(chem.GasPhase)
	cfg.Controls.Pressure = 3
	cfg.Seed = 9

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown reaction", func(c *Config) { c.Reaction = "fusion" }},
		{"negative ticks", func(c *Config) { c.Ticks = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"too many particles", func(c *Config) { c.Particles = MaxParticles + 1 }},
		{"pressure out of range", func(c *Config) { c.Controls.Pressure = 12 }},
		{"concentrations over 100", func(c *Config) { c.Controls.ReactantConc = 80; c.Controls.ProductConc = 40 }},
		{"flat chamber", func(c *Config) { c.Chamber.Height = 0 }},
		{"chamber smaller than particles", func(c *Config) { c.Chamber = kinematics.Chamber{Radius: 0.2, Height: 0.4} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestBuild_AppliesControls(t *testing.T) {
	tests := []struct {
		reaction string
		controls chem.Input
		shift    float64
	}{
		{"exothermic", chem.Input{Temperature: 75, Pressure: 1, ReactantConc: 50, ProductConc: 50}, -25},
		{"gas", chem.Input{Temperature: 25, Pressure: 3, ReactantConc: 50, ProductConc: 50}, 20},
		{"exothermic", chem.Input{Temperature: 25, Pressure: 1, ReactantConc: 80, ProductConc: 20}, 15},
		{"dissolution", chem.Input{Temperature: 25, Pressure: 1, ReactantConc: 40, ProductConc: 60}, -15},
	}

	for _, tt := range tests {
		t.Run(tt.reaction, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Reaction = tt.reaction
			cfg.Controls = tt.controls

			s, err := cfg.Build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			st := s.State()
			if st.Input() != tt.controls {
				t.Errorf("expected controls %+v, got %+v", tt.controls, st.Input())
			}
			if st.Shift != tt.shift {
				t.Errorf("expected shift %.1f, got %.1f", tt.shift, st.Shift)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("gas", "compressed")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Controls.Pressure != 3 {
		t.Errorf("expected pressure 3, got %f", cfg.Controls.Pressure)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}

	cfg.Controls.Pressure = 4
	if GetPreset("gas", "compressed").Controls.Pressure != 3 {
		t.Error("GetPreset returned shared state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("gas", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("plasma", "baseline") != nil {
		t.Error("expected nil for nonexistent reaction")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("exo")
	if len(presets) == 0 {
		t.Error("expected presets for exothermic")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}

	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent reaction")
	}
}

func TestAllPresetsValid(t *testing.T) {
	for reaction, ps := range Presets {
		for name := range ps {
			cfg := GetPreset(reaction, name)
			if cfg == nil {
				t.Errorf("%s/%s: not found", reaction, name)
				continue
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", reaction, name, err)
			}
		}
	}
}
