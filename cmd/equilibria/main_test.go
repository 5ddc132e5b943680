package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestParseGrid(t *testing.T) {
	g, err := parseGrid([]string{"temperature=0:100:5", "pressure=2:2:1"})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 25, 50, 75, 100}
	for i, v := range want {
		if g["temperature"][i] != v {
			t.Errorf("temperature[%d] = %v, want %v", i, g["temperature"][i], v)
		}
	}
	if len(g["pressure"]) != 1 || g["pressure"][0] != 2 {
		t.Errorf("pressure = %v", g["pressure"])
	}

	for _, bad := range []string{"temperature", "temperature=1:2", "temperature=a:2:3", "pressure=1:2:0"} {
		if _, err := parseGrid([]string{bad}); err == nil {
			t.Errorf("parseGrid(%q) should fail", bad)
		}
	}
}

func TestResolveConfigFlagsOverride(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	simFlags(cmd)
	if err := cmd.ParseFlags([]string{"--reaction", "gas", "--pressure", "3"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reaction != "gas" || cfg.Controls.Pressure != 3 || cfg.Controls.Temperature != 25 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestResolveConfigPreset(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	simFlags(cmd)
	if err := cmd.ParseFlags([]string{"--reaction", "dissolution", "--preset", "warm", "--temperature", "80"}); err != nil {
		t.Fatal(err)
	}
	defer func() { preset = "" }()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Controls.ReactantConc != 70 || cfg.Controls.Temperature != 80 {
		t.Errorf("controls = %+v", cfg.Controls)
	}

	if err := cmd.ParseFlags([]string{"--preset", "nope"}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestBuildLogger(t *testing.T) {
	l, err := buildLogger(true, "")
	if err != nil {
		t.Fatal(err)
	}
	if !l.Core().Enabled(-1) {
		t.Error("verbose logger should enable debug")
	}
}
