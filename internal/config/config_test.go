package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mcpi/sparkos/montecarlo"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Run.Count != montecarlo.DefaultCount {
		t.Fatalf("Run.Count = %d, want %d", cfg.Run.Count, montecarlo.DefaultCount)
	}
	if cfg.Mode() != montecarlo.ModeAutomatic {
		t.Fatalf("Mode() = %s, want Automatic", cfg.Mode())
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	src := `
display:
  width: 640
run:
  count: 250
  mode: simulate
  seed: 99
  autostart: true
headless:
  exit_when_idle: true
export:
  chart: chart.png
`
	cfg, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Display.Width != 640 || cfg.Display.Height != 320 {
		t.Fatalf("Display = %+v, want 640x320", cfg.Display)
	}
	if cfg.Run.Count != 250 || cfg.Run.Seed != 99 || !cfg.Run.AutoStart {
		t.Fatalf("Run = %+v", cfg.Run)
	}
	if cfg.Mode() != montecarlo.ModeSimulate {
		t.Fatalf("Mode() = %s, want Simulate", cfg.Mode())
	}
	if cfg.Run.RadiusK != 4000 {
		t.Fatalf("RadiusK = %v, want default 4000", cfg.Run.RadiusK)
	}
	if !cfg.Headless.ExitWhenIdle || cfg.Headless.Hz != 60 {
		t.Fatalf("Headless = %+v", cfg.Headless)
	}
	if cfg.Export.Chart != "chart.png" || cfg.Export.Scatter != "" {
		t.Fatalf("Export = %+v", cfg.Export)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "run:\n  colour: red\n"},
		{"bad mode", "run:\n  mode: turbo\n"},
		{"zero width", "display:\n  width: 0\n"},
		{"huge count", "run:\n  count: 4294967296\n"},
		{"negative radius", "run:\n  radius_k: -1\n"},
		{"zero hz", "headless:\n  hz: 0\n"},
		{"not yaml", "run: [\n"},
	}
	for _, tt := range tests {
		if _, err := Parse(strings.NewReader(tt.src)); err == nil {
			t.Fatalf("%s: Parse() error = nil", tt.name)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse(empty) error = %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Parse(empty) = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml"), false); err == nil {
		t.Fatal("Load(missing, required) error = nil")
	}
	cfg, err := Load(filepath.Join(dir, "missing.yaml"), true)
	if err != nil {
		t.Fatalf("Load(missing, optional) error = %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load(missing) = %+v, want defaults", cfg)
	}

	want := Default()
	want.Run.Count = 5000
	want.Run.Mode = "Instant"
	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	path := filepath.Join(dir, "mcpi.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}
