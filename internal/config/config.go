package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"mcpi/sparkos/montecarlo"

	"gopkg.in/yaml.v3"
)

// Display sizes the framebuffer and window.
type Display struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
}

// Run seeds the demo's first run.
type Run struct {
	Count       int     `yaml:"count"`
	Mode        string  `yaml:"mode"`
	Seed        uint64  `yaml:"seed"`
	RadiusK     float64 `yaml:"radius_k"`
	BatchSeries bool    `yaml:"batch_series"`
	AutoStart   bool    `yaml:"autostart"`
}

// Headless controls the no-window runner.
type Headless struct {
	Hz           int    `yaml:"hz"`
	Ticks        uint64 `yaml:"ticks"`
	ExitWhenIdle bool   `yaml:"exit_when_idle"`
}

// Export names PNG files written after a run; empty means skip.
type Export struct {
	Chart   string `yaml:"chart"`
	Scatter string `yaml:"scatter"`
}

type Config struct {
	Display  Display  `yaml:"display"`
	Run      Run      `yaml:"run"`
	Headless Headless `yaml:"headless"`
	Export   Export   `yaml:"export"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: Display{Width: 480, Height: 320, Scale: 2},
		Run: Run{
			Count:   montecarlo.DefaultCount,
			Mode:    montecarlo.ModeAutomatic.String(),
			RadiusK: 4000,
		},
		Headless: Headless{Hz: 60},
	}
}

// Load reads path over Default. A missing path is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := decode(bytes.NewReader(b), &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over Default.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decode(r, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.Validate()
}

// Mode returns the parsed run mode.
func (c Config) Mode() montecarlo.Mode {
	m, _ := montecarlo.ParseMode(c.Run.Mode)
	return m
}

// Validate rejects values the host cannot honour. Non-positive counts pass:
// the engine replaces them with its default.
func (c Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display: invalid size %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("display: invalid scale %d", c.Display.Scale)
	}
	if _, ok := montecarlo.ParseMode(c.Run.Mode); !ok {
		return fmt.Errorf("run: unknown mode %q", c.Run.Mode)
	}
	if c.Run.Count > montecarlo.MaxCount {
		return fmt.Errorf("run: count %d exceeds %d", c.Run.Count, montecarlo.MaxCount)
	}
	if c.Run.RadiusK < 0 {
		return fmt.Errorf("run: negative radius_k %v", c.Run.RadiusK)
	}
	if c.Headless.Hz <= 0 {
		return fmt.Errorf("headless: invalid hz %d", c.Headless.Hz)
	}
	return nil
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return enc.Close()
}
