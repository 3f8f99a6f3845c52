package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"mcpi/app"
	"mcpi/hal"
	"mcpi/internal/buildinfo"
	"mcpi/internal/config"
	"mcpi/internal/export"
	"mcpi/sparkos/montecarlo"
	"mcpi/sparkos/tasks/mcpi"
)

func main() {
	var (
		cfgPath  = flag.String("config", "mcpi.yaml", "YAML config file (optional).")
		headless = flag.Bool("headless", false, "Run without a window.")
		hz       = flag.Int("hz", 0, "Tick rate in headless mode (0 = config).")
		ticks    = flag.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = config).")
		count    = flag.Int("n", 0, "Sample count for autostart (0 = config).")
		mode     = flag.String("mode", "", "Simulate|Instant|Automatic (empty = config).")
		seed     = flag.Uint64("seed", 0, "PRNG seed (0 = config, then random).")
		auto     = flag.Bool("autostart", false, "Start a run on boot.")
		idleExit = flag.Bool("exit-when-idle", false, "Stop once the first run finishes.")
		chart    = flag.String("chart", "", "Write the convergence chart PNG here on exit.")
		scatter  = flag.String("scatter", "", "Write the sample scatter PNG here on exit.")
		version  = flag.Bool("version", false, "Print build info and exit.")
	)
	flag.Parse()

	if *version {
		fmt.Println("mcpi", buildinfo.Long())
		return
	}

	// An explicit -config must exist; the default name is optional.
	cfg, err := config.Load(*cfgPath, !flagSet("config"))
	if err != nil {
		fatal(err)
	}
	if *hz > 0 {
		cfg.Headless.Hz = *hz
	}
	if *ticks > 0 {
		cfg.Headless.Ticks = *ticks
	}
	if *count > 0 {
		cfg.Run.Count = *count
	}
	if *mode != "" {
		cfg.Run.Mode = *mode
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}
	if *auto {
		cfg.Run.AutoStart = true
	}
	if *idleExit {
		cfg.Headless.ExitWhenIdle = true
	}
	if *chart != "" {
		cfg.Export.Chart = *chart
	}
	if *scatter != "" {
		cfg.Export.Scatter = *scatter
	}
	if err := cfg.Validate(); err != nil {
		fatal(fmt.Errorf("config: %w", err))
	}

	hcfg := hal.Config{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Scale:  cfg.Display.Scale,
		Title:  buildinfo.Title("Monte Carlo Pi"),
	}
	acfg := app.Config{
		Task: mcpi.Config{
			Mode:        cfg.Mode(),
			Seed:        cfg.Run.Seed,
			RadiusK:     cfg.Run.RadiusK,
			BatchSeries: cfg.Run.BatchSeries,
		},
		Count:        cfg.Run.Count,
		AutoStart:    cfg.Run.AutoStart,
		ExitWhenIdle: cfg.Headless.ExitWhenIdle,
	}

	var sys *app.System
	newApp := func(h hal.HAL) func() error {
		sys = app.New(h, acfg)
		return sys.Step
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, hcfg, hal.HeadlessConfig{Hz: cfg.Headless.Hz, Ticks: cfg.Headless.Ticks}, newApp)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(hcfg, newApp)
	}
	if err != nil {
		fatal(err)
	}

	if sys != nil {
		if err := writeExports(cfg.Export, sys.View()); err != nil {
			fatal(err)
		}
	}
}

func writeExports(cfg config.Export, v montecarlo.View) error {
	if cfg.Chart != "" {
		if err := export.SaveConvergence(cfg.Chart, v); err != nil {
			return err
		}
	}
	if cfg.Scatter != "" {
		if err := export.SaveScatter(cfg.Scatter, v); err != nil {
			return err
		}
	}
	return nil
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
