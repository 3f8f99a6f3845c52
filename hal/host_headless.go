package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	// Log receives logger output; nil means stdout.
	Log io.Writer
}

// RunHeadless drives newApp's step function from a ticker without opening a
// window. It returns nil when the step returns ErrStop or after cfg.Ticks
// steps, and ctx.Err() when ctx is cancelled.
func RunHeadless(ctx context.Context, cfg Config, hcfg HeadlessConfig, newApp func(HAL) func() error) error {
	if hcfg.Hz <= 0 {
		hcfg.Hz = 60
	}

	var h *hostHAL
	if hcfg.Log != nil {
		h = newHost(cfg, hcfg.Log)
	} else {
		h = New(cfg).(*hostHAL)
	}
	step := newApp(h)

	d := time.Second / time.Duration(hcfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hcfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrStop) {
						return nil
					}
					return err
				}
			}
			tick++
			if hcfg.Ticks > 0 && tick >= hcfg.Ticks {
				return nil
			}
		}
	}
}

// RunSteps drives step n times back to back, without a ticker. It stops
// early on ErrStop and returns the number of steps taken.
func RunSteps(cfg Config, n int, logOut io.Writer, newApp func(HAL) func() error) (int, error) {
	h := newHost(cfg, logOut)
	step := newApp(h)
	for i := 0; i < n; i++ {
		if step == nil {
			return i, nil
		}
		if err := step(); err != nil {
			if errors.Is(err, ErrStop) {
				return i + 1, nil
			}
			return i + 1, err
		}
	}
	return n, nil
}
