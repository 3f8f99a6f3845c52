package montecarlo

import (
	"strconv"
	"strings"
)

// DefaultCount replaces a non-positive or unparseable sample count.
const DefaultCount = 1000

// MaxCount bounds a run's sample count; larger requests are clamped.
// A run keeps every sample, so this caps its memory at about 120 MB.
const MaxCount = 5_000_000

// AutomaticThreshold is the largest count Automatic mode animates.
const AutomaticThreshold = 1000

// SeriesPoints is the number of convergence entries a run aims to record.
const SeriesPoints = 50

// Mode is the user-facing execution selector.
type Mode uint8

const (
	ModeSimulate Mode = iota
	ModeInstant
	ModeAutomatic

	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeSimulate:
		return "Simulate"
	case ModeInstant:
		return "Instant"
	case ModeAutomatic:
		return "Automatic"
	default:
		return "unknown"
	}
}

// Next cycles Simulate -> Instant -> Automatic -> Simulate.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// ParseMode accepts a mode label, case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simulate":
		return ModeSimulate, true
	case "instant":
		return ModeInstant, true
	case "automatic", "auto":
		return ModeAutomatic, true
	default:
		return ModeAutomatic, false
	}
}

// Strategy is the concrete way a run is executed.
type Strategy uint8

const (
	StrategyBatch Strategy = iota
	StrategyIncremental
)

func (s Strategy) String() string {
	if s == StrategyIncremental {
		return "incremental"
	}
	return "batch"
}

// SelectStrategy resolves a mode for a run of n samples.
func SelectStrategy(mode Mode, n int) Strategy {
	switch mode {
	case ModeSimulate:
		return StrategyIncremental
	case ModeInstant:
		return StrategyBatch
	default:
		if n <= AutomaticThreshold {
			return StrategyIncremental
		}
		return StrategyBatch
	}
}

// NormalizeCount substitutes DefaultCount for non-positive counts and clamps
// to MaxCount.
func NormalizeCount(n int) int {
	if n <= 0 {
		return DefaultCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// ParseCount parses a decimal count, falling back to DefaultCount.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultCount
	}
	return NormalizeCount(n)
}

// SeriesInterval is the sample cadence of convergence entries, ⌊n/50⌋,
// never less than 1.
func SeriesInterval(n int) int {
	step := n / SeriesPoints
	if step < 1 {
		return 1
	}
	return step
}

// PointRadius is the canvas radius of one sample for a run of n samples:
// max(1, min(5, k/n)).
func PointRadius(k float64, n int) float64 {
	if n <= 0 {
		return 5
	}
	r := k / float64(n)
	if r > 5 {
		r = 5
	}
	if r < 1 {
		r = 1
	}
	return r
}
