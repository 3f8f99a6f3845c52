package hal

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestRGB565RoundTrip(t *testing.T) {
	cases := [][3]uint8{{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	for _, c := range cases {
		r, g, b := rgb888From565(rgb565(c[0], c[1], c[2]))
		if r != c[0] || g != c[1] || b != c[2] {
			t.Fatalf("round trip %v = %d,%d,%d", c, r, g, b)
		}
	}
}

func TestPutPixelBounds(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	PutPixel(fb, 1, 2, 0xBEEF)
	if got := PixelAt(fb, 1, 2); got != 0xBEEF {
		t.Fatalf("PixelAt(1, 2) = %#x, want 0xbeef", got)
	}
	PutPixel(fb, -1, 0, 0xFFFF)
	PutPixel(fb, 4, 0, 0xFFFF)
	PutPixel(fb, 0, 3, 0xFFFF)
	for _, b := range fb.buf {
		if b == 0xFF {
			t.Fatal("out-of-bounds write reached the buffer")
		}
	}
	if got := PixelAt(fb, 9, 9); got != 0 {
		t.Fatalf("PixelAt(out of bounds) = %#x, want 0", got)
	}
}

func TestClearAndSnapshot(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	fb.ClearRGB(255, 0, 0)
	img := Snapshot(fb)
	if c := img.RGBAAt(1, 1); c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Fatalf("Snapshot pixel = %+v, want opaque red", c)
	}
}

func TestHostLogger(t *testing.T) {
	var buf bytes.Buffer
	h := newHost(Config{}, &buf)
	h.Logger().WriteLineString("a")
	h.Logger().WriteLineBytes([]byte("b"))
	if got := buf.String(); got != "a\nb\n" {
		t.Fatalf("log output = %q, want %q", got, "a\nb\n")
	}
	if w := h.Display().Framebuffer().Width(); w != 480 {
		t.Fatalf("default width = %d, want 480", w)
	}
}

func TestRunHeadlessStops(t *testing.T) {
	steps := 0
	err := RunHeadless(context.Background(), Config{Width: 8, Height: 8}, HeadlessConfig{Hz: 1000, Log: &bytes.Buffer{}},
		func(HAL) func() error {
			return func() error {
				steps++
				if steps == 3 {
					return ErrStop
				}
				return nil
			}
		})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
}

func TestRunHeadlessTickLimitAndErrors(t *testing.T) {
	steps := 0
	err := RunHeadless(context.Background(), Config{}, HeadlessConfig{Hz: 1000, Ticks: 5, Log: &bytes.Buffer{}},
		func(HAL) func() error { return func() error { steps++; return nil } })
	if err != nil || steps != 5 {
		t.Fatalf("RunHeadless = %v after %d steps, want nil after 5", err, steps)
	}

	boom := errors.New("boom")
	err = RunHeadless(context.Background(), Config{}, HeadlessConfig{Hz: 1000, Log: &bytes.Buffer{}},
		func(HAL) func() error { return func() error { return boom } })
	if !errors.Is(err, boom) {
		t.Fatalf("RunHeadless = %v, want boom", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = RunHeadless(ctx, Config{}, HeadlessConfig{Hz: 10, Log: &bytes.Buffer{}},
		func(HAL) func() error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunHeadless = %v, want deadline exceeded", err)
	}
}

func TestRunSteps(t *testing.T) {
	n, err := RunSteps(Config{}, 10, &bytes.Buffer{}, func(HAL) func() error {
		i := 0
		return func() error {
			i++
			if i == 4 {
				return ErrStop
			}
			return nil
		}
	})
	if err != nil || n != 4 {
		t.Fatalf("RunSteps = %d, %v, want 4, nil", n, err)
	}
}
