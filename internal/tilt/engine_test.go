package tilt

import (
	"errors"
	"testing"
)

func TestComputeTopLeftCorner(t *testing.T) {
	s, err := Compute(Offset{X: 0, Y: 0}, Bounds{Width: 200, Height: 100})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	want := State{
		PercentX:          0,
		PercentY:          0,
		CenterX:           -50,
		CenterY:           -50,
		BackgroundX:       35,
		BackgroundY:       35,
		PointerFromCenter: 1,
		PointerFromTop:    0,
		PointerFromLeft:   0,
		RotateX:           10,
		RotateY:           -12.5,
	}
	if s != want {
		t.Fatalf("unexpected state:\n got %+v\nwant %+v", s, want)
	}
}

func TestComputeCenterIsNeutral(t *testing.T) {
	for _, b := range []Bounds{{200, 100}, {370, 540}, {1, 1}, {33.3, 77.7}} {
		s, err := Compute(b.Center(), b)
		if err != nil {
			t.Fatalf("compute %v: %v", b, err)
		}
		if s.CenterX != 0 || s.CenterY != 0 || s.RotateX != 0 || s.RotateY != 0 {
			t.Fatalf("expected neutral state for %v, got %+v", b, s)
		}
		if s.PointerFromCenter != 0 {
			t.Fatalf("expected zero distance for %v, got %v", b, s.PointerFromCenter)
		}
		if s.BackgroundX != 50 || s.BackgroundY != 50 {
			t.Fatalf("expected centered background for %v, got %v,%v", b, s.BackgroundX, s.BackgroundY)
		}
	}
}

func TestComputeClampsOutOfBounds(t *testing.T) {
	b := Bounds{Width: 300, Height: 400}
	offsets := []Offset{
		{-1000, -1000}, {1000, 1000}, {-5, 200}, {150, 9999},
		{299.999, 0.001}, {12345.6, -0.5},
	}

	for _, off := range offsets {
		s, err := Compute(off, b)
		if err != nil {
			t.Fatalf("compute %v: %v", off, err)
		}
		if s.PercentX < 0 || s.PercentX > 100 || s.PercentY < 0 || s.PercentY > 100 {
			t.Fatalf("percent out of range for %v: %+v", off, s)
		}
		if s.PointerFromCenter < 0 || s.PointerFromCenter > 1 {
			t.Fatalf("pointer-from-center out of range for %v: %v", off, s.PointerFromCenter)
		}
		if s.BackgroundX < BackgroundMin || s.BackgroundX > BackgroundMax {
			t.Fatalf("background out of range for %v: %v", off, s.BackgroundX)
		}
		if s.RotateX < -10 || s.RotateX > 10 || s.RotateY < -12.5 || s.RotateY > 12.5 {
			t.Fatalf("rotation out of range for %v: %v,%v", off, s.RotateX, s.RotateY)
		}
	}
}

func TestComputeRounding(t *testing.T) {
	s, err := Compute(Offset{X: 100, Y: 100}, Bounds{Width: 300, Height: 300})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if s.PercentX != 33.333 {
		t.Fatalf("expected 33.333, got %v", s.PercentX)
	}
	if s.RotateX != 3.333 {
		t.Fatalf("expected 3.333, got %v", s.RotateX)
	}
	if s.PointerFromLeft != 0.333 {
		t.Fatalf("expected 0.333, got %v", s.PointerFromLeft)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	b := Bounds{Width: 317, Height: 443}
	off := Offset{X: 71.3, Y: 301.9}
	first, _ := Compute(off, b)
	for i := 0; i < 10; i++ {
		s, _ := Compute(off, b)
		if s != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, s, first)
		}
	}
}

func TestComputeInvalidSurface(t *testing.T) {
	for _, b := range []Bounds{{0, 100}, {100, 0}, {0, 0}, {-1, 10}} {
		_, err := Compute(Offset{}, b)
		var surfErr *InvalidSurfaceError
		if !errors.As(err, &surfErr) {
			t.Fatalf("expected InvalidSurfaceError for %v, got %v", b, err)
		}
		if surfErr.Bounds != b {
			t.Fatalf("expected bounds %v in error, got %v", b, surfErr.Bounds)
		}
	}
}

func TestProperties(t *testing.T) {
	s, err := Compute(Offset{X: 0, Y: 0}, Bounds{Width: 200, Height: 100})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	style := StyleMap{}
	s.Apply(style)

	want := map[string]string{
		"--pointer-x":           "0%",
		"--pointer-y":           "0%",
		"--background-x":        "35%",
		"--background-y":        "35%",
		"--pointer-from-center": "1",
		"--pointer-from-top":    "0",
		"--pointer-from-left":   "0",
		"--rotate-x":            "10deg",
		"--rotate-y":            "-12.5deg",
	}
	if len(style) != len(want) {
		t.Fatalf("expected %d properties, got %d", len(want), len(style))
	}
	for k, v := range want {
		if style[k] != v {
			t.Fatalf("%s: expected %q, got %q", k, v, style[k])
		}
	}
}

func TestPropertiesCenterHasNoNegativeZero(t *testing.T) {
	b := Bounds{Width: 200, Height: 100}
	s, _ := Compute(b.Center(), b)
	for _, p := range s.Properties() {
		if p.Name == "--rotate-x" && p.Value != "0deg" {
			t.Fatalf("expected 0deg, got %q", p.Value)
		}
	}
}
