package tilt

import "fmt"

// Bounds is the size of the interactive surface at sample time.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// Center returns the resting pointer position.
func (b Bounds) Center() Offset {
	return Offset{X: b.Width / 2, Y: b.Height / 2}
}

// Offset is a pointer position in pixels relative to the surface's top-left corner.
// Values outside the surface are allowed and clamped by Compute.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State holds the visual parameters derived from one pointer sample.
// Every field is rounded to 3 decimal places.
type State struct {
	PercentX float64 `json:"percent_x"` // [0,100]
	PercentY float64 `json:"percent_y"`

	CenterX float64 `json:"center_x"` // [-50,50]
	CenterY float64 `json:"center_y"`

	BackgroundX float64 `json:"background_x"` // [35,65] parallax
	BackgroundY float64 `json:"background_y"`

	PointerFromCenter float64 `json:"pointer_from_center"` // [0,1]
	PointerFromTop    float64 `json:"pointer_from_top"`
	PointerFromLeft   float64 `json:"pointer_from_left"`

	RotateX float64 `json:"rotate_x"` // degrees
	RotateY float64 `json:"rotate_y"`
}

// InvalidSurfaceError is returned when the surface has no area yet,
// typically because layout has not been established.
type InvalidSurfaceError struct {
	Bounds Bounds
}

func (e *InvalidSurfaceError) Error() string {
	return fmt.Sprintf("tilt: invalid surface %gx%g", e.Bounds.Width, e.Bounds.Height)
}
