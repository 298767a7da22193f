package tilt

import (
	"math"

	"cardfx/internal/mathutil"
)

// Parallax range the background position is squeezed into.
const (
	BackgroundMin = 35
	BackgroundMax = 65
)

// Compute converts a pointer offset into the tilt parameters for a surface of size b.
// It is a pure function; applying the result is up to the caller.
func Compute(off Offset, b Bounds) (State, error) {
	if !b.Valid() {
		return State{}, &InvalidSurfaceError{Bounds: b}
	}

	percentX := mathutil.Clamp((100/b.Width)*off.X, 0, 100)
	percentY := mathutil.Clamp((100/b.Height)*off.Y, 0, 100)

	centerX := percentX - 50
	centerY := percentY - 50

	return State{
		PercentX:          mathutil.Round3(percentX),
		PercentY:          mathutil.Round3(percentY),
		CenterX:           mathutil.Round3(centerX),
		CenterY:           mathutil.Round3(centerY),
		BackgroundX:       mathutil.Adjust(percentX, 0, 100, BackgroundMin, BackgroundMax),
		BackgroundY:       mathutil.Adjust(percentY, 0, 100, BackgroundMin, BackgroundMax),
		PointerFromCenter: mathutil.Round3(mathutil.Clamp(math.Hypot(centerY, centerX)/50, 0, 1)),
		PointerFromTop:    mathutil.Round3(percentY / 100),
		PointerFromLeft:   mathutil.Round3(percentX / 100),
		RotateX:           mathutil.Round3(-(centerX / 5)),
		RotateY:           mathutil.Round3(centerY / 4),
	}, nil
}
