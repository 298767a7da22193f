package mathutil

import "math"

// EaseInOutCubic maps linear progress x ∈ [0,1] onto a cubic ease-in-out curve.
func EaseInOutCubic(x float64) float64 {
	if x < 0.5 {
		return 4 * x * x * x
	}
	return 1 - math.Pow(-2*x+2, 3)/2
}
