package mathutil

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Round rounds v to the given number of decimal places.
// Negative zero is folded to zero so formatted output never reads "-0".
func Round(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}

// Round3 rounds to 3 decimal places, the precision of every tilt output.
func Round3(v float64) float64 {
	return Round(v, 3)
}

// Adjust linearly remaps v from [fromMin, fromMax] to [toMin, toMax], rounded to 3 decimals.
func Adjust(v, fromMin, fromMax, toMin, toMax float64) float64 {
	return Round3(toMin + (toMax-toMin)*(v-fromMin)/(fromMax-fromMin))
}
