package postprocess

import (
	"image"
	"math"
)

const (
	// edgeContrast is the brightness gap to the 4-neighbour mean that marks a pixel as outline.
	edgeContrast = 30
	// edgeAlphaScale softens removed outline pixels instead of cutting them out.
	edgeAlphaScale = 0.7
)

// pixelMetrics are the colour measures the background heuristic works on.
type pixelMetrics struct {
	brightness float64 // mean of R, G, B
	saturation int     // max - min channel
	variance   int     // |R-G| + |G-B| + |R-B|
}

func measure(r, g, b uint8) pixelMetrics {
	ri, gi, bi := int(r), int(g), int(b)
	return pixelMetrics{
		brightness: brightness(r, g, b),
		saturation: max(ri, gi, bi) - min(ri, gi, bi),
		variance:   absInt(ri-gi) + absInt(gi-bi) + absInt(ri-bi),
	}
}

func brightness(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}

// looksLikeBackground is the empirical background test. The constants are
// tuned by hand and must stay exactly as they are.
func looksLikeBackground(r, g, b uint8, m pixelMetrics) bool {
	return m.brightness > 240 || // white
		(m.brightness > 200 && m.saturation < 20) || // light gray / beige
		(m.variance < 15 && m.brightness > 180) || // flat light colour
		(r > 245 && g > 245 && b > 240) || // off-white
		(r > 235 && g > 235 && b > 220 && m.saturation < 25) || // cream
		(r > 220 && g > 220 && b > 220 && m.saturation < 15) || // light gray
		(g > 200 && r < 100 && b < 100) || // green screen
		(b > 200 && r < 100 && g < 100) || // blue screen
		(m.brightness > 160 && m.brightness < 200 && m.saturation < 10) || // studio gray
		(m.brightness > 210 && m.saturation < 30) // pastel
}

// isEdge compares a pixel's brightness with the mean brightness of its
// left, right, top and bottom neighbours. Border pixels are never edges.
func isEdge(pix []uint8, stride, w, h, x, y int, bright float64) bool {
	if x <= 0 || x >= w-1 || y <= 0 || y >= h-1 {
		return false
	}
	at := func(i int) float64 { return brightness(pix[i], pix[i+1], pix[i+2]) }

	i := y*stride + x*4
	avg := (at(i-4) + at(i+4) + at(i-stride) + at(i+stride)) / 4
	return math.Abs(bright-avg) > edgeContrast
}

// Classify is the first background pass. Every pixel is judged on its own
// colour: background pixels become transparent, background pixels on an
// outline keep 70% of their alpha. RGB is untouched and img is not modified.
func Classify(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	result := cloneNRGBA(img)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			r, g, bl, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]

			m := measure(r, g, bl)
			if !looksLikeBackground(r, g, bl, m) {
				continue
			}

			o := y*result.Stride + x*4 + 3
			if isEdge(img.Pix, img.Stride, w, h, x, y, m.brightness) {
				result.Pix[o] = dampenAlpha(a)
			} else {
				result.Pix[o] = 0
			}
		}
	}

	return result
}

// dampenAlpha scales alpha for soft outline blending, rounding half to even
// like a clamped byte store.
func dampenAlpha(a uint8) uint8 {
	return uint8(math.RoundToEven(math.Min(255, float64(a)*edgeAlphaScale)))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// cloneNRGBA copies img row by row into a tightly packed buffer with the same bounds.
func cloneNRGBA(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	return out
}
