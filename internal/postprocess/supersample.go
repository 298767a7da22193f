package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FitWithin scales img down so neither side exceeds maxDim, keeping the aspect
// ratio. The scaler filters in premultiplied alpha, so colour hidden under
// transparent pixels does not bleed into the subject's edges. maxDim <= 0 or a
// small enough image returns img unchanged.
func FitWithin(img *image.NRGBA, maxDim int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	size := image.Rect(0, 0, max(1, int(float64(w)*scale+0.5)), max(1, int(float64(h)*scale+0.5)))

	scaled := image.NewRGBA(size)
	draw.CatmullRom.Scale(scaled, size, img, b, draw.Src, nil)

	// Kernel overshoot can leave a channel above its alpha, which is not a
	// valid premultiplied colour.
	result := image.NewNRGBA(size)
	for i := 0; i < len(scaled.Pix); i += 4 {
		a := scaled.Pix[i+3]
		c := color.RGBA{R: min(scaled.Pix[i], a), G: min(scaled.Pix[i+1], a), B: min(scaled.Pix[i+2], a), A: a}
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		result.Pix[i], result.Pix[i+1], result.Pix[i+2], result.Pix[i+3] = n.R, n.G, n.B, n.A
	}
	return result
}
