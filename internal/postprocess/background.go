package postprocess

import "image"

// RemoveBackground runs both background passes and returns a new image with
// the same bounds. img itself is left untouched.
func RemoveBackground(img *image.NRGBA) *image.NRGBA {
	return Despeckle(Classify(img))
}
