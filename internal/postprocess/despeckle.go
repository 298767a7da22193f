package postprocess

import "image"

const (
	speckleRadius   = 2   // 5×5 window
	speckleMaxClear = 15  // more transparent neighbours than this marks a speckle
	speckleAlphaCap = 100 // speckles are faded to at most this alpha, never erased
)

// Despeckle is the second background pass. It reads img as an immutable
// snapshot and fades opaque pixels that sit in mostly transparent
// surroundings. A 2-pixel border is left as is.
func Despeckle(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := img.Stride
	result := cloneNRGBA(img)

	for y := speckleRadius; y < h-speckleRadius; y++ {
		for x := speckleRadius; x < w-speckleRadius; x++ {
			a := img.Pix[y*stride+x*4+3]
			if a == 0 {
				continue
			}

			transparent := 0
			for dy := -speckleRadius; dy <= speckleRadius; dy++ {
				row := (y + dy) * stride
				for dx := -speckleRadius; dx <= speckleRadius; dx++ {
					if img.Pix[row+(x+dx)*4+3] == 0 {
						transparent++
					}
				}
			}

			if transparent > speckleMaxClear && a > speckleAlphaCap {
				result.Pix[y*result.Stride+x*4+3] = speckleAlphaCap
			}
		}
	}

	return result
}
