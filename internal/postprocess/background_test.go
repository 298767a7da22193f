package postprocess

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func fill(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaAt(img *image.NRGBA, x, y int) uint8 {
	return img.NRGBAAt(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).A
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func TestClassifyPureWhiteIsRemoved(t *testing.T) {
	img := Classify(fill(3, 3, white))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if a := alphaAt(img, x, y); a != 0 {
				t.Fatalf("expected alpha 0 at %d,%d, got %d", x, y, a)
			}
		}
	}
}

func TestClassifyGreenScreenPixel(t *testing.T) {
	src := fill(3, 3, red)
	src.SetNRGBA(1, 1, green)

	img := Classify(src)
	if a := alphaAt(img, 1, 1); a != 0 {
		t.Fatalf("expected green pixel removed, got alpha %d", a)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				continue
			}
			if a := alphaAt(img, x, y); a != 255 {
				t.Fatalf("expected red pixel kept at %d,%d, got alpha %d", x, y, a)
			}
		}
	}
}

func TestClassifyDampensOutline(t *testing.T) {
	src := fill(3, 3, black)
	src.SetNRGBA(1, 1, color.NRGBA{R: 250, G: 250, B: 250, A: 255})

	img := Classify(src)
	// 255 * 0.7 = 178.5 rounds half to even.
	if a := alphaAt(img, 1, 1); a != 178 {
		t.Fatalf("expected dampened alpha 178, got %d", a)
	}
	if a := alphaAt(img, 0, 0); a != 255 {
		t.Fatalf("expected black kept, got alpha %d", a)
	}
}

func TestClassifyBorderIsNeverEdge(t *testing.T) {
	src := fill(3, 3, black)
	src.SetNRGBA(0, 1, white)

	img := Classify(src)
	if a := alphaAt(img, 0, 1); a != 0 {
		t.Fatalf("expected border white fully removed, got alpha %d", a)
	}
}

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		name   string
		c      color.NRGBA
		remove bool
	}{
		{"light gray", color.NRGBA{R: 210, G: 205, B: 200, A: 255}, true},
		{"cream", color.NRGBA{R: 240, G: 238, B: 222, A: 255}, true},
		{"blue screen", color.NRGBA{R: 20, G: 40, B: 230, A: 255}, true},
		{"studio gray", color.NRGBA{R: 180, G: 175, B: 178, A: 255}, true},
		{"pastel", color.NRGBA{R: 230, G: 215, B: 205, A: 255}, true},
		{"skin", color.NRGBA{R: 224, G: 172, B: 105, A: 255}, false},
		{"mid gray", color.NRGBA{R: 120, G: 120, B: 120, A: 255}, false},
		{"dark green", color.NRGBA{R: 20, G: 150, B: 30, A: 255}, false},
		{"saturated red", color.NRGBA{R: 200, G: 30, B: 40, A: 255}, false},
	}
	for _, c := range cases {
		img := Classify(fill(1, 1, c.c))
		removed := alphaAt(img, 0, 0) == 0
		if removed != c.remove {
			t.Fatalf("%s: expected remove=%v, got alpha %d", c.name, c.remove, alphaAt(img, 0, 0))
		}
	}
}

func TestClassifyKeepsColorChannels(t *testing.T) {
	src := fill(4, 4, white)
	img := Classify(src)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 || img.Pix[i+1] != 255 || img.Pix[i+2] != 255 {
			t.Fatalf("expected RGB untouched at byte %d", i)
		}
	}
}

func TestDespeckleFadesIsolatedPixel(t *testing.T) {
	src := fill(7, 7, color.NRGBA{})
	src.SetNRGBA(3, 3, red)
	src.SetNRGBA(0, 0, red) // outside the 2-pixel margin

	img := Despeckle(src)
	if a := alphaAt(img, 3, 3); a != speckleAlphaCap {
		t.Fatalf("expected speckle capped at %d, got %d", speckleAlphaCap, a)
	}
	if a := alphaAt(img, 0, 0); a != 255 {
		t.Fatalf("expected border pixel untouched, got %d", a)
	}
}

func TestDespeckleThreshold(t *testing.T) {
	for _, tc := range []struct {
		transparent int
		want        uint8
	}{
		{15, 255},
		{16, 100},
	} {
		src := fill(5, 5, red)
		n := 0
		for y := 0; y < 5 && n < tc.transparent; y++ {
			for x := 0; x < 5 && n < tc.transparent; x++ {
				if x == 2 && y == 2 {
					continue
				}
				src.SetNRGBA(x, y, color.NRGBA{})
				n++
			}
		}

		img := Despeckle(src)
		if a := alphaAt(img, 2, 2); a != tc.want {
			t.Fatalf("%d transparent neighbours: expected alpha %d, got %d", tc.transparent, tc.want, a)
		}
	}
}

func TestDespeckleNeverRaisesAlpha(t *testing.T) {
	src := fill(7, 7, color.NRGBA{})
	src.SetNRGBA(3, 3, color.NRGBA{R: 255, A: 40})

	img := Despeckle(src)
	if a := alphaAt(img, 3, 3); a != 40 {
		t.Fatalf("expected low alpha kept, got %d", a)
	}
}

func TestPassesDoNotMutateInput(t *testing.T) {
	src := noisy(24, 24)
	orig := append([]uint8(nil), src.Pix...)

	RemoveBackground(src)
	if !bytes.Equal(src.Pix, orig) {
		t.Fatal("input modified")
	}

	pass1 := Classify(src)
	snap := append([]uint8(nil), pass1.Pix...)
	Despeckle(pass1)
	if !bytes.Equal(pass1.Pix, snap) {
		t.Fatal("pass 1 output modified by pass 2")
	}
}

func TestRemoveBackgroundTwice(t *testing.T) {
	once := RemoveBackground(noisy(32, 32))
	twice := RemoveBackground(once)

	for i := 3; i < len(once.Pix); i += 4 {
		a1, a2 := once.Pix[i], twice.Pix[i]
		if a1 == 0 && a2 != 0 {
			t.Fatalf("transparent pixel revived at byte %d: %d", i, a2)
		}
		if a1 > 0 && a1 <= 100 && a2 > a1 {
			t.Fatalf("faded pixel re-elevated at byte %d: %d -> %d", i, a1, a2)
		}
		if a2 > a1 {
			t.Fatalf("alpha increased at byte %d: %d -> %d", i, a1, a2)
		}
	}
}

func TestRemoveBackgroundUniformImage(t *testing.T) {
	img := RemoveBackground(fill(16, 16, color.NRGBA{R: 230, G: 230, B: 230, A: 255}))
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatalf("expected uniform background fully erased, got alpha %d at byte %d", img.Pix[i], i)
		}
	}
}

func TestRemoveBackgroundKeepsSubject(t *testing.T) {
	src := fill(20, 20, white)
	for y := 6; y < 14; y++ {
		for x := 6; x < 14; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 40, G: 60, B: 160, A: 255})
		}
	}

	img := RemoveBackground(src)
	if a := alphaAt(img, 10, 10); a != 255 {
		t.Fatalf("expected subject kept, got alpha %d", a)
	}
	if a := alphaAt(img, 1, 1); a != 0 {
		t.Fatalf("expected background removed, got alpha %d", a)
	}
	if b := img.Bounds(); b != src.Bounds() {
		t.Fatalf("bounds changed: %v", b)
	}
}

func TestRemoveBackgroundSubImage(t *testing.T) {
	full := fill(10, 10, red)
	for y := 0; y < 10; y++ {
		full.SetNRGBA(0, y, white)
	}
	sub := full.SubImage(image.Rect(0, 2, 5, 7)).(*image.NRGBA)

	img := RemoveBackground(sub)
	if img.Bounds() != sub.Bounds() {
		t.Fatalf("expected bounds %v, got %v", sub.Bounds(), img.Bounds())
	}
	if a := img.NRGBAAt(0, 3).A; a != 0 {
		t.Fatalf("expected white column removed, got alpha %d", a)
	}
	if a := img.NRGBAAt(3, 3).A; a != 255 {
		t.Fatalf("expected red kept, got alpha %d", a)
	}
}

// noisy builds a deterministic mix of background-like and subject-like pixels.
func noisy(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	seed := uint32(2463534242)
	for i := 0; i < len(img.Pix); i += 4 {
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		v := uint8(seed)
		if seed&3 == 0 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 250, 250, 248
		} else {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = v, uint8(seed>>8), uint8(seed>>16)
		}
		img.Pix[i+3] = uint8(seed>>24) | 0x20
	}
	return img
}
