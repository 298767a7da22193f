package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrEmpty is wrapped by DecodeError when there are no bytes to decode.
var ErrEmpty = errors.New("empty input")

// ErrTooLarge is wrapped by DecodeError when the declared dimensions exceed
// the pixel limit or cannot fit in the payload.
var ErrTooLarge = errors.New("image too large")

// DefaultMaxPixels bounds the decoded size when no explicit limit is given.
const DefaultMaxPixels = 40_000_000

// DecodeError reports undecodable upload bytes. Callers fall back to the
// original bytes; no partial image is ever returned alongside it.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("imageio: decode: %v", e.Err)
	}
	return fmt.Sprintf("imageio: decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type decoder struct {
	name   string
	magic  []string
	config func(io.Reader) (image.Config, error)
	decode func(io.Reader) (image.Image, error)
}

var decoders = []decoder{
	{"png", []string{"\x89PNG\r\n\x1a\n"}, png.DecodeConfig, png.Decode},
	{"jpeg", []string{"\xff\xd8"}, jpeg.DecodeConfig, jpeg.Decode},
	{"gif", []string{"GIF87a", "GIF89a"}, gif.DecodeConfig, gif.Decode},
	{"bmp", []string{"BM"}, bmp.DecodeConfig, bmp.Decode},
	{"webp", []string{"RIFF????WEBPVP8"}, webp.DecodeConfig, webp.Decode},
	{"tiff", []string{"II*\x00", "MM\x00*"}, tiff.DecodeConfig, tiff.Decode},
}

// TGA has no signature, so it is tried last for anything unrecognized and
// only after its header passes checkTGA.
var tgaDecoder = decoder{name: "tga", decode: tga.Decode}

// Sniff returns the format name Decode would use for data.
func Sniff(data []byte) string {
	return pick(data).name
}

func pick(data []byte) decoder {
	for _, d := range decoders {
		for _, m := range d.magic {
			if match(m, data) {
				return d
			}
		}
	}
	return tgaDecoder
}

func match(magic string, b []byte) bool {
	if len(b) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && magic[i] != b[i] {
			return false
		}
	}
	return true
}

// Decode decodes raw upload bytes into an NRGBA buffer anchored at (0,0),
// limited to DefaultMaxPixels. Formats without alpha come back fully opaque.
func Decode(data []byte) (*image.NRGBA, string, error) {
	return DecodeLimit(data, DefaultMaxPixels)
}

// DecodeLimit is Decode with an explicit pixel limit. The declared dimensions
// are checked before any pixel buffer is allocated; maxPixels <= 0 means
// DefaultMaxPixels.
func DecodeLimit(data []byte, maxPixels int) (*image.NRGBA, string, error) {
	if len(data) == 0 {
		return nil, "", &DecodeError{Err: ErrEmpty}
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	d := pick(data)

	var w, h int
	if d.config == nil {
		hdr, err := checkTGA(data)
		if err != nil {
			return nil, d.name, &DecodeError{Format: d.name, Err: err}
		}
		w, h = hdr.width, hdr.height
	} else {
		cfg, err := d.config(bytes.NewReader(data))
		if err != nil {
			return nil, d.name, &DecodeError{Format: d.name, Err: err}
		}
		w, h = cfg.Width, cfg.Height
	}
	if w <= 0 || h <= 0 || w > maxPixels/h {
		return nil, d.name, &DecodeError{
			Format: d.name,
			Err:    fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, w, h, maxPixels),
		}
	}

	img, err := safeDecode(d, data)
	if err != nil {
		return nil, d.name, &DecodeError{Format: d.name, Err: err}
	}

	return ToNRGBA(img), d.name, nil
}

// safeDecode turns a decoder panic on malformed input into an error.
func safeDecode(d decoder, data []byte) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("malformed %s data: %v", d.name, r)
		}
	}()
	return d.decode(bytes.NewReader(data))
}

// ToNRGBA converts any image to non-premultiplied RGBA with origin (0,0).
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
