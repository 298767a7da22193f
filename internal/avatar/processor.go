// Package avatar turns uploaded avatar bytes into a background-free preview.
package avatar

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"cardfx/internal/imageio"
	"cardfx/internal/logging"
	"cardfx/internal/postprocess"
)

// Processor runs the upload pipeline: decode, optional downscale, background
// removal, alpha-preserving encode. A Processor holds no per-call state and
// may be shared between goroutines.
type Processor struct {
	format    imageio.Format
	maxDim    int
	maxPixels int
	log       logrus.FieldLogger
}

// Option configures a Processor.
type Option func(*Processor)

// WithFormat selects the output encoding (PNG by default).
func WithFormat(f imageio.Format) Option {
	return func(p *Processor) { p.format = f }
}

// WithMaxDimension downsizes uploads larger than n pixels on either side
// before processing. Zero keeps the original size.
func WithMaxDimension(n int) Option {
	return func(p *Processor) { p.maxDim = n }
}

// WithMaxPixels rejects uploads declaring more than n pixels before any pixel
// buffer is allocated. Zero means imageio.DefaultMaxPixels.
func WithMaxPixels(n int) Option {
	return func(p *Processor) { p.maxPixels = n }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Processor) { p.log = l }
}

func New(opts ...Option) *Processor {
	p := &Processor{
		format: imageio.FormatPNG,
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Format returns the output encoding.
func (p *Processor) Format() imageio.Format { return p.format }

// Process decodes data, removes the background and re-encodes the result.
// Undecodable input yields an *imageio.DecodeError and no output.
func (p *Processor) Process(data []byte) ([]byte, error) {
	start := time.Now()

	img, format, err := imageio.DecodeLimit(data, p.maxPixels)
	if err != nil {
		return nil, err
	}

	img = postprocess.FitWithin(img, p.maxDim)
	img = postprocess.RemoveBackground(img)

	out, err := imageio.EncodeBytes(img, p.format)
	if err != nil {
		return nil, fmt.Errorf("avatar: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"input_format":  format,
		"output_format": p.format,
		"width":         img.Bounds().Dx(),
		"height":        img.Bounds().Dy(),
		"bytes_in":      len(data),
		"bytes_out":     len(out),
		"elapsed":       time.Since(start),
	}).Debug("Background removed")

	return out, nil
}

// Preview returns the processed image, or the original bytes when processing
// fails so the caller always has something to display.
func (p *Processor) Preview(data []byte) []byte {
	out, err := p.Process(data)
	if err != nil {
		p.log.WithError(err).Warn("Background removal failed, using original upload")
		return data
	}
	return out
}
