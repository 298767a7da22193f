package imageio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const tgaHeaderLen = 18

var errBadTGA = errors.New("not a tga image")

type tgaHeader struct {
	width, height int
	imageType     byte
	pixelBytes    int
}

// checkTGA validates the fixed 18-byte header and that the payload can
// plausibly hold the declared pixels, so signature-less garbage never reaches
// the decoder with absurd dimensions.
func checkTGA(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderLen {
		return tgaHeader{}, fmt.Errorf("%w: short header", errBadTGA)
	}

	idLen := int(data[0])
	mapType := data[1]
	hdr := tgaHeader{
		imageType: data[2],
		width:     int(binary.LittleEndian.Uint16(data[12:14])),
		height:    int(binary.LittleEndian.Uint16(data[14:16])),
	}
	bpp := data[16]

	switch hdr.imageType {
	case 1, 2, 3, 9, 10, 11:
	default:
		return tgaHeader{}, fmt.Errorf("%w: image type %d", errBadTGA, hdr.imageType)
	}
	switch bpp {
	case 8, 15, 16, 24, 32:
		hdr.pixelBytes = (int(bpp) + 7) / 8
	default:
		return tgaHeader{}, fmt.Errorf("%w: %d bits per pixel", errBadTGA, bpp)
	}
	if mapType > 1 {
		return tgaHeader{}, fmt.Errorf("%w: color map type %d", errBadTGA, mapType)
	}
	if hdr.width == 0 || hdr.height == 0 {
		return tgaHeader{}, fmt.Errorf("%w: empty image", errBadTGA)
	}

	mapLen := 0
	if mapType == 1 {
		entries := int(binary.LittleEndian.Uint16(data[5:7]))
		mapLen = entries * ((int(data[7]) + 7) / 8)
	}
	payload := len(data) - tgaHeaderLen - idLen - mapLen
	if payload <= 0 {
		return tgaHeader{}, fmt.Errorf("%w: no pixel data", errBadTGA)
	}

	// An RLE packet is one count byte plus one pixel and expands to at most
	// 128 pixels.
	capacity := payload / hdr.pixelBytes
	if hdr.imageType >= 9 {
		capacity = payload / (1 + hdr.pixelBytes) * 128
	}
	if hdr.width*hdr.height > capacity {
		return tgaHeader{}, fmt.Errorf("%w: %dx%d does not fit in %d bytes", ErrTooLarge, hdr.width, hdr.height, payload)
	}
	return hdr, nil
}
