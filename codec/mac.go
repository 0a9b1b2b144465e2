package codec

import (
	"bytes"
	"fmt"

	"retroimg/bitstream"
	"retroimg/raster"
	"retroimg/runlen"
)

// MacPaint images are always this size regardless of anything a header
// claims.
const (
	macWidth  = 576
	macHeight = 720
)

const pntgBodyOffset = 0x280

// hasPNTG reports whether the PNTG marker appears in the first 100 bytes.
func hasPNTG(data []byte) bool {
	return bytes.Contains(data[:min(100, len(data))], []byte("PNTG"))
}

// DecodeMAC decodes a MacPaint image, including the PNTG sub-variant some
// .MAC files use. Output is always 576x720 grayscale with set bits black.
func DecodeMAC(data []byte) (*raster.Image, error) {
	rowBytes := macWidth / 8

	var packed []byte
	switch {
	case hasPNTG(data):
		// Body sits past the 512-byte fill pattern table at 0x280.
		packed = runlen.PackBits(data[min(pntgBodyOffset, len(data)):], rowBytes*macHeight)
	case len(data) <= 512:
		return nil, fmt.Errorf("mac: %w: no PNTG marker and no body past the 512-byte header", raster.ErrTooSmall)
	default:
		body := data[512:]
		if body[0] > 128 {
			packed = runlen.PackBits(body, rowBytes*macHeight)
		} else {
			packed = body
		}
	}

	return &raster.Image{
		Width:    macWidth,
		Height:   macHeight,
		Channels: raster.Grayscale,
		Pix:      bitstream.Unpack1(packed, macWidth*macHeight, 0, 255),
	}, nil
}
