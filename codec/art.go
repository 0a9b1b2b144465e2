package codec

import (
	"bytes"
	"fmt"

	"retroimg/bitstream"
	"retroimg/raster"
	"retroimg/runlen"
)

// artVariant tags the ART sub-format selected by sniffing.
type artVariant int

const (
	artBitmap artVariant = iota
	artAOL
	artPFS
	artGeneric
)

// artRules is evaluated in priority order. The generic entry always
// matches, so ART sniffing never fails outright.
var artRules = []struct {
	variant artVariant
	match   func([]byte) bool
}{
	{artBitmap, matchBitmapART},
	{artAOL, func(d []byte) bool { return bytes.HasPrefix(d, []byte("ART\x00")) }},
	{artPFS, func(d []byte) bool { return len(d) >= 2 && d[0] == 0x01 && d[1] == 0x00 }},
	{artGeneric, func([]byte) bool { return true }},
}

func sniffART(data []byte) artVariant {
	for _, r := range artRules {
		if r.match(data) {
			return r.variant
		}
	}
	return artGeneric
}

// matchBitmapART accepts the uncompressed bitmap layout: a zero word, then
// plausible dimensions at offsets 2 and 6 and roughly enough data for a
// 1-bit image of that size. The 100-byte tolerance is inherited from files
// written with slightly short final scanlines.
func matchBitmapART(d []byte) bool {
	if len(d) < 16 || d[0] != 0 || d[1] != 0 {
		return false
	}
	w, h := le16(d[2:]), le16(d[6:])
	if !raster.ValidSize(w, h) {
		return false
	}
	return len(d) >= 16+(w*h+7)/8-100
}

// DecodeART decodes an AOL ART image.
func DecodeART(data []byte) (*raster.Image, error) {
	if len(data) < 16 {
		return nil, fmt.Errorf("art: %w: need at least 16 bytes", raster.ErrTooSmall)
	}

	switch sniffART(data) {
	case artBitmap:
		return decodeBitmapART(data)
	case artAOL:
		return decodeAOLART(data)
	case artPFS:
		return decodePFSART(data)
	default:
		return decodeGenericART(data)
	}
}

// decodeBitmapART reads 1-bit word-aligned scanlines following a 16-byte
// header. Pixel data begins bytesPerLine-8 bytes into each physical
// scanline, an artifact of the original encoder that has to be reproduced
// for visual correctness; reads landing outside the buffer resolve to
// background.
func decodeBitmapART(data []byte) (*raster.Image, error) {
	w, h := le16(data[2:]), le16(data[6:])
	bpl := bitstream.BytesPerLine(w, 1, 2)

	img := raster.New(w, h, raster.Grayscale)
	for y := 0; y < h; y++ {
		start := 16 + y*bpl + (bpl - 8)
		copy(img.Pix[y*w:], bitstream.RowBits(data, start, w, 255, 0))
	}
	return img, nil
}

// decodeAOLART reads the count-prefixed grayscale body after the "ART\0"
// signature. Header dimensions in this variant are unreliable, so invalid
// ones are replaced by 640x480 instead of failing.
func decodeAOLART(data []byte) (*raster.Image, error) {
	w, h := le16(data[4:]), le16(data[6:])
	if !raster.ValidSize(w, h) {
		w, h = 640, 480
	}

	return &raster.Image{
		Width:    w,
		Height:   h,
		Channels: raster.Grayscale,
		Pix:      runlen.CountPrefixed(data[12:], w*h),
	}, nil
}

// decodePFSART reads the PFS First Publisher layout: dimensions at offsets
// 2 and 4 (320x200 when implausible) and a raw 1-bit body at offset 10.
func decodePFSART(data []byte) (*raster.Image, error) {
	w, h := le16(data[2:]), le16(data[4:])
	if !raster.ValidSize(w, h) {
		w, h = 320, 200
	}

	return &raster.Image{
		Width:    w,
		Height:   h,
		Channels: raster.Grayscale,
		Pix:      bitstream.Unpack1(data[10:], w*h, 255, 0),
	}, nil
}

// Candidate sizes for headerless ART files, tried in this order. The
// ordering is an inherited priority list; the first size the byte count
// satisfies wins.
var artFallbackSizes = []resolution{
	{320, 200}, {640, 480}, {640, 350}, {320, 240},
	{512, 384}, {640, 400}, {800, 600},
}

// decodeGenericART interprets an unrecognized ART file as raw 8-bit
// intensities at the first common resolution the file can fill, or as a
// 320-wide crop of whatever is there.
func decodeGenericART(data []byte) (*raster.Image, error) {
	for _, r := range artFallbackSizes {
		if len(data) >= r.w*r.h {
			return &raster.Image{
				Width:    r.w,
				Height:   r.h,
				Channels: raster.Grayscale,
				Pix:      bytes.Clone(data[:r.w*r.h]),
			}, nil
		}
	}

	w := 320
	h := min(200, len(data)/w)
	if h == 0 {
		return nil, fmt.Errorf("art: %w: %d bytes fill no fallback resolution", raster.ErrInvalidDimensions, len(data))
	}
	return &raster.Image{
		Width:    w,
		Height:   h,
		Channels: raster.Grayscale,
		Pix:      bytes.Clone(data[:w*h]),
	}, nil
}
