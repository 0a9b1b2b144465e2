package codec

import (
	"bytes"
	"fmt"

	"retroimg/bitstream"
	"retroimg/palette"
	"retroimg/raster"
	"retroimg/runlen"
)

// picVariant tags the PIC sub-format selected by sniffing.
type picVariant int

const (
	picPNTG picVariant = iota
	picStandard
	picGeneric
)

// picRules is evaluated in priority order; like ART, PIC always resolves
// to at least the generic variant.
var picRules = []struct {
	variant picVariant
	match   func([]byte) bool
}{
	{picPNTG, func(d []byte) bool {
		head := d[:min(100, len(d))]
		return bytes.Contains(head, []byte("PNTG")) || bytes.Contains(head, []byte("PICT"))
	}},
	{picStandard, func(d []byte) bool { return len(d) >= 2 && d[0] == 0x34 && d[1] == 0x12 }},
	{picGeneric, func([]byte) bool { return true }},
}

func sniffPIC(data []byte) picVariant {
	for _, r := range picRules {
		if r.match(data) {
			return r.variant
		}
	}
	return picGeneric
}

// DecodePIC decodes a PICtor PIC image or one of its PICT/PNTG relatives.
func DecodePIC(data []byte) (*raster.Image, error) {
	if len(data) < 17 {
		return nil, fmt.Errorf("pic: %w: need at least 17 bytes", raster.ErrTooSmall)
	}

	switch sniffPIC(data) {
	case picPNTG:
		return decodePNTGPIC(data)
	case picStandard:
		return decodeStandardPIC(data)
	default:
		return decodeGenericPIC(data)
	}
}

// decodePNTGPIC handles PICT/PNTG-flavored files. Header dimensions in
// these are known to be unreliable, so the canonical MacPaint 576x720 is
// forced. The body normally follows the fill pattern table at 0x280; files
// too short for patterns keep it at 0x80.
func decodePNTGPIC(data []byte) (*raster.Image, error) {
	off := pntgBodyOffset
	if len(data) < off {
		off = 0x80
	}

	rowBytes := macWidth / 8
	body := data[min(off, len(data)):]
	packed := runlen.PackBitsRows(body, rowBytes, macHeight)

	return &raster.Image{
		Width:    macWidth,
		Height:   macHeight,
		Channels: raster.Grayscale,
		Pix:      bitstream.Unpack1(packed, macWidth*macHeight, 0, 255),
	}, nil
}

// decodeStandardPIC reads the PICtor header: dimensions at offsets 2 and 4,
// bit depth at 6, then for 8bpp files a 768-byte 6-bit palette at 17, and a
// count-prefixed body.
func decodeStandardPIC(data []byte) (*raster.Image, error) {
	w, h := le16(data[2:]), le16(data[4:])
	if !raster.ValidSize(w, h) {
		return nil, fmt.Errorf("pic: %w: %dx%d", raster.ErrInvalidDimensions, w, h)
	}

	bpp := int(data[6])
	off := 17

	var pal palette.Table
	if bpp == 8 && len(data) >= off+768 {
		pal = palette.From6Bit(data[off : off+768])
		off += 768
	}

	vals := runlen.CountPrefixed(data[off:], w*h)

	switch {
	case bpp == 8 && pal != nil:
		img := raster.New(w, h, raster.RGB)
		img.Palette = pal.Colors()
		for i, v := range vals {
			c := pal.Resolve(int(v))
			img.Pix[i*3] = c.R
			img.Pix[i*3+1] = c.G
			img.Pix[i*3+2] = c.B
		}
		return img, nil
	case bpp == 1:
		// Run values are on/off pixels here, not intensities.
		img := raster.New(w, h, raster.Grayscale)
		for i, v := range vals {
			if v != 0 {
				img.Pix[i] = 255
			}
		}
		return img, nil
	default:
		return &raster.Image{
			Width:    w,
			Height:   h,
			Channels: raster.Grayscale,
			Pix:      vals,
		}, nil
	}
}

// Candidate sizes for unrecognized PIC files, tried in this order against
// the bytes remaining past an assumed 256-byte header.
var picFallbackSizes = []resolution{
	{640, 480}, {320, 200}, {640, 400}, {800, 600}, {512, 384},
}

func decodeGenericPIC(data []byte) (*raster.Image, error) {
	body := data[min(256, len(data)):]

	w, h := 320, 200
	for _, r := range picFallbackSizes {
		if len(data) >= r.w*r.h+256 {
			w, h = r.w, r.h
			break
		}
	}

	return &raster.Image{
		Width:    w,
		Height:   h,
		Channels: raster.Grayscale,
		Pix:      bitstream.Unpack1(body, w*h, 255, 0),
	}, nil
}
