package codec

import (
	"fmt"

	"retroimg/bitstream"
	"retroimg/palette"
	"retroimg/raster"
	"retroimg/runlen"
)

const (
	pcxMagic      = 0x0A
	pcxHeaderSize = 128
)

// DecodePCX decodes a PC Paintbrush image. PCX has no fallback variant:
// a missing manufacturer byte or implausible dimensions fail the decode.
func DecodePCX(data []byte) (*raster.Image, error) {
	if len(data) < pcxHeaderSize {
		return nil, fmt.Errorf("pcx: %w: need a 128-byte header", raster.ErrTooSmall)
	}
	if data[0] != pcxMagic {
		return nil, fmt.Errorf("pcx: %w: manufacturer byte %#02x", raster.ErrBadSignature, data[0])
	}

	encoding := data[2]
	bpp := int(data[3])
	xmin, ymin := le16(data[4:]), le16(data[6:])
	xmax, ymax := le16(data[8:]), le16(data[10:])
	w, h := xmax-xmin+1, ymax-ymin+1
	if !raster.ValidSize(w, h) {
		return nil, fmt.Errorf("pcx: %w: %dx%d", raster.ErrInvalidDimensions, w, h)
	}

	nplanes := int(data[65])
	if nplanes < 1 {
		nplanes = 1
	}
	bpl := le16(data[66:])
	if bpl < 1 {
		bpl = bitstream.BytesPerLine(w, bpp, 1)
	}
	rowBytes := bpl * nplanes

	var rows []byte
	if encoding == 1 {
		rows = runlen.CountPrefixedRows(data[pcxHeaderSize:], rowBytes, h)
	} else {
		rows = make([]byte, rowBytes*h)
		copy(rows, data[pcxHeaderSize:])
	}

	switch {
	case bpp == 8 && nplanes == 1:
		return decodePCX8(data, rows, w, h, bpl)
	case bpp == 1 && nplanes == 1:
		return decodePCXMono(rows, w, h, bpl)
	case bpp == 4 && nplanes == 1:
		return decodePCX16(data, rows, w, h, bpl)
	case bpp == 1 && (nplanes == 3 || nplanes == 4):
		return decodePCXPlanar(data, rows, w, h, bpl, nplanes)
	}
	return nil, fmt.Errorf("pcx: %w: %d bpp with %d planes", raster.ErrUnrecognizedVariant, bpp, nplanes)
}

// headerPalette returns the 16-color palette at bytes 16..63, or the EGA
// default when that slot is blank.
func headerPalette(data []byte) palette.Table {
	if palette.Blank(data[16:64]) {
		return palette.EGA()
	}
	return palette.FromTriplets(data[16:64])
}

// decodePCX8 reads one index byte per pixel. With a VGA palette block at
// the file tail the image resolves to RGB; without one the indices stand
// as grayscale intensities.
func decodePCX8(data, rows []byte, w, h, bpl int) (*raster.Image, error) {
	pal, ok := palette.VGATail(data)
	if !ok {
		img := raster.New(w, h, raster.Grayscale)
		for y := 0; y < h; y++ {
			copy(img.Pix[y*w:(y+1)*w], rows[y*bpl:])
		}
		return img, nil
	}

	img := raster.New(w, h, raster.RGB)
	img.Palette = pal.Colors()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := pal.Resolve(int(rows[y*bpl+x]))
			o := (y*w + x) * 3
			img.Pix[o] = c.R
			img.Pix[o+1] = c.G
			img.Pix[o+2] = c.B
		}
	}
	return img, nil
}

func decodePCXMono(rows []byte, w, h, bpl int) (*raster.Image, error) {
	img := raster.New(w, h, raster.Grayscale)
	for y := 0; y < h; y++ {
		copy(img.Pix[y*w:], bitstream.Unpack1(rows[y*bpl:(y+1)*bpl], w, 255, 0))
	}
	return img, nil
}

// decodePCX16 reads two 4-bit indices per byte against the header palette.
func decodePCX16(data, rows []byte, w, h, bpl int) (*raster.Image, error) {
	pal := headerPalette(data)

	img := raster.New(w, h, raster.RGB)
	img.Palette = pal.Colors()
	for y := 0; y < h; y++ {
		idx := bitstream.Unpack4(rows[y*bpl:(y+1)*bpl], w)
		for x, v := range idx {
			c := pal.Resolve(int(v))
			o := (y*w + x) * 3
			img.Pix[o] = c.R
			img.Pix[o+1] = c.G
			img.Pix[o+2] = c.B
		}
	}
	return img, nil
}

// decodePCXPlanar recombines 3- or 4-plane scanlines: four planes form EGA
// indices resolved through the header palette, three planes map directly
// to RGB channels.
func decodePCXPlanar(data, rows []byte, w, h, bpl, nplanes int) (*raster.Image, error) {
	img := raster.New(w, h, raster.RGB)

	var pal palette.Table
	if nplanes == 4 {
		pal = headerPalette(data)
		img.Palette = pal.Colors()
	}

	rowBytes := bpl * nplanes
	planes := make([][]byte, nplanes)
	for y := 0; y < h; y++ {
		row := rows[y*rowBytes : (y+1)*rowBytes]
		for k := range planes {
			planes[k] = row[k*bpl : (k+1)*bpl]
		}

		if nplanes == 4 {
			for x, v := range bitstream.CompositeEGA(planes, w) {
				c := pal.Resolve(int(v))
				o := (y*w + x) * 3
				img.Pix[o] = c.R
				img.Pix[o+1] = c.G
				img.Pix[o+2] = c.B
			}
		} else {
			copy(img.Pix[y*w*3:], bitstream.CompositeRGB(planes, w))
		}
	}
	return img, nil
}
