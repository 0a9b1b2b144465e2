package codec

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/tiff"

	"retroimg/raster"
)

// DecodeTIFF decodes a TIFF image. The heavy lifting is delegated to
// golang.org/x/image/tiff; this adapter only normalizes the result into
// the shared pixel model: grayscale sources stay single-channel, anything
// else becomes RGB, and a source palette is carried through.
func DecodeTIFF(data []byte) (*raster.Image, error) {
	src, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("tiff: could not decode: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if !raster.ValidSize(w, h) {
		return nil, fmt.Errorf("tiff: %w: %dx%d", raster.ErrInvalidDimensions, w, h)
	}

	if gray, ok := src.(*image.Gray); ok {
		img := raster.New(w, h, raster.Grayscale)
		for y := 0; y < h; y++ {
			copy(img.Pix[y*w:(y+1)*w], gray.Pix[y*gray.Stride:])
		}
		return img, nil
	}

	img := raster.New(w, h, raster.RGB)
	if p, ok := src.(*image.Paletted); ok {
		img.Palette = p.Palette
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			o := (y*w + x) * 3
			img.Pix[o] = uint8(r >> 8)
			img.Pix[o+1] = uint8(g >> 8)
			img.Pix[o+2] = uint8(bl >> 8)
		}
	}
	return img, nil
}
