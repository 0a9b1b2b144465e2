package convert

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// remap quantizes img to the given palette, optionally with Floyd-Steinberg
// dithering.
func remap(img image.Image, pal color.Palette, dither bool) image.Image {
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal)

	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}
	return dest
}
