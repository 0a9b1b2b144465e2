// Package raster holds the decoded-image model shared by all the vintage
// format decoders: a flat pixel buffer, its dimensions and channel count,
// and the palette the pixels were resolved against, if the source had one.
package raster

import (
	"image"
	"image/color"
)

// Channel counts for Image.Channels.
const (
	Grayscale = 1
	RGB       = 3
)

// MaxDimension bounds declared widths and heights. Files claiming more are
// rejected or remapped to a fallback size by the decoders.
const MaxDimension = 4096

// Image is one decoded frame. Pix is row-major, top-to-bottom,
// left-to-right, with len(Pix) == Width*Height*Channels. Palette is kept
// for callers that want to inspect or export it; the pixel data is already
// fully resolved.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
	Palette  color.Palette
}

// New allocates a zeroed image. Channels must be Grayscale or RGB.
func New(width, height, channels int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// ValidSize reports whether both dimensions fall in [1, MaxDimension].
func ValidSize(width, height int) bool {
	return width >= 1 && width <= MaxDimension && height >= 1 && height <= MaxDimension
}

// ToImage converts to a standard library image for encoding or display.
func (im *Image) ToImage() image.Image {
	r := image.Rect(0, 0, im.Width, im.Height)
	if im.Channels == Grayscale {
		g := image.NewGray(r)
		copy(g.Pix, im.Pix)
		return g
	}

	out := image.NewRGBA(r)
	for i, o := 0, 0; i+2 < len(im.Pix); i, o = i+3, o+4 {
		out.Pix[o] = im.Pix[i]
		out.Pix[o+1] = im.Pix[i+1]
		out.Pix[o+2] = im.Pix[i+2]
		out.Pix[o+3] = 0xFF
	}
	return out
}
