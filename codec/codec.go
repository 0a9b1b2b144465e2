// Package codec decodes the vintage raster formats: AOL ART, MacPaint MAC,
// PICtor PIC and PC Paintbrush PCX, plus TIFF via golang.org/x/image/tiff.
//
// Each decoder is a pure function of its input bytes and follows the same
// pipeline: sniff the variant from an ordered rule table, parse the header,
// decompress or unpack the body, composite planes if needed, and resolve
// indices through a palette. Decoders never keep state between calls, so
// decodes of different buffers may run concurrently.
package codec

import (
	"fmt"
	"strings"

	"retroimg/raster"
)

func le16(b []byte) int {
	return int(b[0]) | int(b[1])<<8
}

// resolution is a width-height candidate used by the headerless fallback
// paths of ART and PIC.
type resolution struct {
	w, h int
}

// Decode decodes data as the named format: "art", "mac", "pic", "pcx",
// "tif" or "tiff". Names are matched case-insensitively and may carry a
// leading dot, so file extensions work directly. Unknown names fall back
// to auto-detection.
func Decode(format string, data []byte) (*raster.Image, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "art":
		return DecodeART(data)
	case "mac":
		return DecodeMAC(data)
	case "pic":
		return DecodePIC(data)
	case "pcx":
		return DecodePCX(data)
	case "tif", "tiff":
		return DecodeTIFF(data)
	}

	img, _, err := DecodeAuto(data)
	return img, err
}

// DecodeAuto probes the decoders in a fixed order (PCX, ART, MAC, PIC) and
// returns the first successful decode along with the format that accepted
// the buffer.
func DecodeAuto(data []byte) (*raster.Image, string, error) {
	probes := []struct {
		name   string
		decode func([]byte) (*raster.Image, error)
	}{
		{"pcx", DecodePCX},
		{"art", DecodeART},
		{"mac", DecodeMAC},
		{"pic", DecodePIC},
	}

	var firstErr error
	for _, p := range probes {
		img, err := p.decode(data)
		if err == nil {
			return img, p.name, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, "", fmt.Errorf("no decoder accepted the buffer: %w", firstErr)
}
