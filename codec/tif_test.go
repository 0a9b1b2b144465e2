package codec

import (
	"bytes"
	"image"
	"testing"

	"golang.org/x/image/tiff"

	"retroimg/raster"
)

func encodeTIFF(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, nil); err != nil {
		t.Fatalf("could not encode test TIFF: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeTIFFGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	src.Pix = []uint8{10, 20, 30, 40, 50, 60}

	img, err := DecodeTIFF(encodeTIFF(t, src))
	if err != nil {
		t.Fatalf("DecodeTIFF failed: %v", err)
	}
	if img.Width != 3 || img.Height != 2 || img.Channels != raster.Grayscale {
		t.Fatalf("got %dx%d channels %d", img.Width, img.Height, img.Channels)
	}
	for i, v := range src.Pix {
		if img.Pix[i] != v {
			t.Fatalf("pix = %v, want %v", img.Pix, src.Pix)
		}
	}
}

func TestDecodeTIFFColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Pix = []uint8{255, 0, 0, 255, 0, 0, 255, 255}

	img, err := DecodeTIFF(encodeTIFF(t, src))
	if err != nil {
		t.Fatalf("DecodeTIFF failed: %v", err)
	}
	if img.Channels != raster.RGB {
		t.Fatalf("channels = %d", img.Channels)
	}
	if len(img.Pix) != 2*1*3 {
		t.Fatalf("pixel buffer has %d bytes", len(img.Pix))
	}
	if img.Pix[0] != 255 || img.Pix[1] != 0 || img.Pix[2] != 0 {
		t.Errorf("pixel (0,0) = %v, want red", img.Pix[:3])
	}
	if img.Pix[3] != 0 || img.Pix[4] != 0 || img.Pix[5] != 255 {
		t.Errorf("pixel (1,0) = %v, want blue", img.Pix[3:6])
	}
}

func TestDecodeTIFFGarbage(t *testing.T) {
	if _, err := DecodeTIFF([]byte("not a tiff at all")); err == nil {
		t.Error("expected error for garbage input")
	}
}
