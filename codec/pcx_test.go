package codec

import (
	"encoding/binary"
	"errors"
	"testing"

	"retroimg/raster"
)

func pcxHeader(bpp, nplanes, xmax, ymax, bpl int) []byte {
	h := make([]byte, 128)
	h[0] = pcxMagic
	h[1] = 5 // version
	h[2] = 1 // RLE
	h[3] = byte(bpp)
	binary.LittleEndian.PutUint16(h[8:], uint16(xmax))
	binary.LittleEndian.PutUint16(h[10:], uint16(ymax))
	h[65] = byte(nplanes)
	binary.LittleEndian.PutUint16(h[66:], uint16(bpl))
	return h
}

func TestDecodePCXPalettedRoundTrip(t *testing.T) {
	// 4x4, 8bpp, one plane, literal-run scanlines with index bytes 0..15,
	// then the trailing VGA palette block holding an identity palette.
	data := pcxHeader(8, 1, 3, 3, 4)
	for y := 0; y < 4; y++ {
		data = append(data, 0x04)
		for x := 0; x < 4; x++ {
			data = append(data, byte(y*4+x))
		}
	}
	data = append(data, 0x0C)
	for i := 0; i < 256; i++ {
		data = append(data, byte(i), byte(i), byte(i))
	}

	img, err := DecodePCX(data)
	if err != nil {
		t.Fatalf("DecodePCX failed: %v", err)
	}
	if img.Width != 4 || img.Height != 4 || img.Channels != raster.RGB {
		t.Fatalf("got %dx%d channels %d", img.Width, img.Height, img.Channels)
	}
	if len(img.Pix) != 4*4*3 {
		t.Fatalf("pixel buffer has %d bytes", len(img.Pix))
	}
	if len(img.Palette) != 256 {
		t.Errorf("palette has %d entries", len(img.Palette))
	}
	if img.Pix[0] != 0 || img.Pix[1] != 0 || img.Pix[2] != 0 {
		t.Errorf("pixel (0,0) = %v, want palette color for index 0", img.Pix[:3])
	}
	if o := (1*4 + 1) * 3; img.Pix[o] != 5 {
		t.Errorf("pixel (1,1) = %d, want palette color for index 5", img.Pix[o])
	}
}

func TestDecodePCXInvalidDimensions(t *testing.T) {
	data := pcxHeader(8, 1, 3, 3, 4)
	binary.LittleEndian.PutUint16(data[4:], 10) // xmin > xmax
	if _, err := DecodePCX(data); !errors.Is(err, raster.ErrInvalidDimensions) {
		t.Errorf("got %v, want ErrInvalidDimensions", err)
	}

	data = pcxHeader(8, 1, 5000, 3, 4)
	if _, err := DecodePCX(data); !errors.Is(err, raster.ErrInvalidDimensions) {
		t.Errorf("oversized: got %v, want ErrInvalidDimensions", err)
	}
}

func TestDecodePCXBadSignature(t *testing.T) {
	data := make([]byte, 128)
	data[0] = 0x0B
	if _, err := DecodePCX(data); !errors.Is(err, raster.ErrBadSignature) {
		t.Errorf("got %v, want ErrBadSignature", err)
	}
}

func TestDecodePCXTooSmall(t *testing.T) {
	if _, err := DecodePCX(make([]byte, 64)); !errors.Is(err, raster.ErrTooSmall) {
		t.Errorf("got %v, want ErrTooSmall", err)
	}
}

func TestDecodePCXMono(t *testing.T) {
	data := pcxHeader(1, 1, 7, 0, 1)
	data[2] = 0 // raw scanlines
	data = append(data, 0xAA)

	img, err := DecodePCX(data)
	if err != nil {
		t.Fatalf("DecodePCX failed: %v", err)
	}
	if img.Width != 8 || img.Height != 1 || img.Channels != raster.Grayscale {
		t.Fatalf("got %dx%d channels %d", img.Width, img.Height, img.Channels)
	}
	want := []uint8{255, 0, 255, 0, 255, 0, 255, 0}
	for i, v := range want {
		if img.Pix[i] != v {
			t.Fatalf("pix = %v, want %v", img.Pix, want)
		}
	}
}

func TestDecodePCXPlanarEGA(t *testing.T) {
	// 8x1, 1bpp, 4 planes: only plane 0 set, so every pixel is index 1.
	// Blank header palette falls back to the EGA table, where 1 is blue.
	data := pcxHeader(1, 4, 7, 0, 1)
	data[2] = 0
	data = append(data, 0xFF, 0x00, 0x00, 0x00)

	img, err := DecodePCX(data)
	if err != nil {
		t.Fatalf("DecodePCX failed: %v", err)
	}
	if img.Channels != raster.RGB {
		t.Fatalf("channels = %d", img.Channels)
	}
	if img.Pix[0] != 0 || img.Pix[1] != 0 || img.Pix[2] != 0xAA {
		t.Errorf("pixel (0,0) = %v, want EGA blue", img.Pix[:3])
	}
	if len(img.Palette) != 16 {
		t.Errorf("palette has %d entries", len(img.Palette))
	}
}

func TestDecodePCXPlanarRGB(t *testing.T) {
	// Three planes map straight to channels: red and blue set on pixel 0.
	data := pcxHeader(1, 3, 7, 0, 1)
	data[2] = 0
	data = append(data, 0x80, 0x00, 0x80)

	img, err := DecodePCX(data)
	if err != nil {
		t.Fatalf("DecodePCX failed: %v", err)
	}
	if img.Pix[0] != 255 || img.Pix[1] != 0 || img.Pix[2] != 255 {
		t.Errorf("pixel (0,0) = %v, want magenta", img.Pix[:3])
	}
	if img.Pix[3] != 0 || img.Pix[4] != 0 || img.Pix[5] != 0 {
		t.Errorf("pixel (1,0) = %v, want black", img.Pix[3:6])
	}
}

func TestDecodePCX8Grayscale(t *testing.T) {
	// No VGA tail block: index bytes stand as intensities.
	data := pcxHeader(8, 1, 1, 0, 2)
	data = append(data, 0x02, 0x40, 0xC8)

	img, err := DecodePCX(data)
	if err != nil {
		t.Fatalf("DecodePCX failed: %v", err)
	}
	if img.Channels != raster.Grayscale {
		t.Fatalf("channels = %d", img.Channels)
	}
	if img.Pix[0] != 0x40 || img.Pix[1] != 0xC8 {
		t.Errorf("pix = %v", img.Pix)
	}
}

func TestDecodePCX16Color(t *testing.T) {
	// 4bpp: two samples per byte against the header palette.
	data := pcxHeader(4, 1, 1, 0, 1)
	data[2] = 0
	data[16], data[17], data[18] = 1, 2, 3    // entry 0
	data[19], data[20], data[21] = 10, 20, 30 // entry 1
	data = append(data, 0x01) // pixels 0, 1

	img, err := DecodePCX(data)
	if err != nil {
		t.Fatalf("DecodePCX failed: %v", err)
	}
	if img.Pix[0] != 1 || img.Pix[1] != 2 || img.Pix[2] != 3 {
		t.Errorf("pixel (0,0) = %v", img.Pix[:3])
	}
	if img.Pix[3] != 10 || img.Pix[4] != 20 || img.Pix[5] != 30 {
		t.Errorf("pixel (1,0) = %v", img.Pix[3:6])
	}
}

func TestDecodePCXUnsupportedLayout(t *testing.T) {
	data := pcxHeader(2, 2, 3, 3, 1)
	if _, err := DecodePCX(data); !errors.Is(err, raster.ErrUnrecognizedVariant) {
		t.Errorf("got %v, want ErrUnrecognizedVariant", err)
	}
}
