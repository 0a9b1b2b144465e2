// Package palette resolves color indices against the palette sources the
// vintage formats carry: a built-in 16-color EGA default, 16-entry header
// palettes, 256-entry VGA blocks appended to PCX files, and RIFF PAL files.
package palette

import "image/color"

// Table is an ordered palette of up to 256 colors.
type Table []color.RGBA

// Resolve returns the color for idx. Resolution is total: any index outside
// the table resolves to black rather than faulting.
func (t Table) Resolve(idx int) color.RGBA {
	if idx < 0 || idx >= len(t) {
		return color.RGBA{A: 0xFF}
	}
	return t[idx]
}

// Colors converts the table for use with the standard image packages.
func (t Table) Colors() color.Palette {
	p := make(color.Palette, len(t))
	for i, c := range t {
		p[i] = c
	}
	return p
}

// EGA returns the built-in 16-color EGA table, used whenever a format has
// no embedded palette or the embedded one is too short.
func EGA() Table {
	return Table{
		{0x00, 0x00, 0x00, 0xFF}, // black
		{0x00, 0x00, 0xAA, 0xFF}, // blue
		{0x00, 0xAA, 0x00, 0xFF}, // green
		{0x00, 0xAA, 0xAA, 0xFF}, // cyan
		{0xAA, 0x00, 0x00, 0xFF}, // red
		{0xAA, 0x00, 0xAA, 0xFF}, // magenta
		{0xAA, 0x55, 0x00, 0xFF}, // brown
		{0xAA, 0xAA, 0xAA, 0xFF}, // light gray
		{0x55, 0x55, 0x55, 0xFF}, // dark gray
		{0x55, 0x55, 0xFF, 0xFF}, // light blue
		{0x55, 0xFF, 0x55, 0xFF}, // light green
		{0x55, 0xFF, 0xFF, 0xFF}, // light cyan
		{0xFF, 0x55, 0x55, 0xFF}, // light red
		{0xFF, 0x55, 0xFF, 0xFF}, // light magenta
		{0xFF, 0xFF, 0x55, 0xFF}, // yellow
		{0xFF, 0xFF, 0xFF, 0xFF}, // white
	}
}

// FromTriplets parses consecutive 8-bit RGB triplets, one table entry per
// three bytes. A trailing partial triplet is ignored.
func FromTriplets(b []byte) Table {
	t := make(Table, 0, len(b)/3)
	for i := 0; i+2 < len(b); i += 3 {
		t = append(t, color.RGBA{b[i], b[i+1], b[i+2], 0xFF})
	}
	return t
}

// From6Bit parses consecutive 6-bit RGB triplets, scaling each channel from
// 0..63 to 0..255. PICtor palettes use this encoding.
func From6Bit(b []byte) Table {
	t := make(Table, 0, len(b)/3)
	for i := 0; i+2 < len(b); i += 3 {
		t = append(t, color.RGBA{
			uint8(int(b[i]) * 255 / 63),
			uint8(int(b[i+1]) * 255 / 63),
			uint8(int(b[i+2]) * 255 / 63),
			0xFF,
		})
	}
	return t
}

// FromColors converts a standard palette back into a Table, for writing
// decoded palettes out as RIFF PAL documents.
func FromColors(p color.Palette) Table {
	t := make(Table, len(p))
	for i, c := range p {
		r, g, b, _ := c.RGBA()
		t[i] = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0xFF}
	}
	return t
}

// VGATail looks for the 256-entry palette block some PCX files append: a
// 0x0C marker byte followed by 768 palette bytes at the very end of the
// file. The values are already 8-bit.
func VGATail(data []byte) (Table, bool) {
	if len(data) < 769 || data[len(data)-769] != 0x0C {
		return nil, false
	}
	return FromTriplets(data[len(data)-768:]), true
}

// Blank reports whether b contains no set bytes. A 16-color header palette
// slot that is all zero counts as absent.
func Blank(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
