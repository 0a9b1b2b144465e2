// Package bitstream expands packed sub-byte pixel data (1-bit, 4-bit and
// 8-bit samples, MSB-first) into per-pixel values, and recombines planar
// scanlines into chunky pixels.
package bitstream

// BytesPerLine returns the byte stride of one row of width samples at the
// given bit depth, padded to an align-byte boundary (1 for byte alignment,
// 2 for word alignment).
func BytesPerLine(width, bitsPerSample, align int) int {
	n := (width*bitsPerSample + 7) / 8
	if align > 1 {
		n = (n + align - 1) / align * align
	}
	return n
}

// Unpack1 expands the first n 1-bit samples of data. Set bits map to on,
// clear bits to off. Samples past the end of data read as off.
func Unpack1(data []byte, n int, on, off uint8) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		b := i >> 3
		if b < len(data) && (data[b]>>(7-i&7))&1 == 1 {
			out[i] = on
		} else {
			out[i] = off
		}
	}
	return out
}

// RowBits reads width 1-bit samples starting at byte offset start, which
// may be negative or past the end of data; out-of-range bytes read as zero
// so they resolve to off. Formats with start-offset quirks rely on this.
func RowBits(data []byte, start, width int, on, off uint8) []uint8 {
	out := make([]uint8, width)
	for i := range out {
		b := start + i>>3
		if b >= 0 && b < len(data) && (data[b]>>(7-i&7))&1 == 1 {
			out[i] = on
		} else {
			out[i] = off
		}
	}
	return out
}

// Unpack4 expands the first n 4-bit samples of data, high nibble first.
// Samples past the end of data read as zero.
func Unpack4(data []byte, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		b := i >> 1
		if b >= len(data) {
			break
		}
		if i&1 == 0 {
			out[i] = data[b] >> 4
		} else {
			out[i] = data[b] & 0x0F
		}
	}
	return out
}
