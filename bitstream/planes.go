package bitstream

// planeBit reads bit x of a plane, MSB-first. Short planes read as zero.
func planeBit(p []byte, x int) uint8 {
	b := x >> 3
	if b >= len(p) {
		return 0
	}
	return (p[b] >> (7 - x&7)) & 1
}

// CompositeEGA interleaves up to four 1-bit planes of one scanline into
// 4-bit color indices, plane k contributing bit k of each index.
func CompositeEGA(planes [][]byte, width int) []uint8 {
	out := make([]uint8, width)
	for x := range out {
		var idx uint8
		for k, p := range planes {
			if k == 4 {
				break
			}
			idx |= planeBit(p, x) << k
		}
		out[x] = idx
	}
	return out
}

// CompositeRGB maps up to three 1-bit planes of one scanline to
// full-intensity red, green and blue channels, three bytes per pixel.
// Missing planes are treated as all-zero.
func CompositeRGB(planes [][]byte, width int) []uint8 {
	out := make([]uint8, width*3)
	for x := 0; x < width; x++ {
		for ch := 0; ch < 3; ch++ {
			if ch < len(planes) && planeBit(planes[ch], x) == 1 {
				out[x*3+ch] = 255
			}
		}
	}
	return out
}
