// Package runlen implements the two run-length schemes shared by the
// vintage raster formats: count-prefixed runs (ART, PCX, PICtor) and
// PackBits (MacPaint, PNTG).
//
// Every decode produces exactly limit output bytes: overflowing runs are
// truncated and a short input is zero-padded. Malformed streams degrade the
// picture but never fail, and no decode reads past the input buffer.
package runlen

// CountPrefixed expands count-prefixed run data into exactly limit bytes.
// A control byte above 128 repeats the following byte control-128 times,
// a control byte in 1..128 is a literal count of bytes copied verbatim,
// and 0 is a two-byte no-op.
func CountPrefixed(data []byte, limit int) []byte {
	out := make([]byte, 0, limit)
	i := 0
	for i < len(data) && len(out) < limit {
		if i+1 >= len(data) {
			// Lone trailing byte, emitted as-is.
			out = append(out, data[i])
			break
		}

		ctl := data[i]
		switch {
		case ctl > 128:
			v := data[i+1]
			for n := int(ctl) - 128; n > 0 && len(out) < limit; n-- {
				out = append(out, v)
			}
			i += 2
		case ctl > 0:
			n := int(ctl)
			end := min(i+1+n, len(data))
			for _, v := range data[i+1 : end] {
				if len(out) == limit {
					break
				}
				out = append(out, v)
			}
			i += n + 1
		default:
			i += 2
		}
	}
	return pad(out, limit)
}

// CountPrefixedRows decodes rows scanlines of bytesPerLine bytes each,
// restarting the output bound at every row so a malformed run cannot bleed
// compressed data across scanline boundaries.
func CountPrefixedRows(data []byte, bytesPerLine, rows int) []byte {
	out := make([]byte, 0, bytesPerLine*rows)
	i := 0
	for r := 0; r < rows; r++ {
		n := 0
		for n < bytesPerLine && i < len(data) {
			ctl := data[i]
			i++
			switch {
			case ctl > 128:
				if i == len(data) {
					break
				}
				v := data[i]
				i++
				for c := int(ctl) - 128; c > 0 && n < bytesPerLine; c-- {
					out = append(out, v)
					n++
				}
			case ctl > 0:
				for c := int(ctl); c > 0 && i < len(data); c-- {
					if n < bytesPerLine {
						out = append(out, data[i])
						n++
					}
					i++
				}
			default:
				i++
			}
		}
		for ; n < bytesPerLine; n++ {
			out = append(out, 0)
		}
	}
	return out
}

// PackBits expands PackBits run data into exactly limit bytes. A control
// byte below 128 starts a literal run of control+1 bytes, one above 128
// repeats the next byte 257-control times, and 0x80 is a no-op.
func PackBits(data []byte, limit int) []byte {
	out := make([]byte, 0, limit)
	i := 0
	for i < len(data) && len(out) < limit {
		ctl := data[i]
		i++
		switch {
		case ctl == 0x80:
			// no-op
		case ctl > 0x80:
			if i == len(data) {
				break
			}
			v := data[i]
			i++
			for n := 257 - int(ctl); n > 0 && len(out) < limit; n-- {
				out = append(out, v)
			}
		default:
			for n := int(ctl) + 1; n > 0 && i < len(data); n-- {
				if len(out) == limit {
					break
				}
				out = append(out, data[i])
				i++
			}
		}
	}
	return pad(out, limit)
}

// PackBitsRows is the scanline-restarted form of PackBits, used where each
// row is compressed independently.
func PackBitsRows(data []byte, bytesPerLine, rows int) []byte {
	out := make([]byte, 0, bytesPerLine*rows)
	i := 0
	for r := 0; r < rows; r++ {
		n := 0
		for n < bytesPerLine && i < len(data) {
			ctl := data[i]
			i++
			switch {
			case ctl == 0x80:
			case ctl > 0x80:
				if i == len(data) {
					break
				}
				v := data[i]
				i++
				for c := 257 - int(ctl); c > 0 && n < bytesPerLine; c-- {
					out = append(out, v)
					n++
				}
			default:
				for c := int(ctl) + 1; c > 0 && i < len(data); c-- {
					if n < bytesPerLine {
						out = append(out, data[i])
						n++
					}
					i++
				}
			}
		}
		for ; n < bytesPerLine; n++ {
			out = append(out, 0)
		}
	}
	return out
}

func pad(out []byte, limit int) []byte {
	for len(out) < limit {
		out = append(out, 0)
	}
	return out[:limit]
}
