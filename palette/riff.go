package palette

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

// RIFF PAL documents wrap a LOGPALETTE: a version word, an entry count and
// four bytes (red, green, blue, flags) per entry.

var (
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadPAL reads the first palette from a RIFF PAL stream.
func ReadPAL(r io.Reader) (Table, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	}
	if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", formType[:])
	}

	for {
		id, _, chunk, err := rd.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("RIFF document has no palette chunk")
		}
		if err != nil {
			return nil, fmt.Errorf("could not read RIFF chunk: %w", err)
		}
		if id != dataType {
			continue
		}
		return readLogPalette(chunk)
	}
}

func readLogPalette(r io.Reader) (Table, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	}

	if ver := binary.BigEndian.Uint16(hdr[:2]); ver != 3 {
		return nil, fmt.Errorf("unsupported palette version: %d", ver)
	}

	count := binary.LittleEndian.Uint16(hdr[2:])
	t := make(Table, 0, count)
	var entry [4]byte
	for i := 0; i < int(count); i++ {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return t, fmt.Errorf("could not read color %d/%d: %w", i, count, err)
		}
		t = append(t, color.RGBA{entry[0], entry[1], entry[2], 0xFF})
	}

	return t, nil
}

// WritePAL writes t as a single-palette RIFF PAL document.
func WritePAL(w io.Writer, t Table) error {
	chunk := 4 + len(t)*4
	buf := make([]byte, 0, 20+chunk)

	buf = append(buf, 'R', 'I', 'F', 'F')
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+chunk))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunk))
	buf = append(buf, 0x00, 0x03)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(t)))
	for _, c := range t {
		buf = append(buf, c.R, c.G, c.B, 0x00)
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("could not write palette document: %w", err)
	}
	return nil
}
