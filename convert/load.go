package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// loadFile reads a file fully into memory, transparently expanding
// gzip-wrapped content so archived vintage images decode directly.
func loadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}

	if len(data) < 2 || data[0] != 0x1F || data[1] != 0x8B {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not open gzip stream %q: %w", path, err)
	}
	expanded, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("could not expand gzip stream %q: %w", path, err)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("corrupt gzip stream %q: %w", path, err)
	}
	return expanded, nil
}
