package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"picture.pcx", "pcx", true},
		{"PICTURE.PCX", "pcx", true},
		{"scan.tiff", "tiff", true},
		{"painting.mac.gz", "mac", true},
		{"doc.art", "art", true},
		{"notes.txt", "", false},
		{"archive.gz", "", false},
	}
	for _, tt := range tests {
		got, ok := formatFor(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("formatFor(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadFilePlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.pcx")
	content := []byte{0x0A, 0x05, 0x01}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("got %v, want %v", got, content)
	}
}

func TestLoadFileGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wrapped.pcx.gz")
	content := []byte{0x0A, 0x05, 0x01, 0x08}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("got %v, want %v", got, content)
	}
}
