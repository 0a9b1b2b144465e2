// Package convert implements the CLI command that scans a folder for
// vintage images, decodes them and writes them back out in a modern
// format.
package convert

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/kong"

	"retroimg/codec"
	"retroimg/palette"
	"retroimg/parallel"
)

type CLICmd struct {
	Scan    string `help:"Source folder to scan for vintage images" default:"."`
	Dest    string `help:"Destination folder for decoded pictures. Relative to scan dir if not absolute." default:"decoded"`
	Format  string `help:"Output format of decoded pictures" enum:"png,gif,bmp,tiff" default:"png"`
	Remap   string `help:"RIFF PAL file to remap decoded colors to" group:"palette"`
	Dither  bool   `help:"Apply dithering when remapping" default:"false" group:"palette"`
	DumpPal bool   `help:"Save each file's embedded palette as a RIFF PAL next to the output" default:"false" group:"palette"`

	remapPal color.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Remap != "" {
		pal, err := loadPAL(c.Remap)
		if err != nil {
			return err
		}
		c.remapPal = pal.Colors()
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var decodedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		format, ok := formatFor(file.Name())
		if !ok {
			slog.Debug("skipping unsupported file", "file", file.Name())
			continue
		}

		worker(func(fileName, format string) func() {
			return func() {
				if err := c.processFile(fileName, format); err != nil {
					errCount.Add(1)
					slog.Error("could not process image", "file", fileName, "error", err)
					return
				}
				decodedCount.Add(1)
			}
		}(file.Name(), format))
	}

	wait(true)

	decoded := decodedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "decoded", decoded, "errors", errors, "total", decoded+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) processFile(fileName, format string) error {
	filePath := filepath.Join(c.Scan, fileName)
	logger := slog.Default().With("file", filePath)

	data, err := loadFile(filePath)
	if err != nil {
		return err
	}

	decoded, err := codec.Decode(format, data)
	if err != nil {
		return err
	}
	logger.Info("decoded", "format", format, "width", decoded.Width, "height", decoded.Height,
		"colors", len(decoded.Palette))

	var img image.Image = decoded.ToImage()
	if c.remapPal != nil {
		img = remap(img, c.remapPal, c.Dither)
	}

	if err := save(img, c.Format, c.Dest, fileName); err != nil {
		return fmt.Errorf("could not save to %q: %w", c.Dest, err)
	}

	if c.DumpPal && len(decoded.Palette) > 0 {
		if err := c.dumpPalette(fileName, decoded.Palette); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLICmd) dumpPalette(srcName string, pal color.Palette) error {
	name := strings.TrimSuffix(srcName, filepath.Ext(srcName)) + ".pal"
	out, err := os.Create(filepath.Join(c.Dest, name))
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", name, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	if err := palette.WritePAL(out, palette.FromColors(pal)); err != nil {
		return fmt.Errorf("could not write palette file %q: %w", name, err)
	}
	return nil
}

func loadPAL(path string) (palette.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", path, "error", closeErr)
		}
	}()

	pal, err := palette.ReadPAL(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette %q: %w", path, err)
	}
	return pal, nil
}

// formatFor maps a file name to its decode format. Gzip-wrapped files keep
// their inner extension, so picture.pcx.gz decodes as PCX.
func formatFor(name string) (string, bool) {
	base := strings.TrimSuffix(name, ".gz")
	switch ext := strings.ToLower(filepath.Ext(base)); ext {
	case ".art", ".mac", ".pic", ".pcx", ".tif", ".tiff":
		return ext[1:], true
	}
	return "", false
}
