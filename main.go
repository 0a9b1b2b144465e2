package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"retroimg/convert"
	"retroimg/parallel"
)

var cli struct {
	Jobs    int  `help:"Number of parallel workers, 0 for one per CPU" default:"0"`
	Verbose bool `help:"Enable debug logging" short:"v"`

	Convert convert.CLICmd `cmd:"" help:"Decode vintage images from a folder and save them in a modern format" default:"withargs"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("retroimg"),
		kong.Description("Decoder for AOL ART, MacPaint MAC, PICtor PIC, PC Paintbrush PCX and TIFF images."),
	)

	if cli.Verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	pool := parallel.Start(cli.Jobs)
	if err := kctx.Run(pool.Do, pool.Wait); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
