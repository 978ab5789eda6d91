// Command drawer renders saved drawings to JPEG without an editor window.
//
//	drawer render <in.json> <out>   writes <out>.jpg
//	drawer sample <out.json>        writes the sample drawing
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inamate/vecdraw/internal/config"
	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/export"
)

const usage = `usage:
  drawer render <in.json> <out>
  drawer sample <out.json>`

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if !run(cfg, os.Args[1:]) {
		os.Exit(1)
	}
}

func run(cfg *config.Config, args []string) bool {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return false
	}

	eng := engine.New(cfg.CanvasWidth, cfg.CanvasHeight, nil)
	notify := export.NotifierFunc(func(op string, err error) {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", op, err)
	})
	x := export.NewExporter(eng, notify, cfg.Background(), cfg.JPEGQuality)

	switch {
	case args[0] == "render" && len(args) == 3:
		return x.LoadDrawing(args[1]) && x.ExportImage(args[2])
	case args[0] == "sample" && len(args) == 2:
		if err := eng.LoadRecords(document.SampleDrawing()); err != nil {
			notify("load sample", err)
			return false
		}
		return x.SaveDrawing(args[1])
	default:
		fmt.Fprintln(os.Stderr, usage)
		return false
	}
}
