// Command render draws the sample scene to a PNG file.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	out := flag.String("o", cfg.OutputPath, "output PNG path")
	zoom := flag.Float64("zoom", 0, "scroll offset applied before rendering")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	opts := engine.DefaultOptions()
	opts.Width = cfg.ViewportWidth
	opts.Height = cfg.ViewportHeight
	opts.MaxViewport = cfg.MaxViewport
	opts.GridSpacing = cfg.GridSpacing
	opts.GridStroke = render.Stroke{Color: cfg.GridColor, Width: 1}
	opts.Logger = logger

	eng, err := engine.NewEngine(opts)
	if err != nil {
		slog.Error("create engine", "error", err)
		os.Exit(1)
	}
	if err := eng.LoadSample(); err != nil {
		slog.Error("load sample", "error", err)
		os.Exit(1)
	}
	eng.Scroll(*zoom)

	if err := writePNG(*out, cfg, eng); err != nil {
		slog.Error("render", "error", err)
		os.Exit(1)
	}
	slog.Info("scene rendered", "path", *out)
}

func writePNG(path string, cfg *config.Config, eng *engine.Engine) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return render.EncodePNG(f, int(cfg.ViewportWidth), int(cfg.ViewportHeight), cfg.BackgroundColor, eng.Draw)
}
