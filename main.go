package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/akamensky/argparse"

	"github.com/soocke/qr-measure-go/app"
	"github.com/soocke/qr-measure-go/assets"
	"github.com/soocke/qr-measure-go/config"
)

func main() {
	parser := argparse.NewParser("qr-measure", "Measure boxes against a QR reference marker by replaying a recorded scene")
	cfgPath := parser.String("c", "config", &argparse.Options{Help: "JSON config file", Default: "qr-measure.json"})
	scenePath := parser.String("s", "scene", &argparse.Options{Help: "Scene JSON file (default: embedded sample)"})
	debug := parser.Flag("d", "debug", &argparse.Options{Help: "Debug logging"})
	allowInversion := parser.Flag("i", "allow-inversion", &argparse.Options{Help: "Let over-dragged boxes invert instead of stopping at zero size"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(2)
	}

	// Base config from file, flags on top
	cfg, err := config.Load(*cfgPath)
	level := slog.LevelInfo
	if *debug || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if *allowInversion {
		cfg.ClampResize = false
	}

	scene, err := loadScene(*scenePath)
	if err != nil {
		logger.Error("scene", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	boxes, err := app.NewApp(cfg, logger, os.Stdout).Run(ctx, scene)
	if err != nil {
		logger.Error("run", "error", err)
		os.Exit(1)
	}
	logger.Debug("done", "boxes", len(boxes))
}

func loadScene(path string) (app.Scene, error) {
	if path != "" {
		return app.LoadScene(path)
	}
	data, err := assets.SampleScene()
	if err != nil {
		return app.Scene{}, err
	}
	return app.ParseScene(data)
}
