// raster renders a skinned, morph-targeted glTF/VRM scene to a PNG
// image using a CPU software rasterizer.
//
// Usage:
//
//	raster -in model.vrm -out out.png
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/infosia/raster/pkg/asset"
	"github.com/infosia/raster/pkg/config"
	"github.com/infosia/raster/pkg/raster"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "raster - CPU glTF/VRM software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: raster -in <model.gltf|model.glb|model.vrm> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *config.Flags) error {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	if err := flags.Apply(cfg); err != nil {
		return err
	}
	if cfg.Input == "" {
		flag.Usage()
		return fmt.Errorf("missing required -in flag")
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	progress := &loggingProgress{log: log}
	progress.Report("load", 0.1)

	s, err := asset.Load(cfg.Input, log)
	if err != nil {
		return fmt.Errorf("load asset: %w", err)
	}
	s.Options = cfg.Render

	img, err := raster.Render(s, progress, log)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.Output, err)
	}
	defer out.Close()

	if err := png.Encode(out, img.ToStdImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	log.Info("render complete", zap.String("output", cfg.Output))
	return nil
}

// newLogger builds a console zap.Logger at the given level, following
// the teacher pack's avatar29A-midgard-ro/internal/logger.Init shape.
func newLogger(level string) (*zap.Logger, error) {
	lvl := parseLevel(level)
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:      "time",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:  zapcore.CapitalColorLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stderr),
		lvl,
	)
	return zap.New(core, zap.AddCaller()), nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// loggingProgress implements raster.Progress by logging each milestone.
type loggingProgress struct {
	log *zap.Logger
}

func (p *loggingProgress) Report(stage string, frac float64) {
	p.log.Info("progress", zap.String("stage", stage), zap.Float64("frac", frac))
}
