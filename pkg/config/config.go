// Package config loads the renderer's external configuration: input/
// output paths plus the full RenderOptions surface, with defaults < file
// < flags precedence. Grounded on
// avatar29A-midgard-ro/internal/config/{config,load,flags}.go.
package config

import "github.com/infosia/raster/pkg/scene"

// Config is the top-level configuration for a single render invocation.
type Config struct {
	Input  string              `yaml:"input"`
	Output string              `yaml:"output"`
	Log    LoggingConfig       `yaml:"logging"`
	Render scene.RenderOptions `yaml:"render"`
}

// LoggingConfig mirrors the teacher's LoggingConfig shape.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults: RenderOptions'
// documented defaults, info-level logging, and out.png as the output
// path.
func Default() *Config {
	return &Config{
		Output: "out.png",
		Log:    LoggingConfig{Level: "info"},
		Render: scene.DefaultRenderOptions(),
	}
}
