package config

import (
	"flag"
	"fmt"

	"github.com/infosia/raster/pkg/scene"
)

// Flags holds the parsed CLI flag values cmd/raster registers; applying
// them to a Config is a separate step so a caller can parse flags before
// the config file path (needed for -config itself) is known.
type Flags struct {
	In         string
	Out        string
	ConfigPath string
	Width      int
	Height     int
	SSAA       int
	FovDegrees float64
	Background string
	Vignette   bool
	LogLevel   string
}

// RegisterFlags defines the renderer's CLI flags on fs, grounded on the
// teacher's actual cmd/trophy/main.go stdlib-flag practice. Zero-valued
// numeric flags mean "leave the config/default value alone".
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.In, "in", "", "input glTF/GLB/VRM file (required)")
	fs.StringVar(&f.Out, "out", "", "output PNG path")
	fs.StringVar(&f.ConfigPath, "config", "", "optional YAML config file")
	fs.IntVar(&f.Width, "width", 0, "output width in pixels")
	fs.IntVar(&f.Height, "height", 0, "output height in pixels")
	fs.IntVar(&f.SSAA, "ssaa", 0, "supersampling box-filter kernel size (1-4)")
	fs.Float64Var(&f.FovDegrees, "fov", 0, "camera vertical field of view in degrees")
	fs.StringVar(&f.Background, "background", "", "background color as #RRGGBB or #RRGGBBAA")
	fs.BoolVar(&f.Vignette, "vignette", false, "fill unpainted background with a vignette instead of flat color")
	fs.StringVar(&f.LogLevel, "log-level", "", "zap log level (debug, info, warn, error)")
	return f
}

// Apply overlays non-zero flag values onto cfg, the highest-priority
// layer in the defaults < file < flags precedence chain.
func (f *Flags) Apply(cfg *Config) error {
	if f.In != "" {
		cfg.Input = f.In
	}
	if f.Out != "" {
		cfg.Output = f.Out
	}
	if f.Width > 0 {
		cfg.Render.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Render.Height = f.Height
	}
	if f.SSAA > 0 {
		cfg.Render.SSAA = true
		cfg.Render.SSAAKernelSize = f.SSAA
	}
	if f.FovDegrees > 0 {
		cfg.Render.Camera.FovDegrees = f.FovDegrees
	}
	if f.Background != "" {
		c, err := parseHexColor(f.Background)
		if err != nil {
			return fmt.Errorf("config: -background: %w", err)
		}
		cfg.Render.Background = c
	}
	if f.Vignette {
		cfg.Render.Vignette = true
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	return nil
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA" into a scene.Color.
func parseHexColor(s string) (scene.Color, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 && len(s) != 8 {
		return scene.Color{}, fmt.Errorf("expected #RRGGBB or #RRGGBBAA, got %q", s)
	}
	var r, g, b, a uint8 = 0, 0, 0, 255
	if _, err := fmt.Sscanf(s[0:2], "%02x", &r); err != nil {
		return scene.Color{}, err
	}
	if _, err := fmt.Sscanf(s[2:4], "%02x", &g); err != nil {
		return scene.Color{}, err
	}
	if _, err := fmt.Sscanf(s[4:6], "%02x", &b); err != nil {
		return scene.Color{}, err
	}
	if len(s) == 8 {
		if _, err := fmt.Sscanf(s[6:8], "%02x", &a); err != nil {
			return scene.Color{}, err
		}
	}
	return scene.RGBA(r, g, b, a), nil
}
