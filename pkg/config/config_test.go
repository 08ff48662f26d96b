package config

import (
	"flag"
	"testing"

	"github.com/infosia/raster/pkg/scene"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    scene.Color
		wantErr bool
	}{
		{"rgb", "#ff0000", scene.RGBA(255, 0, 0, 255), false},
		{"rgba", "#00ff0080", scene.RGBA(0, 255, 0, 0x80), false},
		{"without hash", "0000ff", scene.RGBA(0, 0, 255, 255), false},
		{"too short", "#fff", scene.Color{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := parseHexColor(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("parseHexColor(%q) expected an error, got nil", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHexColor(%q) unexpected error: %v", c.in, err)
			}
			if got != c.want {
				t.Errorf("parseHexColor(%q) = %+v, want %+v", c.in, got, c.want)
			}
		})
	}
}

func TestFlagsApplyOverlaysOnlySetValues(t *testing.T) {
	cfg := Default()
	cfg.Render.Width = 512
	cfg.Render.Height = 512

	f := &Flags{Width: 1024}
	if err := f.Apply(cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if cfg.Render.Width != 1024 {
		t.Errorf("Width = %d, want 1024", cfg.Render.Width)
	}
	if cfg.Render.Height != 512 {
		t.Errorf("Height should be untouched by a zero-valued flag, got %d", cfg.Render.Height)
	}
}

func TestFlagsApplyRejectsInvalidBackground(t *testing.T) {
	cfg := Default()
	f := &Flags{Background: "not-a-color"}
	if err := f.Apply(cfg); err == nil {
		t.Fatal("expected an error for an invalid -background value")
	}
}

func TestRegisterFlagsDefinesExpectedFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)

	for _, name := range []string{"in", "out", "config", "width", "height", "ssaa", "fov", "background", "vignette", "log-level"} {
		if fs.Lookup(name) == nil {
			t.Errorf("expected -%s to be registered", name)
		}
	}
}
