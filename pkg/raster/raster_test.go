package raster

import (
	"math"
	"testing"

	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

func TestBackfacing(t *testing.T) {
	cases := []struct {
		name       string
		a, b, c    math3d.Vec3
		backfacing bool
	}{
		{"counter-clockwise is front", math3d.V3(0, 0, 0), math3d.V3(0, 10, 0), math3d.V3(10, 10, 0), false},
		{"clockwise is back", math3d.V3(0, 0, 0), math3d.V3(10, 10, 0), math3d.V3(0, 10, 0), true},
		{"degenerate is front", math3d.V3(0, 0, 0), math3d.V3(1, 1, 0), math3d.V3(2, 2, 0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := backfacing(c.a, c.b, c.c); got != c.backfacing {
				t.Errorf("backfacing(%v,%v,%v) = %v, want %v", c.a, c.b, c.c, got, c.backfacing)
			}
		})
	}
}

func TestBarycentricSumsToOne(t *testing.T) {
	a := math3d.V3(0, 0, 0)
	b := math3d.V3(10, 0, 0)
	c := math3d.V3(0, 10, 0)
	p := math3d.V3(2, 3, 0)

	bar := barycentric(a, b, c, p)
	sum := bar.X + bar.Y + bar.Z
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("barycentric components sum to %v, want 1", sum)
	}

	reconstructed := a.Scale(bar.X).Add(b.Scale(bar.Y)).Add(c.Scale(bar.Z))
	if math.Abs(reconstructed.X-p.X) > 1e-9 || math.Abs(reconstructed.Y-p.Y) > 1e-9 {
		t.Errorf("reconstructed point %v, want %v", reconstructed, p)
	}
}

func TestBarycentricOutsideTriangleHasNegativeComponent(t *testing.T) {
	a := math3d.V3(0, 0, 0)
	b := math3d.V3(10, 0, 0)
	c := math3d.V3(0, 10, 0)
	p := math3d.V3(20, 20, 0)

	bar := barycentric(a, b, c, p)
	if bar.X >= 0 && bar.Y >= 0 && bar.Z >= 0 {
		t.Errorf("expected a negative barycentric component for an outside point, got %v", bar)
	}
}

func TestBarycentricDegenerateTriangle(t *testing.T) {
	a := math3d.V3(0, 0, 0)
	b := math3d.V3(1, 1, 0)
	c := math3d.V3(2, 2, 0)
	got := barycentric(a, b, c, math3d.V3(0, 0, 0))
	want := math3d.V3(-1, -1, -1)
	if got != want {
		t.Errorf("degenerate barycentric = %v, want %v", got, want)
	}
}

func TestNewPassInitializesZBufferToMinFloat(t *testing.T) {
	p := NewPass(nil, 4, 4)
	for i, d := range p.ZBuffer {
		if d != -math.MaxFloat64 {
			t.Fatalf("ZBuffer[%d] = %v, want -math.MaxFloat64", i, d)
		}
	}
	if p.Framebuffer.Width != 4 || p.Framebuffer.Height != 4 {
		t.Fatalf("unexpected framebuffer dimensions %dx%d", p.Framebuffer.Width, p.Framebuffer.Height)
	}
}

func TestExtractFrustumContainsOriginForIdentity(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 1, 0.1, 100)
	view := math3d.Identity()
	f := ExtractFrustum(proj.Mul(view))

	box := AABB{Min: math3d.V3(-0.1, -0.1, -1), Max: math3d.V3(0.1, 0.1, -1)}
	if !f.IntersectsAABB(box) {
		t.Errorf("expected a box in front of the camera to intersect the frustum")
	}
}

func TestExtractFrustumRejectsBoxBehindCamera(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 1, 0.1, 100)
	view := math3d.Identity()
	f := ExtractFrustum(proj.Mul(view))

	box := AABB{Min: math3d.V3(-0.1, -0.1, 50), Max: math3d.V3(0.1, 0.1, 51)}
	if f.IntersectsAABB(box) {
		t.Errorf("expected a box behind the camera to be culled")
	}
}

func TestCompositeSkipsFullyTransparentPixels(t *testing.T) {
	a := NewPass(nil, 2, 2)
	a.ZBuffer[0] = 1
	a.Framebuffer.Set(0, 0, scene.RGBA(255, 0, 0, 255))

	out := Composite([]*Pass{a}, 2, 2)
	if out.Get(0, 0).R != 1 {
		t.Errorf("expected (0,0) painted red")
	}
	if out.Get(1, 1).A != 0 {
		t.Errorf("expected untouched pixel to remain transparent")
	}
}

func TestApplyBackgroundFillsOnlyTransparentPixels(t *testing.T) {
	img := scene.NewImage(2, 2, scene.RGBAFormat)
	img.Set(0, 0, scene.RGBA(1, 2, 3, 255))

	painted := scene.RGBA(1, 2, 3, 255)
	ApplyBackground(img, scene.RGBA(10, 20, 30, 255), false)

	if img.Get(0, 0) != painted {
		t.Errorf("painted pixel should not be overwritten by background fill, got %+v", img.Get(0, 0))
	}
	if c := img.Get(1, 1); c.A == 0 {
		t.Errorf("transparent pixel should have been filled with background")
	}
}

func TestDownscaleAveragesBoxAndForcesOpaque(t *testing.T) {
	img := scene.NewImage(4, 4, scene.RGBAFormat)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, scene.Color{R: 1, G: 0, B: 0, A: 0.5})
		}
	}

	out := Downscale(img, 2)
	if out.Width != 2 || out.Height != 2 {
		t.Fatalf("downscaled dimensions = %dx%d, want 2x2", out.Width, out.Height)
	}
	c := out.Get(0, 0)
	if c.A != 1 {
		t.Errorf("downscaled alpha = %v, want 1 (opaque)", c.A)
	}
	if math.Abs(c.R-1) > 1e-9 {
		t.Errorf("downscaled red = %v, want 1", c.R)
	}
}
