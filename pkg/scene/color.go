// Package scene provides the glTF/VRM scene data model consumed by the
// rasterizer: images, colors, textures, materials, meshes, skins, nodes
// and the top-level Scene arena.
package scene

import (
	"math"

	"github.com/infosia/raster/pkg/math3d"
)

// Color holds four channels in the unit interval [0,1]. Values are
// clamped to that range wherever arithmetic could push them outside it.
type Color struct {
	R, G, B, A float64
}

// RGBA constructs a Color from bytes in [0,255].
func RGBA(r, g, b, a uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// Transparent returns the zero color (0,0,0,0).
func Transparent() Color {
	return Color{}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Mul returns the color scaled by s, with s clamped to [0,1] before the
// multiply and every resulting channel clamped to [0,1].
func (c Color) Mul(s float64) Color {
	s = clamp01(s)
	return Color{clamp01(c.R * s), clamp01(c.G * s), clamp01(c.B * s), clamp01(c.A * s)}
}

// MulVec3 multiplies RGB per-channel by v, leaving alpha untouched.
func (c Color) MulVec3(v math3d.Vec3) Color {
	return Color{clamp01(c.R * v.X), clamp01(c.G * v.Y), clamp01(c.B * v.Z), c.A}
}

// MulVec4 multiplies all four channels per-component by v.
func (c Color) MulVec4(v math3d.Vec4) Color {
	return Color{clamp01(c.R * v.X), clamp01(c.G * v.Y), clamp01(c.B * v.Z), clamp01(c.A * v.W)}
}

// Add returns the saturating sum of two colors.
func (c Color) Add(o Color) Color {
	return Color{clamp01(c.R + o.R), clamp01(c.G + o.G), clamp01(c.B + o.B), clamp01(c.A + o.A)}
}

// AddVec4 adds v scaled by 255 (to match byte-channel addition) and
// renormalizes back into [0,1].
func (c Color) AddVec4(v math3d.Vec4) Color {
	return Color{
		clamp01(c.R + v.X*255/255),
		clamp01(c.G + v.Y*255/255),
		clamp01(c.B + v.Z*255/255),
		clamp01(c.A + v.W*255/255),
	}
}

// ToNormal decodes the color as a tangent-space normal-map sample:
// each channel maps from [0,1] to [-1,1].
func (c Color) ToNormal() math3d.Vec3 {
	return math3d.V3(c.R*2-1, c.G*2-1, c.B*2-1)
}

// Opaque reports whether alpha is saturated.
func (c Color) Opaque() bool {
	return c.A >= 1
}

// IsTransparent reports whether alpha is zero.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// WithOpaqueAlpha returns a copy of c with A forced to 1.
func (c Color) WithOpaqueAlpha() Color {
	c.A = 1
	return c
}

// WithTransparentAlpha returns a copy of c with A forced to 0.
func (c Color) WithTransparentAlpha() Color {
	c.A = 0
	return c
}

// Lerp linearly interpolates between c and o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
		c.A + (o.A-c.A)*t,
	}
}

// Over composites src over dst using the standard alpha over-operator:
// out = src*alpha + dst*(1-alpha).
func Over(src, dst Color) Color {
	a := src.A
	return Color{
		src.R*a + dst.R*(1-a),
		src.G*a + dst.G*(1-a),
		src.B*a + dst.B*(1-a),
		a + dst.A*(1-a),
	}
}

// LinearToSRGB converts a single linear channel value to gamma-corrected sRGB.
func LinearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// ColorLinearToSRGB gamma-corrects RGB (alpha passes through unchanged),
// used to populate Material.BaseColorFactorSRGB from BaseColorFactor.
func ColorLinearToSRGB(c Color) Color {
	return Color{LinearToSRGB(c.R), LinearToSRGB(c.G), LinearToSRGB(c.B), c.A}
}
