package raster

import (
	"math"

	"github.com/infosia/raster/pkg/scene"
)

// Composite resolves the completed passes into a single output image by
// walking pixels linearly: for each pass, if its depth at the pixel
// exceeds the accumulated depth, that pass's color is adopted (with an
// alpha-over blend against the previous winner when the pass pixel
// isn't fully opaque). Passes are visited in the order given, which
// must match the order shader instances were assigned so that ties
// resolve deterministically.
func Composite(passes []*Pass, width, height int) *scene.Image {
	out := scene.NewImage(width, height, scene.RGBAFormat)
	depth := make([]float64, width*height)
	for i := range depth {
		depth[i] = -math.MaxFloat64
	}

	for _, pass := range passes {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				idx := x + y*width
				d := pass.ZBuffer[idx]
				if d <= depth[idx] {
					continue
				}
				c := pass.Framebuffer.Get(x, y)
				if c.A == 0 {
					continue
				}
				if c.A >= 1 {
					out.Set(x, y, c)
				} else {
					out.Set(x, y, scene.Over(c, out.Get(x, y)))
				}
				depth[idx] = d
			}
		}
	}
	return out
}

// ApplyBackground fills every still-transparent pixel with bg, or, when
// vignette is true, with bg attenuated by (height-distanceFromCenter)/height.
// The two modes are mutually exclusive.
func ApplyBackground(img *scene.Image, bg scene.Color, vignette bool) {
	if !vignette {
		img.Fill(bg)
		return
	}

	w, h := img.Width, img.Height
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Get(x, y).A != 0 {
				continue
			}
			dx, dy := float64(x)-cx, float64(y)-cy
			dist := math.Sqrt(dx*dx + dy*dy)
			atten := (float64(h) - dist) / float64(h)
			if atten < 0 {
				atten = 0
			}
			if atten > 1 {
				atten = 1
			}
			img.Set(x, y, bg.Mul(atten).WithOpaqueAlpha())
		}
	}
}

// Downscale performs a k*k box filter over img, writing RGB means and
// alpha 255 (opaque) into a new image of 1/k the width and height, which
// it returns; img itself is left unchanged (and returned as-is when k is
// 1). k is clamped to [1,4].
func Downscale(img *scene.Image, k int) *scene.Image {
	if k < 1 {
		k = 1
	}
	if k > 4 {
		k = 4
	}
	if k == 1 {
		return img
	}

	outW, outH := img.Width/k, img.Height/k
	out := scene.NewImage(outW, outH, img.Format)

	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			var r, g, b float64
			n := 0
			for dy := 0; dy < k; dy++ {
				for dx := 0; dx < k; dx++ {
					c := img.Get(x*k+dx, y*k+dy)
					r += c.R
					g += c.G
					b += c.B
					n++
				}
			}
			out.Set(x, y, scene.Color{R: r / float64(n), G: g / float64(n), B: b / float64(n), A: 1})
		}
	}
	return out
}
