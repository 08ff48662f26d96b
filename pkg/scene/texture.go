package scene

import "math"

// WrapMode mirrors glTF sampler wrap constants.
type WrapMode int

// Wrap modes, valued exactly as the glTF sampler wrap enum.
const (
	ClampToEdge    WrapMode = 33071
	MirroredRepeat WrapMode = 33648
	Repeat         WrapMode = 10497
)

// FilterMode selects nearest or bilinear sampling.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Texture references an Image plus its sampler state.
type Texture struct {
	Image      *Image
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture wraps img with repeat wrapping and bilinear filtering.
func NewTexture(img *Image) *Texture {
	return &Texture{Image: img, WrapU: Repeat, WrapV: Repeat, FilterMode: FilterBilinear}
}

// HasAlpha reports whether the underlying image carries an alpha channel.
func (t *Texture) HasAlpha() bool {
	return t.Image != nil && (t.Image.Format == GrayscaleAlpha || t.Image.Format == RGBAFormat)
}

func wrapCoord(v float64, mode WrapMode) float64 {
	switch mode {
	case ClampToEdge:
		return math.Max(0, math.Min(1, v))
	case MirroredRepeat:
		v = math.Abs(v)
		whole := math.Floor(v)
		frac := v - whole
		if int64(whole)%2 == 1 {
			return 1 - frac
		}
		return frac
	default: // Repeat
		f := v - math.Floor(v)
		if f < 0 {
			f += 1
		}
		return f
	}
}

// Sample returns the (possibly bilinearly filtered) color at (u,v),
// honoring the per-axis wrap mode. Image V=0 is the top row; UV V=0 is
// conventionally the bottom, so v is flipped before lookup.
func (t *Texture) Sample(u, v float64) Color {
	if t == nil || t.Image == nil {
		return Color{}
	}
	u = wrapCoord(u, t.WrapU)
	v = wrapCoord(v, t.WrapV)
	v = 1 - v

	if t.FilterMode == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	return t.sampleNearest(u, v)
}

func (t *Texture) sampleNearest(u, v float64) Color {
	w, h := t.Image.Width, t.Image.Height
	x := int(u * float64(w))
	y := int(v * float64(h))
	if x >= w {
		x = w - 1
	}
	if y >= h {
		y = h - 1
	}
	return t.Image.Get(x, y)
}

func (t *Texture) wrapPixel(p, size int, mode WrapMode) int {
	switch mode {
	case ClampToEdge:
		if p < 0 {
			return 0
		}
		if p >= size {
			return size - 1
		}
		return p
	case MirroredRepeat:
		period := 2 * size
		m := p % period
		if m < 0 {
			m += period
		}
		if m >= size {
			return period - 1 - m
		}
		return m
	default: // Repeat
		m := p % size
		if m < 0 {
			m += size
		}
		return m
	}
}

func (t *Texture) sampleBilinear(u, v float64) Color {
	w, h := t.Image.Width, t.Image.Height
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1, y1 := x0+1, y0+1
	tx, ty := fx-float64(x0), fy-float64(y0)

	x0 = t.wrapPixel(x0, w, t.WrapU)
	x1 = t.wrapPixel(x1, w, t.WrapU)
	y0 = t.wrapPixel(y0, h, t.WrapV)
	y1 = t.wrapPixel(y1, h, t.WrapV)

	c00 := t.Image.Get(x0, y0)
	c10 := t.Image.Get(x1, y0)
	c01 := t.Image.Get(x0, y1)
	c11 := t.Image.Get(x1, y1)

	top := c00.Lerp(c10, tx)
	bot := c01.Lerp(c11, tx)
	return top.Lerp(bot, ty)
}
