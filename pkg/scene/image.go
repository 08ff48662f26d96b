package scene

import (
	stdimage "image"
	stdcolor "image/color"
)

// Format is the channel layout of an Image.
type Format int

// Channel-count-valued formats, matching original_source's Image::Format.
const (
	Grayscale      Format = 1
	GrayscaleAlpha Format = 2
	RGB            Format = 3
	RGBAFormat     Format = 4
)

// Channels returns the number of channels the format stores.
func (f Format) Channels() int {
	return int(f)
}

// Image is a width*height*channels byte buffer, addressed by (x,y).
// Out-of-bounds Get returns the zero Color; out-of-bounds Set is a no-op.
type Image struct {
	Width, Height int
	Format        Format
	Pixels        []byte // row-major, len == Width*Height*Format.Channels()
}

// NewImage allocates a zeroed image of the given dimensions and format.
func NewImage(w, h int, format Format) *Image {
	img := &Image{}
	img.Reset(w, h, format)
	return img
}

// Reset resizes the image, discarding prior contents.
func (img *Image) Reset(w, h int, format Format) {
	img.Width = w
	img.Height = h
	img.Format = format
	img.Pixels = make([]byte, w*h*format.Channels())
}

func (img *Image) inBounds(x, y int) bool {
	return x >= 0 && x < img.Width && y >= 0 && y < img.Height
}

// Get returns the color at (x,y), or the zero color if out of bounds.
// Missing channels read back with documented defaults: alpha 1, and
// green/blue duplicated from red for single/two-channel formats.
func (img *Image) Get(x, y int) Color {
	if !img.inBounds(x, y) {
		return Color{}
	}
	ch := img.Format.Channels()
	off := (y*img.Width + x) * ch
	switch img.Format {
	case Grayscale:
		v := float64(img.Pixels[off]) / 255
		return Color{v, v, v, 1}
	case GrayscaleAlpha:
		v := float64(img.Pixels[off]) / 255
		a := float64(img.Pixels[off+1]) / 255
		return Color{v, v, v, a}
	case RGB:
		return Color{
			float64(img.Pixels[off]) / 255,
			float64(img.Pixels[off+1]) / 255,
			float64(img.Pixels[off+2]) / 255,
			1,
		}
	default: // RGBAFormat
		return Color{
			float64(img.Pixels[off]) / 255,
			float64(img.Pixels[off+1]) / 255,
			float64(img.Pixels[off+2]) / 255,
			float64(img.Pixels[off+3]) / 255,
		}
	}
}

// Set writes the color at (x,y); a no-op out of bounds.
func (img *Image) Set(x, y int, c Color) {
	if !img.inBounds(x, y) {
		return
	}
	ch := img.Format.Channels()
	off := (y*img.Width + x) * ch
	b := func(v float64) byte { return byte(clamp01(v) * 255) }
	switch img.Format {
	case Grayscale:
		img.Pixels[off] = b(c.R)
	case GrayscaleAlpha:
		img.Pixels[off] = b(c.R)
		img.Pixels[off+1] = b(c.A)
	case RGB:
		img.Pixels[off] = b(c.R)
		img.Pixels[off+1] = b(c.G)
		img.Pixels[off+2] = b(c.B)
	default:
		img.Pixels[off] = b(c.R)
		img.Pixels[off+1] = b(c.G)
		img.Pixels[off+2] = b(c.B)
		img.Pixels[off+3] = b(c.A)
	}
}

// Buffer returns the raw pixel buffer.
func (img *Image) Buffer() []byte {
	return img.Pixels
}

// Fill writes color into every pixel whose alpha is currently zero,
// preserving already-rasterized pixels. Formats without an alpha
// channel are treated as always-opaque and are left untouched.
func (img *Image) Fill(c Color) {
	if img.Format == Grayscale || img.Format == RGB {
		return
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if img.Get(x, y).A == 0 {
				img.Set(x, y, c)
			}
		}
	}
}

// ToStdImage converts the image to a standard library image.Image for
// PNG encoding, following the RGBA conversion path the teacher's
// Framebuffer.ToImage/SavePNG uses.
func (img *Image) ToStdImage() stdimage.Image {
	out := stdimage.NewRGBA(stdimage.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Get(x, y)
			out.SetRGBA(x, y, stdcolor.RGBA{
				R: byte(clamp01(c.R) * 255),
				G: byte(clamp01(c.G) * 255),
				B: byte(clamp01(c.B) * 255),
				A: byte(clamp01(c.A) * 255),
			})
		}
	}
	return out
}
