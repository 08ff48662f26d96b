package asset

import (
	"bytes"
	stdimage "image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/infosia/raster/pkg/scene"
)

// DecodeImage decodes an embedded PNG/JPEG byte slice into a
// scene.Image, following the teacher's LoadGLBWithTexture's use of the
// stdlib image package for embedded glTF textures.
func DecodeImage(data []byte) (*scene.Image, error) {
	src, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := scene.NewImage(w, h, scene.RGBAFormat)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Set(x, y, scene.Color{
				R: float64(r) / 65535,
				G: float64(g) / 65535,
				B: float64(b) / 65535,
				A: float64(a) / 65535,
			})
		}
	}
	return out, nil
}
