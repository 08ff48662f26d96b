// Package shader implements the programmable vertex/fragment shader
// interface consumed by the rasterizer: a closed two-variant sum type
// (DefaultShader, OutlineShader) sharing skinning/morph helpers.
package shader

import (
	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

// Context carries the per-pass, per-frame state every shader invocation
// needs: the camera/model matrices, viewport, light and the toon-shading
// factors from RenderOptions. It is read-only once a pass starts.
type Context struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   [4]float64 // x, y, w, h

	CameraTranslation math3d.Vec3
	Light             scene.LightOptions

	MinShadingFactor float64
	MaxShadingFactor float64

	// Framebuffer is the pass's own target, used by the Blend branch of
	// DefaultShader's fragment stage to read back the destination pixel
	// for the pass-local over-operator approximation.
	Framebuffer *scene.Image
}

// Project transforms a local-space point through modelView and
// projection into screen space: (x,y) in pixel units, z as depth.
// Grounded on original_source's project()/getProjectionMatrix() path.
func Project(modelView, projection math3d.Mat4, viewport [4]float64, p math3d.Vec3) math3d.Vec3 {
	clip := projection.Mul(modelView).MulVec4(math3d.V4FromV3(p, 1))
	var ndc math3d.Vec3
	if clip.W != 0 {
		ndc = math3d.V3(clip.X/clip.W, clip.Y/clip.W, clip.Z/clip.W)
	} else {
		ndc = math3d.V3(clip.X, clip.Y, clip.Z)
	}
	x := viewport[0] + (ndc.X+1)*0.5*viewport[2]
	y := viewport[1] + (1-ndc.Y)*0.5*viewport[3]
	return math3d.V3(x, y, ndc.Z)
}
