package raster

import (
	"math"

	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

// ModelMatrix builds translate(t) * toMat4(r) * scale(s) for the
// scene-level model transform applied on top of the asset's own node
// hierarchy.
func ModelMatrix(opts scene.ModelOptions) math3d.Mat4 {
	return math3d.TRS(opts.Translation, opts.Rotation, opts.Scale)
}

// ViewMatrix builds translate(-camera.t) * toMat4(camera.r) * scale(camera.s),
// the inverse-ish camera transform used to bring world space into view
// space. Grounded on pkg/render/camera.go's computeViewMatrix, replacing
// its Euler-angle composition with a quaternion.
func ViewMatrix(cam scene.CameraOptions) math3d.Mat4 {
	return math3d.Translate(cam.Translation.Scale(-1)).Mul(cam.Rotation.ToMat4()).Mul(math3d.Scale(cam.Scale))
}

// ProjectionMatrix builds the perspective or orthographic projection
// matrix for the given camera options and output aspect ratio.
func ProjectionMatrix(cam scene.CameraOptions, aspect float64) math3d.Mat4 {
	switch cam.Mode {
	case scene.Orthographic:
		halfHeight := 1.0
		halfWidth := halfHeight * aspect
		return math3d.Orthographic(-halfWidth, halfWidth, -halfHeight, halfHeight, cam.ZNear, cam.ZFar)
	default:
		fovy := cam.FovDegrees * math.Pi / 180
		return math3d.Perspective(fovy, aspect, cam.ZNear, cam.ZFar)
	}
}
