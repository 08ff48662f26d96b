package shader

import (
	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

// Varyings holds the per-triangle interpolation attributes written by
// the vertex stage and read back by the fragment stage via barycentric
// interpolation. The rasterizer allocates one Varyings per triangle and
// passes it to both stages, so varyings do not live on the shader
// instance (see pkg/raster's DrawPrimitive).
type Varyings struct {
	Screen     [3]math3d.Vec3 // screen-space xyz per vertex slot
	Normal     [3]math3d.Vec3
	Tangent    [3]math3d.Vec3
	HasTangent bool // true only when the primitive actually carries tangents
	UV         [3]math3d.Vec2
	Color      [3]scene.Color
	Position   [3]math3d.Vec3 // position times the upper 3x3 of model*skin (no translation) per vertex slot (vPosition)
	Material   *scene.Material
}

// Shader is the closed two-variant shading interface: DefaultShader and
// OutlineShader are its only implementers.
type Shader interface {
	// Vertex computes the screen-space position for triangle vertex
	// slot (0,1,2) of face faceIdx in prim, storing interpolation
	// attributes into v at the same slot.
	Vertex(ctx *Context, node *scene.Node, skin *scene.Skin, prim *scene.Primitive, faceIdx, slot int, v *Varyings) math3d.Vec3

	// Fragment shades the pixel at barycentric coordinates bar within
	// v. Returns the color and true if the fragment should be
	// discarded.
	Fragment(ctx *Context, v *Varyings, bar math3d.Vec3, pixel [2]int, backfacing bool) (scene.Color, bool)
}

// skinning returns the per-vertex skin matrix: the weighted sum of the
// four joint matrices the vertex references, or the node's bind matrix
// when the primitive has no skin attributes.
func skinning(node *scene.Node, skin *scene.Skin, prim *scene.Primitive, vi int) math3d.Mat4 {
	if skin == nil || !prim.HasSkin() || vi >= len(prim.Joint) {
		return node.BindMatrix
	}
	joints := prim.Joint[vi]
	weights := prim.Weight[vi]

	var m math3d.Mat4
	any := false
	for i := 0; i < 4; i++ {
		w := weights[i]
		if w == 0 {
			continue
		}
		ji := joints[i]
		if ji < 0 || ji >= len(skin.JointMatrices) {
			continue
		}
		scaled := scaleMat4(skin.JointMatrices[ji], w)
		if !any {
			m = scaled
			any = true
		} else {
			m = addMat4(m, scaled)
		}
	}
	if !any {
		return node.BindMatrix
	}
	return m
}

func scaleMat4(m math3d.Mat4, s float64) math3d.Mat4 {
	var out math3d.Mat4
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}

func addMat4(a, b math3d.Mat4) math3d.Mat4 {
	var out math3d.Mat4
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// morphVert accumulates morph-target position displacement into attr,
// for i in [0, min(numTargets, len(weights))). Silently does nothing
// when the morph list is absent or shorter than the target list.
func morphVert(prim *scene.Primitive, vi int, weights []float64, attr math3d.Vec3) math3d.Vec3 {
	n := prim.TargetCount()
	if len(weights) < n {
		n = len(weights)
	}
	for i := 0; i < n; i++ {
		w := weights[i]
		if w == 0 {
			continue
		}
		attr = attr.Add(prim.VertAtTarget(i, vi).Scale(w))
	}
	return attr
}

func morphNormal(prim *scene.Primitive, vi int, weights []float64, attr math3d.Vec3) math3d.Vec3 {
	n := prim.TargetCount()
	if len(weights) < n {
		n = len(weights)
	}
	for i := 0; i < n; i++ {
		w := weights[i]
		if w == 0 {
			continue
		}
		attr = attr.Add(prim.NormalAtTarget(i, vi).Scale(w))
	}
	return attr
}

func morphTangent(prim *scene.Primitive, vi int, weights []float64, attr math3d.Vec3) math3d.Vec3 {
	n := prim.TargetCount()
	if len(weights) < n {
		n = len(weights)
	}
	for i := 0; i < n; i++ {
		w := weights[i]
		if w == 0 {
			continue
		}
		attr = attr.Add(prim.TangentAtTarget(i, vi).Scale(w))
	}
	return attr
}

// mat3FromMat4 extracts the upper-left 3x3 (rotation/scale) part.
func mat3FromMat4(m math3d.Mat4) [9]float64 {
	return [9]float64{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

func mulMat3Vec3(m [9]float64, v math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		m[0]*v.X+m[3]*v.Y+m[6]*v.Z,
		m[1]*v.X+m[4]*v.Y+m[7]*v.Z,
		m[2]*v.X+m[5]*v.Y+m[8]*v.Z,
	)
}
