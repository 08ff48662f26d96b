package shader

import (
	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

// OutlineShader renders the VRM0 inverted-hull silhouette: the vertex
// stage pushes each vertex out along its normal, and the fragment stage
// keeps only the faces this inversion turns backfacing. Grounded on
// original_source/include/shaders/shader.h's OutlineShader, generalized
// from its hardcoded 0.002f push distance and fixed (50,50,50,255) color
// to the VRM0 outline fields on Material.
type OutlineShader struct{}

// outlineWidth resolves the material's outline displacement distance in
// local units, honoring the three VRM0 width-mode interpretations: None
// never displaces (and Fragment discards such materials), World uses
// the raw outlineWidth, and Screen clamps it to a small constant so the
// silhouette doesn't blow up at grazing distances.
func outlineWidth(mat *scene.Material, widthFactor float64) float64 {
	if mat == nil || mat.VRM0 == nil {
		return 0
	}
	w := mat.VRM0.OutlineWidth * widthFactor
	switch mat.VRM0.OutlineWidthMode {
	case scene.OutlineWidthScreen:
		if w > 0.1 {
			w = 0.1
		}
	case scene.OutlineWidthWorld:
		// used as-is
	default:
		return 0
	}
	if w < 0 {
		w = 0
	}
	return w
}

// Vertex implements Shader.
func (OutlineShader) Vertex(ctx *Context, node *scene.Node, skin *scene.Skin, prim *scene.Primitive, faceIdx, slot int, v *Varyings) math3d.Vec3 {
	face := prim.Face(faceIdx)
	vi := face[slot]

	weights := meshWeights(node)

	pos := morphVert(prim, vi, weights, prim.Vert(vi))

	var n math3d.Vec3
	if prim.HasNormal() {
		n = morphNormal(prim, vi, weights, prim.Normal[vi]).Normalize()
	}

	widthFactor := 1.0
	if prim.Material != nil && prim.Material.VRM0 != nil && prim.Material.VRM0.OutlineWidthTexture != nil && prim.HasUV() {
		uv := prim.UV[vi]
		widthFactor = prim.Material.VRM0.OutlineWidthTexture.Sample(uv.X, uv.Y).R
	}
	push := 0.01 * outlineWidth(prim.Material, widthFactor)
	pos = pos.Add(n.Scale(push))

	skinMat4 := ctx.Model.Mul(skinning(node, skin, prim, vi))
	skinMat3 := mat3FromMat4(skinMat4)

	modelView := ctx.View.Mul(skinMat4)
	screen := Project(modelView, ctx.Projection, ctx.Viewport, pos)

	v.Normal[slot] = mulMat3Vec3(skinMat3, n)
	if prim.HasUV() {
		v.UV[slot] = prim.UV[vi]
	}
	v.Position[slot] = mulMat3Vec3(skinMat3, pos)
	v.Material = prim.Material
	v.Screen[slot] = screen
	return screen
}

// Fragment implements Shader. Only backfacing fragments survive: the
// outward push inverts winding on the true silhouette, so after culling
// the forward-facing hull, what remains backfacing from the camera is
// exactly the outline ring.
func (OutlineShader) Fragment(ctx *Context, v *Varyings, bar math3d.Vec3, pixel [2]int, backfacing bool) (scene.Color, bool) {
	if !backfacing {
		return scene.Transparent(), true
	}
	mat := v.Material
	if mat == nil || mat.VRM0 == nil {
		return scene.Transparent(), true
	}

	widthFactor := 1.0
	if mat.VRM0.OutlineWidthTexture != nil {
		uv := interpVec2(v.UV, bar)
		widthFactor = mat.VRM0.OutlineWidthTexture.Sample(uv.X, uv.Y).R
	}
	if outlineWidth(mat, widthFactor) <= 0 {
		return scene.Transparent(), true
	}

	color := mat.VRM0.OutlineColor.Mul(widthFactor * mat.VRM0.OutlineLightingMix)

	return color, false
}
