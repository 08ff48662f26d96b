package asset

import (
	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

// SynthesizeTangents fills prim.Tangent when normal mapping needs
// tangents the source asset never provided. Same accumulate-then
// -normalize shape as the teacher's Mesh.CalculateSmoothNormals, applied
// to the per-face UV-space tangent vector (Lengyel's method) instead of
// the geometric normal.
func SynthesizeTangents(prim *scene.Primitive) {
	if len(prim.Position) == 0 || len(prim.UV) != len(prim.Position) {
		return
	}
	tan := make([]math3d.Vec3, len(prim.Position))

	for face := 0; face < prim.NumFaces(); face++ {
		f := prim.Face(face)
		p0, p1, p2 := prim.Position[f[0]], prim.Position[f[1]], prim.Position[f[2]]
		uv0, uv1, uv2 := prim.UV[f[0]], prim.UV[f[1]], prim.UV[f[2]]

		edge1 := p1.Sub(p0)
		edge2 := p2.Sub(p0)
		duv1 := uv1.Sub(uv0)
		duv2 := uv2.Sub(uv0)

		det := duv1.X*duv2.Y - duv2.X*duv1.Y
		if det == 0 {
			continue
		}
		r := 1 / det
		t := math3d.V3(
			(edge1.X*duv2.Y-edge2.X*duv1.Y)*r,
			(edge1.Y*duv2.Y-edge2.Y*duv1.Y)*r,
			(edge1.Z*duv2.Y-edge2.Z*duv1.Y)*r,
		)

		tan[f[0]] = tan[f[0]].Add(t)
		tan[f[1]] = tan[f[1]].Add(t)
		tan[f[2]] = tan[f[2]].Add(t)
	}

	for i := range tan {
		if tan[i].Len() > 0 {
			tan[i] = tan[i].Normalize()
		}
	}
	prim.Tangent = tan
}
