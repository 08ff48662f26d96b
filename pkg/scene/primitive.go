package scene

import "github.com/infosia/raster/pkg/math3d"

// MorphTarget carries optional per-vertex displacement arrays, sized to
// the owning primitive's vertex count when present.
type MorphTarget struct {
	Position []math3d.Vec3
	Normal   []math3d.Vec3
	Tangent  []math3d.Vec3
}

// Primitive is a single triangle-list draw call: parallel per-vertex
// attribute arrays keyed by a shared index buffer.
type Primitive struct {
	Material *Material

	Position []math3d.Vec3
	Normal   []math3d.Vec3
	Tangent  []math3d.Vec3 // xyz + handedness folded into Vec3 (w applied at load time)
	UV       []math3d.Vec2
	Color    []Color
	Joint    [][4]int
	Weight   [][4]float64

	Indices []int // triangle list, len a multiple of 3

	Targets []MorphTarget

	BoundsMin, BoundsMax math3d.Vec3
	Center               math3d.Vec3
}

// HasNormal reports whether per-vertex normals are present.
func (p *Primitive) HasNormal() bool { return len(p.Normal) > 0 }

// HasTangent reports whether per-vertex tangents are present.
func (p *Primitive) HasTangent() bool { return len(p.Tangent) > 0 }

// HasUV reports whether per-vertex UVs are present.
func (p *Primitive) HasUV() bool { return len(p.UV) > 0 }

// HasColor reports whether per-vertex colors are present.
func (p *Primitive) HasColor() bool { return len(p.Color) > 0 }

// HasSkin reports whether joint/weight attributes are present.
func (p *Primitive) HasSkin() bool { return len(p.Joint) > 0 && len(p.Weight) > 0 }

// TargetCount returns the number of morph targets.
func (p *Primitive) TargetCount() int { return len(p.Targets) }

// NumFaces returns the number of triangles.
func (p *Primitive) NumFaces() int { return len(p.Indices) / 3 }

// Face returns the three vertex indices of triangle i.
func (p *Primitive) Face(i int) [3]int {
	return [3]int{p.Indices[i*3], p.Indices[i*3+1], p.Indices[i*3+2]}
}

// Vert returns the position of vertex index vi.
func (p *Primitive) Vert(vi int) math3d.Vec3 {
	return p.Position[vi]
}

// VertAtTarget returns the position displacement of vertex vi under
// morph target ti, or the zero vector if the target has no position
// channel.
func (p *Primitive) VertAtTarget(ti, vi int) math3d.Vec3 {
	if ti < 0 || ti >= len(p.Targets) || vi >= len(p.Targets[ti].Position) {
		return math3d.Vec3{}
	}
	return p.Targets[ti].Position[vi]
}

// NormalAtTarget returns the normal displacement of vertex vi under
// morph target ti.
func (p *Primitive) NormalAtTarget(ti, vi int) math3d.Vec3 {
	if ti < 0 || ti >= len(p.Targets) || vi >= len(p.Targets[ti].Normal) {
		return math3d.Vec3{}
	}
	return p.Targets[ti].Normal[vi]
}

// TangentAtTarget returns the tangent displacement of vertex vi under
// morph target ti.
func (p *Primitive) TangentAtTarget(ti, vi int) math3d.Vec3 {
	if ti < 0 || ti >= len(p.Targets) || vi >= len(p.Targets[ti].Tangent) {
		return math3d.Vec3{}
	}
	return p.Targets[ti].Tangent[vi]
}

// CalculateBounds computes BoundsMin/BoundsMax/Center from Position.
func (p *Primitive) CalculateBounds() {
	if len(p.Position) == 0 {
		return
	}
	min, max := p.Position[0], p.Position[0]
	for _, v := range p.Position[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	p.BoundsMin, p.BoundsMax = min, max
	p.Center = min.Add(max).Scale(0.5)
}
