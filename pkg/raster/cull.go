package raster

import "github.com/infosia/raster/pkg/math3d"

// Plane is Ax + By + Cz + D = 0, with (A,B,C) the unit normal.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

func (p *Plane) normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// distanceToPoint returns the signed distance from the plane to point;
// positive is on the same side as the normal.
func (p Plane) distanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the six clip planes of a view-projection matrix, normals
// pointing inward, in the order left/right/bottom/top/near/far.
type Frustum struct {
	Planes [6]Plane
}

const (
	frustumLeft = iota
	frustumRight
	frustumBottom
	frustumTop
	frustumNear
	frustumFar
)

// ExtractFrustum pulls the six frustum planes out of a combined
// view-projection matrix via the Gribb/Hartmann method.
func ExtractFrustum(m math3d.Mat4) Frustum {
	var f Frustum
	f.Planes[frustumLeft] = Plane{math3d.V3(m[3]+m[0], m[7]+m[4], m[11]+m[8]), m[15] + m[12]}
	f.Planes[frustumRight] = Plane{math3d.V3(m[3]-m[0], m[7]-m[4], m[11]-m[8]), m[15] - m[12]}
	f.Planes[frustumBottom] = Plane{math3d.V3(m[3]+m[1], m[7]+m[5], m[11]+m[9]), m[15] + m[13]}
	f.Planes[frustumTop] = Plane{math3d.V3(m[3]-m[1], m[7]-m[5], m[11]-m[9]), m[15] - m[13]}
	f.Planes[frustumNear] = Plane{math3d.V3(m[3]+m[2], m[7]+m[6], m[11]+m[10]), m[15] + m[14]}
	f.Planes[frustumFar] = Plane{math3d.V3(m[3]-m[2], m[7]-m[6], m[11]-m[10]), m[15] - m[14]}
	for i := range f.Planes {
		f.Planes[i].normalize()
	}
	return f
}

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max math3d.Vec3
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// IntersectsAABB reports whether any part of box lies inside every
// frustum plane, using the positive-vertex rejection test: a box is
// fully outside as soon as one plane fails to contain its furthest
// corner in the plane's own normal direction.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for _, plane := range f.Planes {
		pVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.distanceToPoint(pVertex) < 0 {
			return false
		}
	}
	return true
}
