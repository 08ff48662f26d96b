// Package raster ties the scene, shader and projection packages
// together: per-pass rasterization, render-queue traversal, multi-pass
// compositing and the top-level fork-join render entry point. Grounded
// on pkg/render's Rasterizer, generalized from a fixed-function
// triangle/quad/cube API to the programmable Shader interface and
// flipped from "lesser is closer" to "greater is closer" depth.
package raster

import (
	"math"

	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
	"github.com/infosia/raster/pkg/shader"
)

// Pass owns one shader's framebuffer and z-buffer. Each pass is
// rasterized independently so that N passes can run as N goroutines
// with no shared mutable state beyond the read-only scene.
type Pass struct {
	Shader      shader.Shader
	Framebuffer *scene.Image
	ZBuffer     []float64
	Width       int
	Height      int
}

// NewPass allocates a pass's framebuffer (format RGBAFormat, fully
// transparent) and z-buffer, initialized to the minimum finite float so
// that the "greater is closer" convention admits any real depth.
func NewPass(sh shader.Shader, width, height int) *Pass {
	p := &Pass{
		Shader:      sh,
		Framebuffer: scene.NewImage(width, height, scene.RGBAFormat),
		Width:       width,
		Height:      height,
	}
	p.ZBuffer = make([]float64, width*height)
	for i := range p.ZBuffer {
		p.ZBuffer[i] = -math.MaxFloat64
	}
	return p
}

// backfacing applies the signed-2D-area edge-sum formula to the three
// projected screen vertices.
func backfacing(a, b, c math3d.Vec3) bool {
	area := a.X*b.Y - a.Y*b.X + b.X*c.Y - b.Y*c.X + c.X*a.Y - c.Y*a.X
	return area > 0
}

// barycentric computes the barycentric coordinates of point p with
// respect to triangle (a,b,c) in screen space, returning a vector whose
// components sum to 1. Any negative component means p lies outside the
// triangle.
func barycentric(a, b, c, p math3d.Vec3) math3d.Vec3 {
	v0 := math3d.V2(b.X-a.X, b.Y-a.Y)
	v1 := math3d.V2(c.X-a.X, c.Y-a.Y)
	v2 := math3d.V2(p.X-a.X, p.Y-a.Y)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return math3d.V3(-1, -1, -1)
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return math3d.V3(u, v, w)
}

// DrawPrimitive rasterizes every face of prim (drawn with node's
// transform and, if present, skin) into pass using ctx as the shared
// per-pass shading context.
func DrawPrimitive(pass *Pass, ctx *shader.Context, node *scene.Node, sk *scene.Skin, prim *scene.Primitive) {
	sh := pass.Shader
	w, h := pass.Width, pass.Height

	for face := 0; face < prim.NumFaces(); face++ {
		var v shader.Varyings
		var screen [3]math3d.Vec3
		for slot := 0; slot < 3; slot++ {
			screen[slot] = sh.Vertex(ctx, node, sk, prim, face, slot, &v)
		}

		inBounds := false
		for _, s := range screen {
			if s.X >= 0 && s.X < float64(w) && s.Y >= 0 && s.Y < float64(h) {
				inBounds = true
				break
			}
		}
		if !inBounds {
			continue
		}

		back := backfacing(screen[0], screen[1], screen[2])

		minX := int(math.Floor(math.Min(screen[0].X, math.Min(screen[1].X, screen[2].X))))
		maxX := int(math.Ceil(math.Max(screen[0].X, math.Max(screen[1].X, screen[2].X))))
		minY := int(math.Floor(math.Min(screen[0].Y, math.Min(screen[1].Y, screen[2].Y))))
		maxY := int(math.Ceil(math.Max(screen[0].Y, math.Max(screen[1].Y, screen[2].Y))))

		if minX < 0 {
			minX = 0
		}
		if minY < 0 {
			minY = 0
		}
		if maxX > w-1 {
			maxX = w - 1
		}
		if maxY > h-1 {
			maxY = h - 1
		}

		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				p := math3d.V3(float64(x), float64(y), 1)
				bar := barycentric(screen[0], screen[1], screen[2], p)
				if bar.X < 0 || bar.Y < 0 || bar.Z < 0 {
					continue
				}

				idx := x + y*w
				fragDepth := bar.X*screen[0].Z + bar.Y*screen[1].Z + bar.Z*screen[2].Z
				if fragDepth <= pass.ZBuffer[idx] {
					continue
				}

				color, discard := sh.Fragment(ctx, &v, bar, [2]int{x, y}, back)
				if discard {
					continue
				}

				pass.ZBuffer[idx] = fragDepth
				pass.Framebuffer.Set(x, y, color)
			}
		}
	}
}

// DrawQueues rasterizes every queue bucket into pass in ascending
// queueKey order, back-to-front within each bucket. Primitives whose
// world-space bounds fall entirely outside the view frustum are
// skipped before their faces are ever touched.
func DrawQueues(pass *Pass, ctx *shader.Context, queues []scene.Queue) {
	frustum := ExtractFrustum(ctx.Projection.Mul(ctx.View).Mul(ctx.Model))
	for _, q := range queues {
		for _, op := range q.Ops {
			wmin := op.Node.BindMatrix.MulVec3(op.Primitive.BoundsMin)
			wmax := op.Node.BindMatrix.MulVec3(op.Primitive.BoundsMax)
			box := AABB{Min: wmin.Min(wmax), Max: wmin.Max(wmax)}
			if !frustum.IntersectsAABB(box) {
				continue
			}
			DrawPrimitive(pass, ctx, op.Node, op.Skin, op.Primitive)
		}
	}
}
