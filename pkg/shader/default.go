package shader

import (
	"math"

	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

// DefaultShader implements lit/textured rendering: Blinn-Phong-ish
// specular with a toon-clamped diffuse floor, normal mapping, emissive
// add, and alpha Opaque/Mask/Blend handling. Grounded on
// original_source/include/shaders/shader.h's DefaultShader.
type DefaultShader struct{}

// Vertex implements Shader.
func (DefaultShader) Vertex(ctx *Context, node *scene.Node, skin *scene.Skin, prim *scene.Primitive, faceIdx, slot int, v *Varyings) math3d.Vec3 {
	face := prim.Face(faceIdx)
	vi := face[slot]

	weights := meshWeights(node)

	pos := morphVert(prim, vi, weights, prim.Vert(vi))

	skinMat4 := ctx.Model.Mul(skinning(node, skin, prim, vi))
	skinMat3 := mat3FromMat4(skinMat4)

	modelView := ctx.View.Mul(skinMat4)
	screen := Project(modelView, ctx.Projection, ctx.Viewport, pos)

	if prim.HasNormal() {
		n := morphNormal(prim, vi, weights, prim.Normal[vi])
		v.Normal[slot] = mulMat3Vec3(skinMat3, n)
	}
	if prim.HasTangent() {
		t := morphTangent(prim, vi, weights, prim.Tangent[vi])
		v.Tangent[slot] = mulMat3Vec3(skinMat3, t)
		v.HasTangent = true
	}
	if prim.HasColor() {
		v.Color[slot] = prim.Color[vi]
	}
	if prim.HasUV() {
		v.UV[slot] = prim.UV[vi]
	}
	v.Position[slot] = mulMat3Vec3(skinMat3, pos)
	v.Material = prim.Material

	v.Screen[slot] = screen
	return screen
}

func meshWeights(node *scene.Node) []float64 {
	if node.Mesh == nil {
		return nil
	}
	return node.Mesh.MorphWeights()
}

func interpVec2(a [3]math3d.Vec2, bar math3d.Vec3) math3d.Vec2 {
	return math3d.V2(
		a[0].X*bar.X+a[1].X*bar.Y+a[2].X*bar.Z,
		a[0].Y*bar.X+a[1].Y*bar.Y+a[2].Y*bar.Z,
	)
}

func interpVec3(a [3]math3d.Vec3, bar math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		a[0].X*bar.X+a[1].X*bar.Y+a[2].X*bar.Z,
		a[0].Y*bar.X+a[1].Y*bar.Y+a[2].Y*bar.Z,
		a[0].Z*bar.X+a[1].Z*bar.Y+a[2].Z*bar.Z,
	)
}

func interpColor(a [3]scene.Color, bar math3d.Vec3) scene.Color {
	return scene.Color{
		R: a[0].R*bar.X + a[1].R*bar.Y + a[2].R*bar.Z,
		G: a[0].G*bar.X + a[1].G*bar.Y + a[2].G*bar.Z,
		B: a[0].B*bar.X + a[1].B*bar.Y + a[2].B*bar.Z,
		A: a[0].A*bar.X + a[1].A*bar.Y + a[2].A*bar.Z,
	}
}

// Fragment implements Shader.
func (DefaultShader) Fragment(ctx *Context, v *Varyings, bar math3d.Vec3, pixel [2]int, backfacing bool) (scene.Color, bool) {
	mat := v.Material
	color := scene.Transparent()

	uv := interpVec2(v.UV, bar)
	inNormal := interpVec3(v.Normal, bar)
	inTangent := interpVec3(v.Tangent, bar)
	inPos := interpVec3(v.Position, bar)
	inColor := interpColor(v.Color, bar)

	if mat != nil {
		if !mat.DoubleSided && backfacing {
			return color, true
		}

		if mat.EmissiveTexture != nil && mat.EmissiveTexture.Image != nil {
			sample := mat.EmissiveTexture.Sample(uv.X, uv.Y)
			sample = sample.WithTransparentAlpha()
			sample = sample.MulVec3(math3d.V3(mat.EmissiveFactor.R, mat.EmissiveFactor.G, mat.EmissiveFactor.B))
			color = color.Add(sample)
		}

		if mat.BaseColorTexture != nil && mat.BaseColorTexture.Image != nil {
			diffuse := mat.BaseColorTexture.Sample(uv.X, uv.Y)
			hasAlpha := mat.BaseColorTexture.HasAlpha()

			if mat.AlphaMode != scene.Opaque && hasAlpha && diffuse.A == 0 {
				return color, true
			}
			if mat.AlphaMode == scene.Mask && hasAlpha && diffuse.A < mat.AlphaCutoff {
				return color, true
			}
			switch mat.AlphaMode {
			case scene.Opaque:
				diffuse = diffuse.WithOpaqueAlpha()
			case scene.Blend:
				blend := diffuse.A
				prev := scene.Transparent()
				if ctx.Framebuffer != nil {
					prev = ctx.Framebuffer.Get(pixel[0], pixel[1])
				}
				diffuse = diffuse.Mul(blend).Add(prev.Mul(1 - blend))
				diffuse = diffuse.WithOpaqueAlpha()
			}
			diffuse = diffuse.MulVec4(math3d.V4(mat.BaseColorFactorSRGB.R, mat.BaseColorFactorSRGB.G, mat.BaseColorFactorSRGB.B, mat.BaseColorFactorSRGB.A))
			color = color.Add(diffuse)
		} else if mat != nil {
			color = color.Add(mat.BaseColorFactorSRGB)
		}

		if !mat.Unlit {
			n := inNormal.Normalize()
			l := ctx.Light.Position.Sub(inPos).Normalize()
			viewDir := inPos.Sub(ctx.CameraTranslation).Normalize()
			h := l.Sub(viewDir).Normalize()

			if mat.NormalTexture != nil && mat.NormalTexture.Image != nil && v.HasTangent {
				t := inTangent.Normalize()
				t = t.Sub(n.Scale(t.Dot(n))).Normalize()
				b := n.Cross(t)
				sample := mat.NormalTexture.Sample(uv.X, uv.Y).ToNormal()
				n = math3d.V3(
					t.X*sample.X+b.X*sample.Y+n.X*sample.Z,
					t.Y*sample.X+b.Y*sample.Y+n.Y*sample.Z,
					t.Z*sample.X+b.Z*sample.Y+n.Z*sample.Z,
				).Normalize()
			}

			maxShade := ctx.MaxShadingFactor
			minShade := ctx.MinShadingFactor
			specular := math.Min(math.Pow(math.Max(h.Dot(n), 0), 16), maxShade)
			shadingFactor := math.Min(1, math.Max(n.Dot(l), minShade))
			specularColor := ctx.Light.Color.Mul(specular).MulVec3(
				math3d.V3(1, 1, 1).Scale(mat.SpecularFactor * (mat.MetallicFactor - mat.RoughnessFactor)),
			)

			if shadingFactor > 0 {
				alpha := color.A
				color = color.Mul(shadingFactor).Add(specularColor)
				color.A = alpha
			}
		}
	}

	if hasVertexColor(v) {
		color = color.MulVec4(math3d.V4(inColor.R, inColor.G, inColor.B, inColor.A))
	}

	return color, false
}

func hasVertexColor(v *Varyings) bool {
	return v.Color[0] != (scene.Color{}) || v.Color[1] != (scene.Color{}) || v.Color[2] != (scene.Color{})
}
