package shader

import (
	"math"
	"testing"

	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

func TestSkinningFallsBackToBindMatrixWithoutSkin(t *testing.T) {
	node := scene.NewNode("root")
	node.BindMatrix = math3d.Translate(math3d.V3(1, 2, 3))
	prim := &scene.Primitive{Position: []math3d.Vec3{{}}}

	got := skinning(node, nil, prim, 0)
	if got != node.BindMatrix {
		t.Errorf("skinning without skin attributes = %v, want bind matrix %v", got, node.BindMatrix)
	}
}

func TestSkinningBlendsWeightedJointMatrices(t *testing.T) {
	node := scene.NewNode("root")
	j0 := scene.NewNode("joint0")
	j1 := scene.NewNode("joint1")
	skin := scene.NewSkin([]*scene.Node{j0, j1}, []math3d.Mat4{math3d.Identity(), math3d.Identity()})
	skin.JointMatrices[0] = math3d.Translate(math3d.V3(10, 0, 0))
	skin.JointMatrices[1] = math3d.Translate(math3d.V3(0, 20, 0))

	prim := &scene.Primitive{
		Position: []math3d.Vec3{{}},
		Joint:    [][4]int{{0, 1, 0, 0}},
		Weight:   [][4]float64{{0.25, 0.75, 0, 0}},
	}

	m := skinning(node, skin, prim, 0)
	p := m.MulVec3(math3d.V3(0, 0, 0))
	want := math3d.V3(10*0.25, 20*0.75, 0)
	if math.Abs(p.X-want.X) > 1e-9 || math.Abs(p.Y-want.Y) > 1e-9 {
		t.Errorf("skinned point = %v, want %v", p, want)
	}
}

func TestSkinningIgnoresZeroWeightJoints(t *testing.T) {
	node := scene.NewNode("root")
	j0 := scene.NewNode("joint0")
	skin := scene.NewSkin([]*scene.Node{j0}, []math3d.Mat4{math3d.Identity()})
	skin.JointMatrices[0] = math3d.Translate(math3d.V3(100, 100, 100))

	prim := &scene.Primitive{
		Position: []math3d.Vec3{{}},
		Joint:    [][4]int{{0, 0, 0, 0}},
		Weight:   [][4]float64{{0, 0, 0, 0}},
	}

	m := skinning(node, skin, prim, 0)
	if m != node.BindMatrix {
		t.Errorf("all-zero weights should fall back to bind matrix, got %v", m)
	}
}

func TestMorphVertToleratesWeightListShorterThanTargets(t *testing.T) {
	prim := &scene.Primitive{
		Position: []math3d.Vec3{{}},
		Targets: []scene.MorphTarget{
			{Position: []math3d.Vec3{math3d.V3(1, 0, 0)}},
			{Position: []math3d.Vec3{math3d.V3(0, 1, 0)}},
		},
	}

	got := morphVert(prim, 0, []float64{1}, math3d.V3(0, 0, 0))
	want := math3d.V3(1, 0, 0)
	if got != want {
		t.Errorf("morphVert with a short weight list = %v, want %v", got, want)
	}
}

func TestMorphVertBlendsMultipleTargets(t *testing.T) {
	prim := &scene.Primitive{
		Position: []math3d.Vec3{{}},
		Targets: []scene.MorphTarget{
			{Position: []math3d.Vec3{math3d.V3(1, 0, 0)}},
			{Position: []math3d.Vec3{math3d.V3(0, 2, 0)}},
		},
	}

	got := morphVert(prim, 0, []float64{0.5, 0.25}, math3d.V3(0, 0, 0))
	want := math3d.V3(0.5, 0.5, 0)
	if got != want {
		t.Errorf("morphVert blend = %v, want %v", got, want)
	}
}

func TestOutlineFragmentAppliesFlatMultiplyFormula(t *testing.T) {
	mat := &scene.Material{
		VRM0: &scene.VRM0Material{
			OutlineWidthMode:   scene.OutlineWidthWorld,
			OutlineWidth:       1,
			OutlineColor:       scene.Color{R: 1, G: 1, B: 1, A: 1},
			OutlineLightingMix: 0.5,
		},
	}
	v := &Varyings{Material: mat}
	bar := math3d.V3(1, 0, 0)

	got, discard := OutlineShader{}.Fragment(&Context{}, v, bar, [2]int{0, 0}, true)
	if discard {
		t.Fatalf("expected a kept fragment, got discard")
	}
	// widthFactor defaults to 1 (no width texture), so the result is
	// OutlineColor scaled by 1*0.5.
	want := mat.VRM0.OutlineColor.Mul(0.5)
	if got != want {
		t.Errorf("outline fragment = %+v, want %+v", got, want)
	}
}

func TestOutlineFragmentDiscardsFrontFaces(t *testing.T) {
	mat := &scene.Material{
		VRM0: &scene.VRM0Material{
			OutlineWidthMode:   scene.OutlineWidthWorld,
			OutlineWidth:       1,
			OutlineLightingMix: 1,
		},
	}
	v := &Varyings{Material: mat}

	_, discard := OutlineShader{}.Fragment(&Context{}, v, math3d.V3(1, 0, 0), [2]int{0, 0}, false)
	if !discard {
		t.Errorf("expected a front-facing fragment to be discarded")
	}
}

func TestDefaultShaderGatesNormalMapOnHasTangent(t *testing.T) {
	v := &Varyings{}
	if v.HasTangent {
		t.Errorf("zero-value Varyings should not report HasTangent")
	}

	prim := &scene.Primitive{
		Position: []math3d.Vec3{{}, {}, {}},
		Normal:   []math3d.Vec3{{Z: 1}, {Z: 1}, {Z: 1}},
		Tangent:  []math3d.Vec3{{X: 1}, {X: 1}, {X: 1}},
		Indices:  []int{0, 1, 2},
	}
	node := scene.NewNode("root")
	var got Varyings
	DefaultShader{}.Vertex(&Context{Model: math3d.Identity(), View: math3d.Identity(), Projection: math3d.Identity(), Viewport: [4]float64{0, 0, 1, 1}}, node, nil, prim, 0, 0, &got)
	if !got.HasTangent {
		t.Errorf("expected HasTangent to be set for a primitive with tangents")
	}
}

func TestMat3FromMat4ExtractsUpperLeft(t *testing.T) {
	m := math3d.RotateY(math.Pi / 2)
	m3 := mat3FromMat4(m)

	v := mulMat3Vec3(m3, math3d.V3(1, 0, 0))
	dirOnly := m.MulVec3Dir(math3d.V3(1, 0, 0))
	if math.Abs(v.X-dirOnly.X) > 1e-9 || math.Abs(v.Z-dirOnly.Z) > 1e-9 {
		t.Errorf("mat3 rotation = %v, want %v", v, dirOnly)
	}
}
