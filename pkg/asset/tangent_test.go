package asset

import (
	"math"
	"testing"

	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

func TestSynthesizeTangentsProducesUnitTangentsForAPlane(t *testing.T) {
	prim := &scene.Primitive{
		Position: []math3d.Vec3{
			math3d.V3(0, 0, 0),
			math3d.V3(1, 0, 0),
			math3d.V3(1, 0, 1),
			math3d.V3(0, 0, 1),
		},
		UV: []math3d.Vec2{
			math3d.V2(0, 0),
			math3d.V2(1, 0),
			math3d.V2(1, 1),
			math3d.V2(0, 1),
		},
		Indices: []int{0, 1, 2, 0, 2, 3},
	}

	SynthesizeTangents(prim)

	if len(prim.Tangent) != len(prim.Position) {
		t.Fatalf("len(Tangent) = %d, want %d", len(prim.Tangent), len(prim.Position))
	}
	for i, tg := range prim.Tangent {
		l := tg.Len()
		if math.Abs(l-1) > 1e-6 {
			t.Errorf("Tangent[%d] has length %v, want 1", i, l)
		}
	}
}

func TestSynthesizeTangentsSkipsWithoutUV(t *testing.T) {
	prim := &scene.Primitive{
		Position: []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
		Indices:  []int{0, 1, 2},
	}
	SynthesizeTangents(prim)
	if prim.Tangent != nil {
		t.Errorf("expected no tangents synthesized without UVs, got %v", prim.Tangent)
	}
}

func TestSynthesizeTangentsSkipsDegenerateUVFace(t *testing.T) {
	prim := &scene.Primitive{
		Position: []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
		UV:       []math3d.Vec2{math3d.V2(0, 0), math3d.V2(0, 0), math3d.V2(0, 0)},
		Indices:  []int{0, 1, 2},
	}
	SynthesizeTangents(prim)
	for i, tg := range prim.Tangent {
		if tg != (math3d.Vec3{}) {
			t.Errorf("Tangent[%d] = %v, want zero vector for a degenerate UV face", i, tg)
		}
	}
}
