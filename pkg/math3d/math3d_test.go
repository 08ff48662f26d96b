package math3d

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func vec3Equal(t *testing.T, got, want Vec3, eps float64) {
	t.Helper()
	if !almostEqual(got.X, want.X, eps) || !almostEqual(got.Y, want.Y, eps) || !almostEqual(got.Z, want.Z, eps) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	cases := []struct {
		name string
		v    Vec2
		want Vec2
	}{
		{"unit x", V2(5, 0), V2(1, 0)},
		{"unit y", V2(0, -3), V2(0, -1)},
		{"zero", V2(0, 0), V2(0, 0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.v.Normalize()
			if !almostEqual(got.X, c.want.X, 1e-9) || !almostEqual(got.Y, c.want.Y, 1e-9) {
				t.Errorf("Normalize(%+v) = %+v, want %+v", c.v, got, c.want)
			}
		})
	}
}

func TestVec2Lerp(t *testing.T) {
	a, b := V2(0, 0), V2(10, 20)
	got := a.Lerp(b, 0.5)
	want := V2(5, 10)
	if got != want {
		t.Errorf("Lerp midpoint = %+v, want %+v", got, want)
	}
}

func TestQuatIdentityRotatesNothing(t *testing.T) {
	v := V3(1, 2, 3)
	got := QIdentity().RotateVec3(v)
	vec3Equal(t, got, v, 1e-9)
}

func TestQuatFromAxisAngleRotatesQuarterTurn(t *testing.T) {
	q := QFromAxisAngle(V3(0, 1, 0), math.Pi/2)
	got := q.RotateVec3(V3(1, 0, 0))
	vec3Equal(t, got, V3(0, 0, -1), 1e-9)
}

func TestQuatSlerpEndpoints(t *testing.T) {
	a := QIdentity()
	b := QFromAxisAngle(V3(0, 1, 0), math.Pi/2)

	got0 := a.Slerp(b, 0)
	got1 := a.Slerp(b, 1)

	if !almostEqual(got0.W, a.W, 1e-9) {
		t.Errorf("Slerp(0) = %+v, want %+v", got0, a)
	}
	if !almostEqual(got1.W, b.W, 1e-9) {
		t.Errorf("Slerp(1) = %+v, want %+v", got1, b)
	}
}

func TestMat4TRSComposesTranslationRotationScale(t *testing.T) {
	translation := V3(1, 2, 3)
	rotation := QFromAxisAngle(V3(0, 1, 0), math.Pi/2)
	scale := V3(2, 2, 2)

	m := TRS(translation, rotation, scale)

	got := m.MulVec3(V3(1, 0, 0))
	want := rotation.RotateVec3(V3(1, 0, 0).Scale(2)).Add(translation)
	vec3Equal(t, got, want, 1e-9)
}

func TestMat4TRSIdentityIsNoop(t *testing.T) {
	m := TRS(V3(0, 0, 0), QIdentity(), V3(1, 1, 1))
	got := m.MulVec3(V3(4, -5, 6))
	vec3Equal(t, got, V3(4, -5, 6), 1e-9)
}

func TestMat4MulVec3RoundTripsThroughInverse(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.4)).Mul(Scale(V3(2, 3, 4)))
	v := V3(5, 6, 7)

	transformed := m.MulVec3(v)
	back := m.Inverse().MulVec3(transformed)

	vec3Equal(t, back, v, 1e-6)
}
