package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformVec3(t *testing.T) {
	got := Translate(10, 20, 30).TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}

	got = Scale(2, 2, 2).TransformVec3(Vec3{1, 2, 3})
	want = Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformVec3 with scale: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	result := RotateY(float32(math.Pi / 2)).TransformVec3(Vec3{1, 0, 0})

	// (1,0,0) rotated 90 degrees around Y is (0,0,-1)
	if !near(result, Vec3{0, 0, -1}) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateEulerOrder(t *testing.T) {
	e := Vec3{0.3, 0.7, -1.1}
	want := RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
	got := RotateEuler(e)
	for i := range got {
		if abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("RotateEuler element %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestCompose(t *testing.T) {
	m := Compose(Vec3{1, 2, 3}, Vec3{0, float32(math.Pi / 2), 0}, Splat(2))

	// Scale first, then rotate, then translate.
	got := m.TransformVec3(Vec3{1, 0, 0})
	want := Vec3{1, 2, 1}
	if !near(got, want) {
		t.Errorf("Compose: got %v, want %v", got, want)
	}
}

func TestInverse(t *testing.T) {
	m := Compose(Vec3{4, -2, 1}, Vec3{0.2, 0.4, 0.6}, Vec3{1, 2, 3})
	p := m.Mul(m.Inverse())
	id := Identity()
	for i := range p {
		if abs(p[i]-id[i]) > 1e-4 {
			t.Fatalf("M * M^-1 element %d: got %f, want %f", i, p[i], id[i])
		}
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	// For rotation + uniform scale the normal matrix is the rotation scaled by 1/s.
	m := Compose(Vec3{}, Vec3{0, 0, 0}, Splat(2))
	n := m.NormalMatrix()
	if abs(n[0]-0.5) > 1e-6 || abs(n[4]-0.5) > 1e-6 || abs(n[8]-0.5) > 1e-6 {
		t.Errorf("NormalMatrix diagonal: got (%f, %f, %f), want 0.5", n[0], n[4], n[8])
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestPerspectiveAspect(t *testing.T) {
	wide := Perspective(1, 2, 0.1, 100)
	square := Perspective(1, 1, 0.1, 100)
	if abs(wide[0]*2-square[0]) > 1e-6 {
		t.Errorf("x scale should halve when aspect doubles: %f vs %f", wide[0], square[0])
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})

	// The target ends up straight ahead on -Z.
	got := m.TransformVec3(Vec3{})
	if !near(got, Vec3{0, 0, -5}) {
		t.Errorf("LookAt: target in view space = %v, want (0, 0, -5)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func near(a, b Vec3) bool {
	return abs(a.X-b.X) < 1e-4 && abs(a.Y-b.Y) < 1e-4 && abs(a.Z-b.Z) < 1e-4
}
