package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
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

	// Translation should be in column 4 (indices 12, 13, 14)
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
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(math.Pi / 2)
	got := m.TransformVec3(Vec3{1, 0, 0})

	// A quarter turn about +Z carries +X onto +Y.
	if abs(got.X) > 0.001 || abs(got.Y-1) > 0.001 || abs(got.Z) > 0.001 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", got)
	}
}

func TestRotateZZeroIsIdentity(t *testing.T) {
	if RotateZ(0) != Identity() {
		t.Errorf("RotateZ(0) = %v, want identity", RotateZ(0))
	}
}

func TestRotateZMatchesMathGL(t *testing.T) {
	for _, angle := range []float64{-3, -0.5, 0, 0.25, 1, 2.5, 6.2} {
		got := RotateZ(angle)
		want := Mat4(mgl32.HomogRotate3DZ(float32(angle)))
		if !got.ApproxEqual(want, 1e-6) {
			t.Errorf("RotateZ(%v) = %v, want %v", angle, got, want)
		}
	}
}

func TestRotateAxisMatchesMathGL(t *testing.T) {
	axes := []Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
		{0.3, -0.4, 0.8},
	}
	for _, axis := range axes {
		n := axis.Normalize()
		for _, angle := range []float64{-1.2, 0.7, 3} {
			got := RotateAxis(axis, angle)
			want := Mat4(mgl32.HomogRotate3D(float32(angle), mgl32.Vec3{n.X, n.Y, n.Z}))
			if !got.ApproxEqual(want, 1e-5) {
				t.Errorf("RotateAxis(%v, %v) = %v, want %v", axis, angle, got, want)
			}
		}
	}
}

func TestRotateAxisZeroAxis(t *testing.T) {
	if RotateAxis(Vec3{}, 1) != Identity() {
		t.Error("RotateAxis with zero axis should be identity")
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

func TestLookAtMatchesMathGL(t *testing.T) {
	eye := Vec3{0, -300, 120}
	up := UnitZ

	got := LookAt(eye, Vec3{}, up)
	want := Mat4(mgl32.LookAtV(mgl32.Vec3{eye.X, eye.Y, eye.Z}, mgl32.Vec3{}, mgl32.Vec3{up.X, up.Y, up.Z}))
	if !got.ApproxEqual(want, 1e-3) {
		t.Errorf("LookAt = %v, want %v", got, want)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
