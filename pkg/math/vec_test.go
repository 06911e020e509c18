package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	got := (Vec3{}).Normalize()
	if got != (Vec3{}) {
		t.Errorf("Vec3{}.Normalize() = %v, want zero vector", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 2, -7}
	gotMin := a.Min(b)
	gotMax := a.Max(b)
	if gotMin != (Vec3{1, 2, -7}) {
		t.Errorf("Vec3.Min() = %v, want {1 2 -7}", gotMin)
	}
	if gotMax != (Vec3{3, 5, -2}) {
		t.Errorf("Vec3.Max() = %v, want {3 5 -2}", gotMax)
	}
}

func TestVec4Vec3PerspectiveDivide(t *testing.T) {
	v := Vec4{2, 4, 6, 2}
	got := v.Vec3()
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("Vec4.Vec3() = %v, want %v", got, want)
	}
}

func TestPlaneFromPoints(t *testing.T) {
	// CCW triangle in the XY plane, normal points +Z.
	p := PlaneFromPoints(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{0, 1, 0})
	if p.Normal != (Vec3{0, 0, 1}) {
		t.Errorf("PlaneFromPoints normal = %v, want {0 0 1}", p.Normal)
	}
	if p.D != 0 {
		t.Errorf("PlaneFromPoints D = %v, want 0", p.D)
	}
	d := p.DistanceTo(Vec3{5, -3, 2})
	if d != 2 {
		t.Errorf("Plane.DistanceTo() = %v, want 2", d)
	}
}
