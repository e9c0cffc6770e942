package math

import "testing"

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	if got := V3(2, 3, 6).Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a, b := V3(1, 5, -2), V3(3, -1, 0)
	if got := a.Min(b); got != V3(1, -1, -2) {
		t.Errorf("Vec3.Min() = %v", got)
	}
	if got := a.Max(b); got != V3(3, 5, 0) {
		t.Errorf("Vec3.Max() = %v", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	l := V3(3, 4, 12).Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector Normalize() = %v, want zero", got)
	}
}
