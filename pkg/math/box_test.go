package math

import (
	"errors"
	"math"
	"testing"
)

func TestNewBoundingBoxRejectsInverted(t *testing.T) {
	if _, err := NewBoundingBox(V3(0, 0, 0), V3(1, 1, 1)); err != nil {
		t.Errorf("valid box: unexpected error %v", err)
	}
	if _, err := NewBoundingBox(V3(0, 0, 0), V3(0, 0, 0)); err != nil {
		t.Errorf("degenerate box: unexpected error %v", err)
	}
	_, err := NewBoundingBox(V3(0, 2, 0), V3(1, 1, 1))
	if !errors.Is(err, ErrInvertedBounds) {
		t.Errorf("inverted Y: got %v, want ErrInvertedBounds", err)
	}
}

func TestBoxContainsAndIntersects(t *testing.T) {
	unit := BoundingBox{Min: V3(0, 0, 0), Max: V3(1, 1, 1)}

	cases := []struct {
		name       string
		box        BoundingBox
		contains   bool
		intersects bool
	}{
		{"inside", BoundingBox{V3(0.1, 0.1, 0.1), V3(0.9, 0.9, 0.9)}, true, true},
		{"same", unit, true, true},
		{"straddling", BoundingBox{V3(-0.5, -0.5, -0.5), V3(0.5, 0.5, 0.5)}, false, true},
		{"outside", BoundingBox{V3(2, 2, 2), V3(4, 4, 4)}, false, false},
		{"touching face", BoundingBox{V3(1, 0, 0), V3(2, 1, 1)}, false, true},
	}
	for _, c := range cases {
		if got := unit.Contains(c.box); got != c.contains {
			t.Errorf("%s: Contains = %v, want %v", c.name, got, c.contains)
		}
		if got := unit.Intersects(c.box); got != c.intersects {
			t.Errorf("%s: Intersects = %v, want %v", c.name, got, c.intersects)
		}
	}
}

func TestBoxTransform(t *testing.T) {
	b := BoundingBox{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}

	moved := b.Transform(Translate(5, 0, 0))
	if !moved.Min.ApproxEqual(V3(4, -1, -1), 1e-6) || !moved.Max.ApproxEqual(V3(6, 1, 1), 1e-6) {
		t.Errorf("translated box: got %v", moved)
	}

	// A 45 degree turn about Y widens X and Z to sqrt(2).
	rotated := b.Transform(QuatFromAxisAngle(V3(0, 1, 0), float32(math.Pi/4)).ToMat4())
	r := float32(math.Sqrt2)
	if !rotated.Max.ApproxEqual(V3(r, 1, r), 1e-5) || !rotated.Min.ApproxEqual(V3(-r, -1, -r), 1e-5) {
		t.Errorf("rotated box: got %v", rotated)
	}
}

func TestBoxFromCenter(t *testing.T) {
	b, err := BoxFromCenter(V3(1, 1, 1), V3(0.5, 1, 2))
	if err != nil {
		t.Fatalf("BoxFromCenter: %v", err)
	}
	if b.Center() != V3(1, 1, 1) || b.Extents() != V3(0.5, 1, 2) {
		t.Errorf("center/extents: got %v / %v", b.Center(), b.Extents())
	}
	if _, err := BoxFromCenter(V3(0, 0, 0), V3(-1, 1, 1)); !errors.Is(err, ErrInvertedBounds) {
		t.Errorf("negative extent: got %v, want ErrInvertedBounds", err)
	}
}

func TestFrustumCulling(t *testing.T) {
	view := LookAt(V3(0, 0, 10), V3(0, 0, 0), V3(0, 1, 0))
	proj := Perspective(float32(math.Pi/3), 1, 0.1, 100)
	f := FrustumFromMatrix(proj.Mul(view))

	visible := BoundingBox{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	behind := BoundingBox{Min: V3(-1, -1, 20), Max: V3(1, 1, 22)}
	farLeft := BoundingBox{Min: V3(-100, -1, -1), Max: V3(-90, 1, 1)}

	if !f.IntersectsBox(visible) {
		t.Error("box at the origin should be visible")
	}
	if f.IntersectsBox(behind) {
		t.Error("box behind the camera should be culled")
	}
	if f.IntersectsBox(farLeft) {
		t.Error("box far to the left should be culled")
	}
}

func TestRayIntersectBox(t *testing.T) {
	box := BoundingBox{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}

	tHit, hit := Ray{Origin: V3(0, 0, 5), Direction: V3(0, 0, -1)}.IntersectBox(box)
	if !hit || abs32(tHit-4) > 1e-6 {
		t.Errorf("front hit: got t=%v hit=%v, want 4 true", tHit, hit)
	}

	tHit, hit = Ray{Origin: V3(0, 0, 0), Direction: V3(1, 0, 0)}.IntersectBox(box)
	if !hit || abs32(tHit-1) > 1e-6 {
		t.Errorf("inside hit: got t=%v hit=%v, want 1 true", tHit, hit)
	}

	if _, hit = (Ray{Origin: V3(0, 5, 5), Direction: V3(0, 0, -1)}).IntersectBox(box); hit {
		t.Error("parallel miss should not hit")
	}
	if _, hit = (Ray{Origin: V3(0, 0, 5), Direction: V3(0, 0, 1)}).IntersectBox(box); hit {
		t.Error("box behind the ray should not hit")
	}
}
