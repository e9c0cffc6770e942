package math

import "fmt"

// BoundingBox is an axis-aligned box given by its minimum and maximum
// corners. Use NewBoundingBox to build one from untrusted input.
type BoundingBox struct {
	Min Vec3
	Max Vec3
}

// NewBoundingBox returns the box spanning min..max. It fails with
// ErrInvertedBounds instead of swapping the corners when max < min on any
// axis.
func NewBoundingBox(min, max Vec3) (BoundingBox, error) {
	b := BoundingBox{Min: min, Max: max}
	if !b.Valid() {
		return BoundingBox{}, fmt.Errorf("%w: min=%v max=%v", ErrInvertedBounds, min, max)
	}
	return b, nil
}

// BoxFromCenter returns the box around center extending halfExtent along
// each axis.
func BoxFromCenter(center, halfExtent Vec3) (BoundingBox, error) {
	return NewBoundingBox(center.Sub(halfExtent), center.Add(halfExtent))
}

// Valid reports whether min <= max on every axis.
func (b BoundingBox) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns max - min.
func (b BoundingBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Extents returns half the size.
func (b BoundingBox) Extents() Vec3 {
	return b.Size().Scale(0.5)
}

// ContainsPoint reports whether p lies inside or on the box.
func (b BoundingBox) ContainsPoint(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Contains reports whether other lies fully inside b. Touching faces count
// as inside.
func (b BoundingBox) Contains(other BoundingBox) bool {
	return b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}

// Intersects reports whether the boxes overlap or touch.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return other.Max.X >= b.Min.X && other.Min.X <= b.Max.X &&
		other.Max.Y >= b.Min.Y && other.Min.Y <= b.Max.Y &&
		other.Max.Z >= b.Min.Z && other.Min.Z <= b.Max.Z
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Corners returns the eight corners of the box.
func (b BoundingBox) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// Transform moves the box into the space of m by transforming all eight
// corners and taking their min/max. The result is conservative: rotated
// boxes grow.
func (b BoundingBox) Transform(m Mat4) BoundingBox {
	corners := b.Corners()
	first := m.TransformVec3(corners[0])
	out := BoundingBox{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := m.TransformVec3(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// String formats the box for logs and debug dumps.
func (b BoundingBox) String() string {
	return fmt.Sprintf("[%g %g %g]-[%g %g %g]", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}
