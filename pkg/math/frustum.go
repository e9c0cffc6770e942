package math

// Plane is a*x + b*y + c*z + d = 0 with the normal (a, b, c) pointing inside.
type Plane struct {
	Normal Vec3
	D      float32
}

// Distance returns the signed distance scaled by the normal length.
func (p Plane) Distance(v Vec3) float32 {
	return p.Normal.Dot(v) + p.D
}

// Frustum is the six clip planes of a view-projection matrix
// (left, right, bottom, top, near, far).
type Frustum [6]Plane

// FrustumFromMatrix extracts the clip planes of a column-major
// view-projection matrix.
func FrustumFromMatrix(vp Mat4) Frustum {
	row := func(i int) Vec4 {
		return Vec4{vp[i], vp[4+i], vp[8+i], vp[12+i]}
	}
	plane := func(a, b Vec4, sign float32) Plane {
		return Plane{
			Normal: Vec3{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2]},
			D:      a[3] + sign*b[3],
		}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	return Frustum{
		plane(r3, r0, 1),
		plane(r3, r0, -1),
		plane(r3, r1, 1),
		plane(r3, r1, -1),
		plane(r3, r2, 1),
		plane(r3, r2, -1),
	}
}

// IntersectsBox reports whether any part of b may be inside the frustum.
// Boxes near frustum corners can be reported visible when they are not.
func (f Frustum) IntersectsBox(b BoundingBox) bool {
	for _, p := range f {
		// Corner furthest along the plane normal.
		v := b.Min
		if p.Normal.X >= 0 {
			v.X = b.Max.X
		}
		if p.Normal.Y >= 0 {
			v.Y = b.Max.Y
		}
		if p.Normal.Z >= 0 {
			v.Z = b.Max.Z
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}
