package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatFromMat3 converts a pure rotation matrix (column-major 3x3, as
// returned by Mat4.Mat3x3) into a unit quaternion.
func QuatFromMat3(r [9]float32) Quat {
	r00, r10, r20 := r[0], r[1], r[2]
	r01, r11, r21 := r[3], r[4], r[5]
	r02, r12, r22 := r[6], r[7], r[8]

	var q Quat
	trace := r00 + r11 + r22
	switch {
	case trace > 0:
		s := 0.5 / sqrt32(trace+1)
		q = Quat{
			X: (r21 - r12) * s,
			Y: (r02 - r20) * s,
			Z: (r10 - r01) * s,
			W: 0.25 / s,
		}
	case r00 > r11 && r00 > r22:
		s := 2 * sqrt32(1+r00-r11-r22)
		q = Quat{
			X: 0.25 * s,
			Y: (r01 + r10) / s,
			Z: (r02 + r20) / s,
			W: (r21 - r12) / s,
		}
	case r11 > r22:
		s := 2 * sqrt32(1+r11-r00-r22)
		q = Quat{
			X: (r01 + r10) / s,
			Y: 0.25 * s,
			Z: (r12 + r21) / s,
			W: (r02 - r20) / s,
		}
	default:
		s := 2 * sqrt32(1+r22-r00-r11)
		q = Quat{
			X: (r02 + r20) / s,
			Y: (r12 + r21) / s,
			Z: 0.25 * s,
			W: (r10 - r01) / s,
		}
	}
	return q.Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := sqrt32(q.Dot(q))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// SameRotation reports whether q and other describe the same rotation
// within tol. q and -q are the same rotation.
func (q Quat) SameRotation(other Quat, tol float32) bool {
	return abs32(abs32(q.Normalize().Dot(other.Normalize()))-1) <= tol
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
