package astro

import "math"

// Quat is a rotation quaternion (Hamilton convention, w + xi + yj + zk).
type Quat struct {
	W, X, Y, Z float64
}

// Identity returns the identity rotation.
func Identity() Quat {
	return Quat{W: 1}
}

// RotationX returns a rotation about the X axis.
func RotationX(angle Degree) Quat {
	half := float64(DegToRad(angle)) / 2
	return Quat{W: math.Cos(half), X: math.Sin(half)}
}

// RotationY returns a rotation about the Y axis.
func RotationY(angle Degree) Quat {
	half := float64(DegToRad(angle)) / 2
	return Quat{W: math.Cos(half), Y: math.Sin(half)}
}

// RotationZ returns a rotation about the Z axis.
func RotationZ(angle Degree) Quat {
	half := float64(DegToRad(angle)) / 2
	return Quat{W: math.Cos(half), Z: math.Sin(half)}
}

// Mul returns the Hamilton product q*p. In a chain q1.Mul(q2).Mul(q3)
// applied with Rotate, the rightmost factor acts on the vector first.
func (q Quat) Mul(p Quat) Quat {
	return Quat{
		W: q.W*p.W - q.X*p.X - q.Y*p.Y - q.Z*p.Z,
		X: q.W*p.X + q.X*p.W + q.Y*p.Z - q.Z*p.Y,
		Y: q.W*p.Y - q.X*p.Z + q.Y*p.W + q.Z*p.X,
		Z: q.W*p.Z + q.X*p.Y - q.Y*p.X + q.Z*p.W,
	}
}

// Conjugate returns the conjugate quaternion (inverse rotation for unit q).
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Norm returns the quaternion magnitude.
func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized returns the unit quaternion in the same orientation.
func (q Quat) Normalized() Quat {
	n := q.Norm()
	if n == 0 {
		return Identity()
	}
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Dot returns the 4D dot product of two quaternions.
func (q Quat) Dot(p Quat) float64 {
	return q.W*p.W + q.X*p.X + q.Y*p.Y + q.Z*p.Z
}

// Rotate applies the rotation to a vector: q v q*.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := Quat{X: v.X, Y: v.Y, Z: v.Z}
	r := q.Mul(p).Mul(q.Conjugate())
	return Vec3{X: r.X, Y: r.Y, Z: r.Z}
}

// Slerp spherically interpolates from q to p by t in [0,1], taking the
// shorter arc.
func (q Quat) Slerp(p Quat, t float64) Quat {
	d := q.Dot(p)

	// Take the shorter arc.
	if d < 0 {
		p = Quat{W: -p.W, X: -p.X, Y: -p.Y, Z: -p.Z}
		d = -d
	}

	// Nearly parallel: fall back to normalized lerp.
	if d > 0.9995 {
		return Quat{
			W: q.W + (p.W-q.W)*t,
			X: q.X + (p.X-q.X)*t,
			Y: q.Y + (p.Y-q.Y)*t,
			Z: q.Z + (p.Z-q.Z)*t,
		}.Normalized()
	}

	theta := math.Acos(d)
	sin := math.Sin(theta)
	a := math.Sin((1-t)*theta) / sin
	b := math.Sin(t*theta) / sin
	return Quat{
		W: a*q.W + b*p.W,
		X: a*q.X + b*p.X,
		Y: a*q.Y + b*p.Y,
		Z: a*q.Z + b*p.Z,
	}
}
