package astro

import "math"

// Vec3 represents a 3D vector in the equatorial frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// ToCartesian projects celestial RA/Dec onto a sphere of the given radius.
//
// Axis convention, assumed by every downstream consumer (star positions,
// labels, hit-test projections):
//   - +X points to RA=0h, Dec=0
//   - +Z points to the celestial north pole
func ToCartesian(ra, dec Radian, radius float64) Vec3 {
	cosDec := math.Cos(float64(dec))
	return Vec3{
		X: radius * math.Cos(float64(ra)) * cosDec,
		Y: radius * math.Sin(float64(ra)) * cosDec,
		Z: radius * math.Sin(float64(dec)),
	}
}
