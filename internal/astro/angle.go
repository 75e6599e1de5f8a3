// Package astro provides the astrometric math for the star field: angle
// units, time scales, celestial coordinate projection and orientation
// quaternions.
package astro

import "math"

// Degree is an angle in degrees. Degree and Radian are distinct types so
// that mixing units is a compile error; DegToRad/RadToDeg are the only
// bridge between them.
type Degree float64

// Radian is an angle in radians.
type Radian float64

// Deg tags a raw number as degrees.
func Deg(n float64) Degree { return Degree(n) }

// Rad tags a raw number as radians.
func Rad(n float64) Radian { return Radian(n) }

// DegToRad converts degrees to radians. No range normalization is applied.
func DegToRad(d Degree) Radian {
	return Radian(float64(d) * math.Pi / 180)
}

// RadToDeg converts radians to degrees. No range normalization is applied.
func RadToDeg(r Radian) Degree {
	return Degree(float64(r) * 180 / math.Pi)
}

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(d Degree) Degree {
	n := math.Mod(float64(d), 360)
	if n < 0 {
		n += 360
	}
	return Degree(n)
}
