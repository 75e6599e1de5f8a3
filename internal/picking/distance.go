// Package picking ranks stars and constellation figures by angular
// closeness to a pointer-derived sky position.
package picking

import (
	"errors"
	"math"

	"github.com/litescript/ls-starfield/internal/astro"
)

// ErrDegenerateSegment is returned when both segment endpoints coincide.
var ErrDegenerateSegment = errors.New("picking: zero-length segment")

// Point is a sky position in equatorial coordinates.
type Point struct {
	RA  astro.Radian
	Dec astro.Radian
}

// AngularDistanceSquared returns the squared arccosine of the spherical dot
// product between two sky positions.
//
// The value is a monotonic transform of true angular separation, not the
// separation itself: it is valid for ranking nearest candidates and for
// nothing else. Callers must never compare it against a physical threshold.
func AngularDistanceSquared(p0, p1 Point) float64 {
	s := math.Sin(float64(p0.Dec))*math.Sin(float64(p1.Dec)) +
		math.Cos(float64(p0.Dec))*math.Cos(float64(p1.Dec))*
			math.Cos(math.Abs(float64(p0.RA)-float64(p1.RA)))

	// Guard the arccosine against floating-point drift past ±1.
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}

	d := math.Acos(s)
	return d * d
}

// DistanceToSegment returns a ranking measure from a query point to a great
// circle segment between two endpoint positions.
//
// This is a flat-plane approximation in RA/Dec space: declination deltas
// are wrapped into (-2π, 2π) before projection to avoid gross errors near
// the poles, but right-ascension deltas are not wrap-corrected, so segments
// crossing RA 0h rank wrongly. Acceptable only because constellation
// segments are short and the shipped figures avoid that seam.
func DistanceToSegment(p, e0, e1 Point) (float64, error) {
	segRA := float64(e1.RA - e0.RA)
	segDec := wrapDec(float64(e1.Dec - e0.Dec))

	lenSq := segRA*segRA + segDec*segDec
	if lenSq == 0 {
		return 0, ErrDegenerateSegment
	}

	dRA := float64(p.RA - e0.RA)
	dDec := wrapDec(float64(p.Dec - e0.Dec))

	// Projection parameter along the infinite line through the endpoints.
	k := (dRA*segRA + dDec*segDec) / lenSq
	if k <= 0 {
		return AngularDistanceSquared(p, e0), nil
	}
	if k >= 1 {
		return AngularDistanceSquared(p, e1), nil
	}

	cross := dRA*segDec - dDec*segRA
	return cross * cross / lenSq, nil
}

// wrapDec folds a declination delta into (-2π, 2π).
func wrapDec(d float64) float64 {
	return math.Mod(d, 2*math.Pi)
}
