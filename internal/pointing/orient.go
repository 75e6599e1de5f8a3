package pointing

import (
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/star"
)

// CameraFromRaDec returns the camera orientation looking at an equatorial
// position. Rotating the view axis (0, 0, -1) by the result lands on the
// target's unit cartesian position.
func CameraFromRaDec(ra, dec astro.Radian) astro.Quat {
	return astro.RotationX(90).
		Mul(astro.RotationY(astro.RadToDeg(ra) - 90)).
		Mul(astro.RotationX(astro.RadToDeg(dec)))
}

// HorizonFrame returns the rotation carrying equatorial space into the
// observer's horizontal frame at the given instant. The viewer uses it to
// place the horizon line and cardinal points.
func HorizonFrame(f Frame, now time.Time) astro.Quat {
	gast := astro.GreenwichApparentSiderealTime(now)
	return astro.RotationZ(gast + f.Lon - 90).
		Mul(astro.RotationX(f.Lat + 90))
}

// CameraFromAzAlt returns the camera orientation looking toward a
// horizontal direction at the observer's site. Because sidereal time enters
// the chain, the same azimuth and altitude yield a different equatorial
// orientation at every instant.
func CameraFromAzAlt(f Frame, az, alt astro.Degree, now time.Time) astro.Quat {
	return HorizonFrame(f, now).
		Mul(astro.RotationZ(az - 180)).
		Mul(astro.RotationX(alt - 90))
}

// Orientation resolves a target into a camera orientation against the
// loaded catalog. StarRef targets use the star's proper-motion-corrected
// position at the frame's current instant; an unknown id returns a
// TargetNotFoundError.
func Orientation(t Target, f Frame, cat star.Catalog) (astro.Quat, error) {
	now := f.Now()

	switch t := t.(type) {
	case AzAlt:
		return CameraFromAzAlt(f, t.Az, t.Alt, now), nil
	case RaDec:
		return CameraFromRaDec(t.RA, t.Dec), nil
	case StarRef:
		s, ok := cat[t.HIP]
		if !ok {
			return astro.Identity(), &TargetNotFoundError{HIP: t.HIP}
		}
		ra, dec := s.RaDecAt(now)
		return CameraFromRaDec(ra, dec), nil
	default:
		return astro.Identity(), nil
	}
}
