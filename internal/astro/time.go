package astro

import (
	"math"
	"time"
)

// j2000 is the Julian Date of the J2000.0 epoch.
const j2000 = 2451545.0

// JulianDate calculates the Julian Date for a given time.
func JulianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// greenwichMeanSiderealTime calculates GMST in degrees (IAU 1982 formula),
// normalized to [0, 360).
func greenwichMeanSiderealTime(t time.Time) Degree {
	jd := JulianDate(t)

	// Julian centuries since J2000.0
	T := (jd - j2000) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-j2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return NormalizeDeg(Degree(gmst))
}

// equationOfEquinoxes returns the nutation correction GAST-GMST in degrees,
// using the USNO approximation. Good to a few milliarcseconds over the
// current decades, well inside the catalog's positional accuracy.
func equationOfEquinoxes(t time.Time) Degree {
	d := JulianDate(t) - j2000

	// Longitude of the Moon's ascending node and mean longitude of the Sun.
	omega := DegToRad(Degree(125.04 - 0.052954*d))
	sunL := DegToRad(Degree(280.47 + 0.98565*d))
	eps := DegToRad(Degree(23.4393 - 0.0000004*d))

	// Nutation in longitude, in hours of sidereal time.
	dpsi := -0.000319*math.Sin(float64(omega)) - 0.000024*math.Sin(2*float64(sunL))

	return Degree(dpsi * 15 * math.Cos(float64(eps)))
}

// GreenwichApparentSiderealTime returns GAST in degrees for a UTC instant,
// normalized to [0, 360). Used as the additive sidereal rotation term when
// orienting the camera and the horizon frame.
func GreenwichApparentSiderealTime(t time.Time) Degree {
	return NormalizeDeg(greenwichMeanSiderealTime(t) + equationOfEquinoxes(t))
}
