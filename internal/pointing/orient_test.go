package pointing

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/star"
)

// viewAxis is the direction the camera looks along before any rotation.
var viewAxis = astro.Vec3{Z: -1}

func vecClose(a, b astro.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestCameraFromRaDec_LooksAtTarget(t *testing.T) {
	cases := []struct {
		name    string
		ra, dec astro.Degree
	}{
		{"vernal equinox", 0, 0},
		{"sirius", 101.287, -16.716},
		{"vega", 279.235, 38.784},
		{"near north pole", 37.954, 89.264},
		{"southern sky", 200.0, -60.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ra := astro.DegToRad(tc.ra)
			dec := astro.DegToRad(tc.dec)

			got := CameraFromRaDec(ra, dec).Rotate(viewAxis)
			want := astro.ToCartesian(ra, dec, 1)

			if !vecClose(got, want, 1e-9) {
				t.Errorf("camera axis = %+v, want %+v", got, want)
			}
		})
	}
}

func TestCameraFromAzAlt_Zenith(t *testing.T) {
	now := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	f := Frame{Lat: 35, Lon: -106.6}

	// Looking straight up, the camera axis is the local zenith: the point
	// at the observer's latitude on the meridian of local sidereal time.
	// Azimuth is irrelevant at the zenith.
	gast := astro.GreenwichApparentSiderealTime(now)
	want := astro.ToCartesian(astro.DegToRad(gast+f.Lon), astro.DegToRad(f.Lat), 1)

	for _, az := range []astro.Degree{0, 90, 180, 270} {
		got := CameraFromAzAlt(f, az, 90, now).Rotate(viewAxis)
		if !vecClose(got, want, 1e-9) {
			t.Errorf("az %v: axis = %+v, want zenith %+v", az, got, want)
		}
	}
}

func TestCameraFromAzAlt_SouthernDeclination(t *testing.T) {
	now := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	f := Frame{Lat: 35, Lon: -106.6}

	// Facing due south at altitude alt, the camera axis sits on the
	// meridian at declination lat + alt - 90.
	got := CameraFromAzAlt(f, 180, 45, now).Rotate(viewAxis)
	dec := astro.RadToDeg(astro.Radian(math.Asin(got.Z)))

	if math.Abs(float64(dec-(-10.0))) > 1e-9 {
		t.Errorf("declination = %v, want -10", dec)
	}
}

func TestCameraFromAzAlt_TracksSiderealTime(t *testing.T) {
	f := Frame{Lat: 35, Lon: -106.6}
	t0 := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	v0 := CameraFromAzAlt(f, 180, 45, t0).Rotate(viewAxis)
	v1 := CameraFromAzAlt(f, 180, 45, t1).Rotate(viewAxis)

	if vecClose(v0, v1, 1e-6) {
		t.Error("same horizontal direction mapped to the same equatorial axis an hour apart")
	}
}

func TestHorizonFrame_IsAzAltPrefix(t *testing.T) {
	now := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	f := Frame{Lat: 35, Lon: -106.6}

	want := CameraFromAzAlt(f, 0, 0, now)
	got := HorizonFrame(f, now).
		Mul(astro.RotationZ(-180)).
		Mul(astro.RotationX(-90))

	if math.Abs(math.Abs(got.Dot(want))-1) > 1e-12 {
		t.Errorf("horizon frame is not the azimuth/altitude prefix: dot %v", got.Dot(want))
	}
}

func TestOrientation_RaDec(t *testing.T) {
	target := RaDec{RA: astro.DegToRad(101.287), Dec: astro.DegToRad(-16.716)}

	got, err := Orientation(target, Frame{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := CameraFromRaDec(target.RA, target.Dec)
	if math.Abs(math.Abs(got.Dot(want))-1) > 1e-12 {
		t.Errorf("orientation differs from direct camera computation")
	}
}

func TestOrientation_StarRef(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sirius := star.Star{
		HIP:   32349,
		RA:    astro.DegToRad(101.287),
		Dec:   astro.DegToRad(-16.716),
		Epoch: now.Unix(),
	}
	cat := star.Catalog{32349: sirius}
	f := Frame{Clock: FixedClock{T: now}}

	got, err := Orientation(StarRef{HIP: 32349}, f, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// At the reference epoch the star sits exactly at its cataloged
	// position.
	want := CameraFromRaDec(sirius.RA, sirius.Dec)
	if math.Abs(math.Abs(got.Dot(want))-1) > 1e-12 {
		t.Errorf("orientation differs from cataloged position")
	}
}

func TestOrientation_StarRefNotFound(t *testing.T) {
	_, err := Orientation(StarRef{HIP: 91262}, Frame{}, star.Catalog{})
	if err == nil {
		t.Fatal("expected error for unknown star")
	}

	var nf *TargetNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %T, want *TargetNotFoundError", err)
	}
	if nf.HIP != 91262 {
		t.Errorf("HIP = %d, want 91262", nf.HIP)
	}
}

func TestFrame_NowDefaultsToSystemClock(t *testing.T) {
	before := time.Now()
	got := Frame{}.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v outside [%v, %v]", got, before, after)
	}
}

func TestOffsetClock(t *testing.T) {
	c := OffsetClock{Offset: -24 * time.Hour}
	d := time.Until(c.Now())

	if d > -23*time.Hour {
		t.Errorf("offset clock not shifted into the past: %v", d)
	}
}
