package astro

import (
	"math"
	"testing"
)

func TestDegToRad(t *testing.T) {
	tests := []struct {
		deg Degree
		rad Radian
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{360, 2 * math.Pi},
		{-90, -math.Pi / 2},
	}

	for _, tt := range tests {
		got := DegToRad(tt.deg)
		if math.Abs(float64(got-tt.rad)) > 1e-10 {
			t.Errorf("DegToRad(%v) = %v, want %v", tt.deg, got, tt.rad)
		}
	}
}

func TestAngleRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 1, -1, 33.3, 123.456, -720, 1e6, 1e-9} {
		got := RadToDeg(DegToRad(Degree(x)))
		if math.Abs(float64(got)-x) > 1e-9*math.Max(1, math.Abs(x)) {
			t.Errorf("RadToDeg(DegToRad(%v)) = %v, want %v", x, got, x)
		}
	}
}

func TestNoNormalizationOnConvert(t *testing.T) {
	// Conversions must not wrap; callers normalize explicitly.
	got := DegToRad(Degree(450))
	want := Radian(2.5 * math.Pi)
	if math.Abs(float64(got-want)) > 1e-10 {
		t.Errorf("DegToRad(450) = %v, want %v (no wrap)", got, want)
	}
}

func TestNormalizeDeg(t *testing.T) {
	tests := []struct {
		in, want Degree
	}{
		{0, 0},
		{360, 0},
		{-10, 350},
		{725, 5},
		{-360, 0},
	}

	for _, tt := range tests {
		if got := NormalizeDeg(tt.in); math.Abs(float64(got-tt.want)) > 1e-9 {
			t.Errorf("NormalizeDeg(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
