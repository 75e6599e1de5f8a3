package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/session"
	"github.com/litescript/ls-starfield/internal/star"
)

func aimedModel(ra, dec astro.Degree) SkyViewModel {
	m := NewSkyViewModel(6.0)
	m.camRA = ra
	m.camDec = dec
	m.now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return m
}

func TestProject_CenterIsCenter(t *testing.T) {
	m := aimedModel(101.287, -16.716)
	inv, fov := m.camera()
	inv = inv.Conjugate()

	width, height := 100, 50
	v := astro.ToCartesian(astro.DegToRad(101.287), astro.DegToRad(-16.716), 1)

	x, y, visible := m.project(inv, fov, v, width, height)
	if !visible {
		t.Fatal("center object should be visible")
	}
	if x < 40 || x > 60 {
		t.Errorf("center x = %d, expected near 50", x)
	}
	if y < 15 || y > 35 {
		t.Errorf("center y = %d, expected near 25", y)
	}
}

func TestProject_BehindCameraInvisible(t *testing.T) {
	m := aimedModel(100, 0)
	inv, fov := m.camera()
	inv = inv.Conjugate()

	// Antipode of the camera center.
	v := astro.ToCartesian(astro.DegToRad(280), astro.DegToRad(0), 1)
	if _, _, visible := m.project(inv, fov, v, 100, 50); visible {
		t.Error("object behind the camera should not be visible")
	}
}

func TestProject_OutsideFovInvisible(t *testing.T) {
	m := aimedModel(100, 0)
	inv, fov := m.camera()
	inv = inv.Conjugate()

	tests := []struct {
		ra, dec float64
		visible bool
		desc    string
	}{
		{100, 0, true, "center"},
		{130, 0, true, "within horizontal FOV"},
		{100, 20, true, "within vertical FOV"},
		{160, 0, false, "outside horizontal FOV"},
		{100, 40, false, "outside vertical FOV"},
	}

	for _, tt := range tests {
		v := astro.ToCartesian(astro.DegToRad(astro.Degree(tt.ra)), astro.DegToRad(astro.Degree(tt.dec)), 1)
		if _, _, visible := m.project(inv, fov, v, 100, 50); visible != tt.visible {
			t.Errorf("project(%v, %v) visible = %v, want %v (%s)",
				tt.ra, tt.dec, visible, tt.visible, tt.desc)
		}
	}
}

func TestCrosshair_MatchesCamera(t *testing.T) {
	m := aimedModel(101.287, -16.716)
	p := m.crosshair()

	if math.Abs(float64(astro.RadToDeg(p.RA))-101.287) > 1e-6 {
		t.Errorf("crosshair RA = %v, want 101.287", astro.RadToDeg(p.RA))
	}
	if math.Abs(float64(astro.RadToDeg(p.Dec))-(-16.716)) > 1e-6 {
		t.Errorf("crosshair Dec = %v, want -16.716", astro.RadToDeg(p.Dec))
	}
}

func TestStarGlyph(t *testing.T) {
	bright := star.Star{Vmag: -1.44}
	if glyph, color := starGlyph(bright); glyph != glyphStarLarge || color != colorStarBright {
		t.Errorf("bright star glyph = %c color = %s", glyph, color)
	}

	threshold := star.Star{Vmag: 5.0}
	if glyph, color := starGlyph(threshold); glyph != glyphStarSmall || color != colorStarBright {
		t.Errorf("threshold star glyph = %c color = %s", glyph, color)
	}

	faint := star.Star{Vmag: 9.0}
	if glyph, color := starGlyph(faint); glyph != glyphStarSmall || color != colorStarFaint {
		t.Errorf("faint star glyph = %c color = %s", glyph, color)
	}
}

func TestSkyView_ViewShowsSelectedStar(t *testing.T) {
	m := aimedModel(101.287, -16.716)
	m = m.SetSize(100, 40)

	sirius := star.Star{
		HIP:   32349,
		RA:    astro.DegToRad(101.287),
		Dec:   astro.DegToRad(-16.716),
		Epoch: m.now.Unix(),
		Vmag:  -1.44,
		Color: [3]float64{1, 1, 1},
	}
	m = m.UpdateData(session.Snapshot{Stars: star.Catalog{32349: sirius}}, 6.0)

	out := m.View()
	if !strings.Contains(out, "Sirius") {
		t.Error("view does not name the star under the crosshair")
	}
	if !strings.Contains(out, "+") {
		t.Error("view has no crosshair")
	}
	if !strings.Contains(out, "depth 6.0") {
		t.Error("view does not report the requested depth")
	}
}

func TestSkyView_PanClampsDeclination(t *testing.T) {
	m := aimedModel(0, 85)
	m = m.pan(0, 20)

	if m.camDec > 89 {
		t.Errorf("camDec = %v, want clamped to 89", m.camDec)
	}

	m = aimedModel(0, -85)
	m = m.pan(0, -20)
	if m.camDec < -89 {
		t.Errorf("camDec = %v, want clamped to -89", m.camDec)
	}
}

func TestSkyView_ZoomClamps(t *testing.T) {
	m := aimedModel(0, 0)
	for i := 0; i < 20; i++ {
		m = m.zoom(1 / 1.25)
	}
	if fov := m.fov(); fov < minFov {
		t.Errorf("fov = %v, want >= %v", fov, minFov)
	}

	for i := 0; i < 20; i++ {
		m = m.zoom(1.25)
	}
	if fov := m.fov(); fov > maxFov {
		t.Errorf("fov = %v, want <= %v", fov, maxFov)
	}
}
