package star

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
)

func starAt(vmag float64) Star {
	return Star{HIP: 1, Vmag: vmag}
}

func TestSize_Monotonic(t *testing.T) {
	prev := math.Inf(1)
	for v := -1.5; v <= 5.0; v += 0.25 {
		size := starAt(v).Size()
		if size > prev {
			t.Errorf("Size not monotonic: Vmag %v gives %v > previous %v", v, size, prev)
		}
		if size < 3.0 {
			t.Errorf("Size(%v) = %v, below the 3.0 floor", v, size)
		}
		prev = size
	}
}

func TestSize_SaturatesAtFaintEnd(t *testing.T) {
	for _, v := range []float64{5.0, 5.1, 7.3, 12.0} {
		if got := starAt(v).Size(); got != 3.0 {
			t.Errorf("Size(%v) = %v, want 3.0", v, got)
		}
	}
}

func TestOpacity_Bounds(t *testing.T) {
	for v := -1.5; v <= 15; v += 0.5 {
		op := starAt(v).Opacity()
		if op <= 0 || op > 1 {
			t.Errorf("Opacity(%v) = %v, outside (0, 1]", v, op)
		}
		if v <= 5.0 && op != 1.0 {
			t.Errorf("Opacity(%v) = %v, want exactly 1.0 at or below mag 5", v, op)
		}
		if v > 5.0 && op > 0.5 {
			t.Errorf("Opacity(%v) = %v, faint stars start at 0.5", v, op)
		}
	}
}

func TestRaDecAt(t *testing.T) {
	epoch := time.Date(1991, 4, 1, 12, 0, 0, 0, time.UTC)

	// Proper motion stored the way the parser produces it: the raw
	// mas/year value run through the degree-to-radian conversion.
	const pmRaMas, pmDecMas = 500.0, -250.0
	s := Star{
		HIP:   32349,
		RA:    astro.DegToRad(101.287),
		Dec:   astro.DegToRad(-16.716),
		PMRA:  astro.DegToRad(pmRaMas),
		PMDec: astro.DegToRad(pmDecMas),
		Epoch: epoch.Unix(),
	}

	// At the epoch the cataloged position is returned unchanged.
	ra0, dec0 := s.RaDecAt(epoch)
	if ra0 != s.RA || dec0 != s.Dec {
		t.Errorf("RaDecAt(epoch) = (%v, %v), want cataloged (%v, %v)", ra0, dec0, s.RA, s.Dec)
	}

	// A century later the star has moved pm*100 milliarcseconds.
	later := epoch.AddDate(100, 0, 0)
	ra, dec := s.RaDecAt(later)

	years := later.Sub(epoch).Seconds() / secondsPerYear
	wantRa := s.RA + astro.DegToRad(astro.Degree(pmRaMas*years))/3600000
	wantDec := s.Dec + astro.DegToRad(astro.Degree(pmDecMas*years))/3600000

	if math.Abs(float64(ra-wantRa)) > 1e-15 {
		t.Errorf("RaDecAt ra = %v, want %v", ra, wantRa)
	}
	if math.Abs(float64(dec-wantDec)) > 1e-15 {
		t.Errorf("RaDecAt dec = %v, want %v", dec, wantDec)
	}
}

func TestCatalogMerge_CopyOnWrite(t *testing.T) {
	base := Catalog{}.Merge([]Star{{HIP: 1, Vmag: 1}, {HIP: 2, Vmag: 2}})

	merged := base.Merge([]Star{{HIP: 3, Vmag: 3}, {HIP: 2, Vmag: 2.5}})

	if len(base) != 2 {
		t.Errorf("base catalog mutated: len = %d, want 2", len(base))
	}
	if len(merged) != 3 {
		t.Errorf("merged catalog len = %d, want 3", len(merged))
	}
	if merged[2].Vmag != 2.5 {
		t.Errorf("duplicate HIP should take the later record, got Vmag %v", merged[2].Vmag)
	}
	if base[2].Vmag != 2 {
		t.Errorf("base record changed by merge: Vmag %v", base[2].Vmag)
	}
}

func TestCatalogVisible(t *testing.T) {
	cat := Catalog{}.Merge([]Star{
		{HIP: 1, Vmag: 0.5},
		{HIP: 2, Vmag: 3.0},
		{HIP: 3, Vmag: 6.2},
	})

	vis := cat.Visible(3.0)
	if len(vis) != 2 {
		t.Errorf("Visible(3.0) returned %d stars, want 2", len(vis))
	}
	for _, s := range vis {
		if s.Vmag > 3.0 {
			t.Errorf("Visible(3.0) included Vmag %v", s.Vmag)
		}
	}
}

func TestConstellationEndpointsNamed(t *testing.T) {
	// Every figure endpoint that is also used by labels must resolve in the
	// name table; unnamed endpoints are allowed but the bright anchors of
	// each figure should be named.
	for _, c := range Constellations {
		if len(c.Segments) == 0 {
			t.Errorf("constellation %s has no segments", c.Name)
		}
		named := 0
		for _, seg := range c.Segments {
			if seg[0] == seg[1] {
				t.Errorf("%s has a degenerate segment %v", c.Name, seg)
			}
			if NameOf(seg[0]) != "" {
				named++
			}
		}
		if named == 0 {
			t.Errorf("constellation %s has no named anchor star", c.Name)
		}
	}
}
