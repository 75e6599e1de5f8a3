package picking

import (
	"time"

	"github.com/litescript/ls-starfield/internal/star"
)

// Selection is the outcome of a pick query. Fields are nil when no
// candidate of that kind was visible.
type Selection struct {
	// Star is the nearest visible star of any kind.
	Star *star.Star

	// Named is the nearest visible star with a proper name; it may differ
	// from Star when the closest candidate is anonymous.
	Named *star.Star

	// Constellation is the figure with the closest segment.
	Constellation *star.Constellation
}

// Select ranks the catalog and the constellation figures against a query
// position and returns the nearest candidates. Star positions are projected
// to the query instant so proper motion cannot skew ranking against the
// rendered sky. Stars fainter than maxVmag are not candidates: the pointer
// cannot select what the screen does not show.
func Select(cat star.Catalog, figures []star.Constellation, q Point, maxVmag float64, now time.Time) Selection {
	var sel Selection
	bestStar := -1.0
	bestNamed := -1.0

	for hip, s := range cat {
		if s.Vmag > maxVmag {
			continue
		}
		ra, dec := s.RaDecAt(now)
		d := AngularDistanceSquared(q, Point{RA: ra, Dec: dec})

		if bestStar < 0 || d < bestStar {
			bestStar = d
			c := s
			sel.Star = &c
		}
		if _, named := star.Names[hip]; named && (bestNamed < 0 || d < bestNamed) {
			bestNamed = d
			c := s
			sel.Named = &c
		}
	}

	bestFigure := -1.0
	for i := range figures {
		d, ok := nearestSegment(cat, &figures[i], q, maxVmag, now)
		if !ok {
			continue
		}
		if bestFigure < 0 || d < bestFigure {
			bestFigure = d
			sel.Constellation = &figures[i]
		}
	}

	return sel
}

// nearestSegment returns the smallest segment distance within one figure.
// Segments count only when both endpoints are loaded and visible, so a
// figure becomes selectable as its stars stream in.
func nearestSegment(cat star.Catalog, figure *star.Constellation, q Point, maxVmag float64, now time.Time) (float64, bool) {
	best := -1.0
	for _, seg := range figure.Segments {
		s0, ok0 := cat[seg[0]]
		s1, ok1 := cat[seg[1]]
		if !ok0 || !ok1 || s0.Vmag > maxVmag || s1.Vmag > maxVmag {
			continue
		}

		ra0, dec0 := s0.RaDecAt(now)
		ra1, dec1 := s1.RaDecAt(now)
		d, err := DistanceToSegment(q, Point{RA: ra0, Dec: dec0}, Point{RA: ra1, Dec: dec1})
		if err != nil {
			continue
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best, best >= 0
}
