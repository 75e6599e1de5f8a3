package star

// Catalog maps HIP identifiers to stars. A catalog grows monotonically as
// fainter magnitude bands load; it never shrinks within a session except on
// an explicit source change.
//
// Catalogs are treated as immutable snapshots by readers: Merge returns a
// new map rather than mutating in place, so renderers and hit-testing may
// keep iterating a stale snapshot while the next band loads.
type Catalog map[int]Star

// Merge returns a new catalog containing the receiver's stars plus the
// given ones. Later entries win on duplicate HIP ids.
func (c Catalog) Merge(stars []Star) Catalog {
	out := make(Catalog, len(c)+len(stars))
	for hip, s := range c {
		out[hip] = s
	}
	for _, s := range stars {
		out[s.HIP] = s
	}
	return out
}

// Visible returns the stars at or brighter than the magnitude threshold.
func (c Catalog) Visible(maxVmag float64) []Star {
	out := make([]Star, 0, len(c))
	for _, s := range c {
		if s.Vmag <= maxVmag {
			out = append(out, s)
		}
	}
	return out
}
