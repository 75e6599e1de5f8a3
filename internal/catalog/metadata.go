// Package catalog implements the progressive star-catalog loader: metadata
// discovery, magnitude-banded data files and the state machine that fetches
// them incrementally.
package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/star"
)

// Band describes one magnitude-banded catalog file covering [Lower, Upper].
// Bands may overlap and arrive in no particular order.
type Band struct {
	Lower float64
	Upper float64
	File  string
}

// UnmarshalJSON parses the wire form, a heterogeneous JSON tuple:
// [lowerVmag, upperVmag, "relative/path.json"].
func (b *Band) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 3 {
		return fmt.Errorf("band entry has %d elements, want 3", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &b.Lower); err != nil {
		return fmt.Errorf("band lower bound: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &b.Upper); err != nil {
		return fmt.Errorf("band upper bound: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &b.File); err != nil {
		return fmt.Errorf("band file: %w", err)
	}
	return nil
}

// Metadata describes one catalog source. Loaded once per distinct source
// URL; invalidated when the requested source string changes.
type Metadata struct {
	// Source is the URL the metadata document was fetched from. Band files
	// resolve relative to its directory, not the page origin.
	Source string

	// VmagRange is the [min, max] magnitude range the source covers.
	VmagRange [2]float64

	// Bands list the magnitude-banded files.
	Bands []Band

	// PMEpoch is the proper-motion reference epoch shared by every star in
	// this source, in seconds since the Unix epoch.
	PMEpoch int64
}

// metadataDoc is the wire form of the metadata document.
type metadataDoc struct {
	VmagRange [2]float64  `json:"v_mag_range"`
	Files     []Band      `json:"files"`
	PMEpoch   json.Number `json:"pm_epoch"`
}

// ParseMetadata parses a metadata document fetched from source.
func ParseMetadata(source string, data []byte) (Metadata, error) {
	var doc metadataDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Metadata{}, &ParseError{URL: source, Err: err}
	}
	if len(doc.Files) == 0 {
		return Metadata{}, &ParseError{URL: source, Err: fmt.Errorf("metadata lists no band files")}
	}

	epoch, err := doc.PMEpoch.Float64()
	if err != nil {
		return Metadata{}, &ParseError{URL: source, Err: fmt.Errorf("pm_epoch: %w", err)}
	}

	return Metadata{
		Source:    source,
		VmagRange: doc.VmagRange,
		Bands:     doc.Files,
		PMEpoch:   int64(epoch),
	}, nil
}

// BandURL resolves a band file reference against the metadata document's
// own location.
func (m Metadata) BandURL(b Band) (string, error) {
	base, err := url.Parse(m.Source)
	if err != nil {
		return "", fmt.Errorf("parse source url: %w", err)
	}
	ref, err := url.Parse(b.File)
	if err != nil {
		return "", fmt.Errorf("parse band file ref: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

// RequiredBands selects the bands still needed to cover requiredVmag given
// the faintest threshold already fully loaded (nil if none), sorted
// ascending by upper bound so the catalog deepens brightest-first.
//
// A band whose upper bound does not exceed loadedVmag is already fully
// covered and skipped even when it would also satisfy the new request.
func (m Metadata) RequiredBands(loadedVmag *float64, requiredVmag float64) []Band {
	var out []Band
	for _, b := range m.Bands {
		if requiredVmag < b.Lower {
			continue
		}
		if loadedVmag != nil && b.Upper <= *loadedVmag {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Upper < out[j].Upper })
	return out
}

// bandRecord is the wire form of one star in a band document.
type bandRecord struct {
	N int        `json:"n"`
	P [3]float64 `json:"p"` // ra deg, dec deg, parallax mas
	M [2]float64 `json:"m"` // pm ra, pm dec, mas/year
	V float64    `json:"v"`
	C [3]float64 `json:"c"` // linear rgb
}

// ParseBand parses a band document into stars. Angles arrive in degrees and
// are converted to radians here; the proper-motion components deliberately
// go through the same conversion so that the /3600000 divisor at the
// use site restores milliarcsecond-per-year semantics.
func ParseBand(src string, pmEpoch int64, data []byte) ([]star.Star, error) {
	var records []bandRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &ParseError{URL: src, Err: err}
	}

	stars := make([]star.Star, 0, len(records))
	for _, r := range records {
		stars = append(stars, star.Star{
			HIP:      r.N,
			RA:       astro.DegToRad(astro.Degree(r.P[0])),
			Dec:      astro.DegToRad(astro.Degree(r.P[1])),
			Parallax: r.P[2],
			PMRA:     astro.DegToRad(astro.Degree(r.M[0])),
			PMDec:    astro.DegToRad(astro.Degree(r.M[1])),
			Epoch:    pmEpoch,
			Vmag:     r.V,
			Color:    r.C,
		})
	}
	return stars, nil
}
