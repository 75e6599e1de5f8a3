// Package pointing turns view targets into camera orientations on the
// celestial sphere and animates transitions between them.
package pointing

import (
	"fmt"
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
)

// Target is the closed set of things the camera can point at.
type Target interface {
	target()
}

// AzAlt points the camera at a horizontal direction for the observer's
// site, so the view tracks the rotating sky.
type AzAlt struct {
	Az  astro.Degree
	Alt astro.Degree
}

// RaDec points the camera at a fixed equatorial position.
type RaDec struct {
	RA  astro.Radian
	Dec astro.Radian
}

// StarRef points the camera at a catalog star by Hipparcos id. Resolution
// happens against whatever bands have loaded; a miss is a hard error, not a
// wait for deeper bands.
type StarRef struct {
	HIP int
}

func (AzAlt) target()   {}
func (RaDec) target()   {}
func (StarRef) target() {}

// TargetNotFoundError means a StarRef's id is absent from the loaded
// catalog. It is not retried: callers decide whether to deepen and resolve
// again.
type TargetNotFoundError struct {
	HIP int
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("pointing: HIP %d not in loaded catalog", e.HIP)
}

// Clock supplies the current instant. Orientation math depends on sidereal
// time, so tests and time-travel features inject their own clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// OffsetClock shifts the wall clock by a constant offset.
type OffsetClock struct {
	Offset time.Duration
}

func (c OffsetClock) Now() time.Time { return time.Now().Add(c.Offset) }

// Frame is an observing site: geographic position plus the clock that
// anchors sidereal time.
type Frame struct {
	Lat   astro.Degree
	Lon   astro.Degree
	Clock Clock
}

// Now returns the frame's current instant, defaulting to the system clock.
func (f Frame) Now() time.Time {
	if f.Clock == nil {
		return time.Now()
	}
	return f.Clock.Now()
}
