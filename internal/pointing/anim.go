package pointing

import (
	"math"
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
)

// AnimDuration is the fixed length of a camera transition.
const AnimDuration = 400 * time.Millisecond

// Animator eases the camera between orientations. The orientation follows
// the spherical arc between the endpoints; the field of view eases as a
// scalar alongside it. A zero Animator starts at rest on the identity.
type Animator struct {
	fromQ astro.Quat
	toQ   astro.Quat
	fromF float64
	toF   float64

	start  time.Time
	moving bool
}

// NewAnimator returns an animator resting at the given pose.
func NewAnimator(q astro.Quat, fov float64) *Animator {
	return &Animator{fromQ: q, toQ: q, fromF: fov, toF: fov}
}

// Retarget starts a transition from the current pose toward a new one. A
// retarget mid-flight departs from the eased in-between pose, not from the
// old endpoint, so rapid target changes stay smooth.
func (a *Animator) Retarget(q astro.Quat, fov float64, now time.Time) {
	curQ, curF := a.At(now)
	a.fromQ = curQ
	a.fromF = curF
	a.toQ = q
	a.toF = fov
	a.start = now
	a.moving = true
}

// Snap jumps to a pose with no transition.
func (a *Animator) Snap(q astro.Quat, fov float64) {
	a.fromQ = q
	a.toQ = q
	a.fromF = fov
	a.toF = fov
	a.moving = false
}

// At returns the eased pose at an instant.
func (a *Animator) At(now time.Time) (astro.Quat, float64) {
	if !a.moving {
		return a.toQ, a.toF
	}

	t := float64(now.Sub(a.start)) / float64(AnimDuration)
	if t >= 1 {
		a.moving = false
		a.fromQ = a.toQ
		a.fromF = a.toF
		return a.toQ, a.toF
	}
	if t < 0 {
		t = 0
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)

	return a.fromQ.Slerp(a.toQ, t), a.fromF + (a.toF-a.fromF)*t
}

// Moving reports whether a transition was still in flight at the instant of
// the last At call.
func (a *Animator) Moving() bool {
	return a.moving
}
