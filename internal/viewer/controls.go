package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/orrery/internal/planet"
)

// velocityStep is the factor one +/- key press applies to rotation speed.
const velocityStep = 1.25

// HandleKey applies a rotation control key to every animator and reports
// whether the key was one.
//
//	R      toggle rotation
//	+ / =  spin faster
//	-      spin slower
func HandleKey(key sdl.Keycode, animators []*planet.RotationAnimator) bool {
	switch key {
	case sdl.K_r:
		for _, a := range animators {
			a.Toggle()
		}
	case sdl.K_PLUS, sdl.K_EQUALS, sdl.K_KP_PLUS:
		for _, a := range animators {
			a.SetVelocityScale(a.VelocityScale() * velocityStep)
		}
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		for _, a := range animators {
			a.SetVelocityScale(a.VelocityScale() / velocityStep)
		}
	default:
		return false
	}
	return true
}

// Clock converts SDL milliseconds into scaled simulation seconds since start.
type Clock struct {
	start uint64
	scale float64
}

// NewClock starts a clock at startMs. A non-positive scale freezes time.
func NewClock(startMs uint64, scale float64) *Clock {
	return &Clock{start: startMs, scale: scale}
}

// Seconds returns the simulation time at nowMs.
func (c *Clock) Seconds(nowMs uint64) float64 {
	if nowMs < c.start || c.scale <= 0 {
		return 0
	}
	return float64(nowMs-c.start) / 1000 * c.scale
}
