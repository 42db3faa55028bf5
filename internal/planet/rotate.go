package planet

import (
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

// DefaultVelocityScale is the spin rate in radians per simulated second.
const DefaultVelocityScale = 0.1

// RotationState is the animator's configuration.
type RotationState struct {
	Enabled       bool
	VelocityScale float64   // Radians per simulated second
	Axis          math.Vec3 // Spin axis; zero means +Z
}

// DefaultRotationState returns an enabled spin about +Z at DefaultVelocityScale.
func DefaultRotationState() RotationState {
	return RotationState{
		Enabled:       true,
		VelocityScale: DefaultVelocityScale,
		Axis:          math.UnitZ,
	}
}

// RotationAnimator spins one transform from simulation time. Each tick sets the
// matrix to an absolute rotation of VelocityScale*t, so the pose depends only on
// the time value and never on frame rate. A disabled animator leaves the matrix alone.
type RotationAnimator struct {
	xform    *scene.Transform
	state    RotationState
	lastTime float64
}

// NewRotationAnimator binds an animator to xform.
func NewRotationAnimator(xform *scene.Transform, state RotationState) *RotationAnimator {
	if state.Axis == (math.Vec3{}) {
		state.Axis = math.UnitZ
	}
	if !math.IsFinite(state.VelocityScale) {
		state.VelocityScale = DefaultVelocityScale
	}
	return &RotationAnimator{xform: xform, state: state}
}

// Transform returns the transform the animator drives.
func (a *RotationAnimator) Transform() *scene.Transform { return a.xform }

// State returns the current configuration.
func (a *RotationAnimator) State() RotationState { return a.state }

// Enabled reports whether ticks update the transform.
func (a *RotationAnimator) Enabled() bool { return a.state.Enabled }

// SetEnabled switches the animator on or off. The matrix keeps its last value while off.
func (a *RotationAnimator) SetEnabled(enabled bool) {
	if a.state.Enabled == enabled {
		return
	}
	a.state.Enabled = enabled
	logger.Named("planet").Debug("rotation toggled",
		zap.String("transform", a.xform.Name()),
		zap.Bool("enabled", enabled),
	)
}

// Toggle flips Enabled and returns the new value.
func (a *RotationAnimator) Toggle() bool {
	a.SetEnabled(!a.state.Enabled)
	return a.state.Enabled
}

// VelocityScale returns the spin rate in radians per simulated second.
func (a *RotationAnimator) VelocityScale() float64 { return a.state.VelocityScale }

// SetVelocityScale changes the spin rate. Non-finite values are ignored.
func (a *RotationAnimator) SetVelocityScale(v float64) {
	if math.IsFinite(v) {
		a.state.VelocityScale = v
	}
}

// Tick applies the rotation for simulation time t and returns the matrix now held
// by the transform. Non-finite t is replaced by the last finite time seen.
func (a *RotationAnimator) Tick(t float64) math.Mat4 {
	if !a.state.Enabled {
		return a.xform.Matrix()
	}
	if math.IsFinite(t) {
		a.lastTime = t
	} else {
		t = a.lastTime
	}

	angle := a.state.VelocityScale * t
	if !math.IsFinite(angle) {
		return a.xform.Matrix()
	}
	m := math.RotateAxis(a.state.Axis, angle)
	a.xform.SetMatrix(m)
	return m
}

// Update implements scene.UpdateCallback.
func (a *RotationAnimator) Update(fs scene.FrameStamp) {
	a.Tick(fs.SimulationTime)
}
