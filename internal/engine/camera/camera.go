// Package camera provides the orbit camera used to inspect planets.
package camera

import (
	gomath "math"

	"github.com/Faultbox/orrery/pkg/math"
)

// OrbitCamera orbits a center point with +Z up, so the camera circles the
// planets' spin axis.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	Elevation float32 // Angle above the XY plane (radians)
	Azimuth   float32 // Angle around +Z from +X (radians)

	// Constraints
	MinDistance  float32
	MaxDistance  float32
	MinElevation float32
	MaxElevation float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	FovY float32 // Vertical field of view (radians)
}

// NewOrbitCamera creates a camera looking at the origin from the -Y side.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        400.0,
		Elevation:       0.3,
		Azimuth:         -gomath.Pi / 2,
		MinDistance:     1.0,
		MaxDistance:     100000.0,
		MinElevation:    -1.5,
		MaxElevation:    1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            float32(gomath.Pi / 4),
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinEl, cosEl := gomath.Sincos(float64(c.Elevation))
	sinAz, cosAz := gomath.Sincos(float64(c.Azimuth))
	d := float64(c.Distance)

	return c.Center.Add(math.Vec3{
		X: float32(d * cosEl * cosAz),
		Y: float32(d * cosEl * sinAz),
		Z: float32(d * sinEl),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.UnitZ)
}

// ProjectionMatrix returns a perspective projection whose clip planes scale
// with the orbit distance.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	near := c.Distance * 0.01
	far := c.Distance * 10
	return math.Perspective(c.FovY, aspect, near, far)
}

// HandleDrag updates the orbit angles from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Azimuth -= deltaX * c.DragSensitivity
	c.Elevation += deltaY * c.DragSensitivity
	c.Elevation = clamp(c.Elevation, c.MinElevation, c.MaxElevation)
}

// HandleZoom moves the camera in (positive delta) or out by a fraction of the
// current distance.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on the box and backs off far enough for the
// bounding sphere to fill the view.
func (c *OrbitCamera) FitToBounds(min, max [3]float32) {
	lo := math.Vec3{X: min[0], Y: min[1], Z: min[2]}
	hi := math.Vec3{X: max[0], Y: max[1], Z: max[2]}
	c.Center = lo.Add(hi).Scale(0.5)

	radius := float64(hi.Distance(lo)) / 2
	if radius <= 0 {
		return
	}
	dist := radius / gomath.Sin(float64(c.FovY)/2) * 1.1
	c.Distance = float32(dist)
	if c.MinDistance > c.Distance {
		c.MinDistance = c.Distance
	}
	if c.MaxDistance < c.Distance*20 {
		c.MaxDistance = c.Distance * 20
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
