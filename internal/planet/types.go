// Package planet builds textured UV-sphere planets and spins them with simulation time.
package planet

import (
	"errors"
	"image"

	"github.com/Faultbox/orrery/pkg/math"
)

// ErrInvalidParameter is returned when a sphere cannot be built from the given radius
// or resolution. No partial mesh accompanies it.
var ErrInvalidParameter = errors.New("invalid sphere parameter")

// Default sphere resolution.
const (
	DefaultLongitudeSegments = 100
	DefaultLatitudeSegments  = 50
)

// SphereParams describes the sphere behind one planet.
type SphereParams struct {
	Radius            float64
	Name              string
	BaseColor         math.Vec4
	LongitudeSegments int
	LatitudeSegments  int
}

// DefaultSphereParams returns a white sphere at the default resolution.
func DefaultSphereParams(name string, radius float64) SphereParams {
	return SphereParams{
		Radius:            radius,
		Name:              name,
		BaseColor:         math.White,
		LongitudeSegments: DefaultLongitudeSegments,
		LatitudeSegments:  DefaultLatitudeSegments,
	}
}

// MeshBuffers holds a UV-sphere ready for attachment to a geode.
// Positions, Normals and TexCoords are parallel, laid out row by row
// (latitude-major) with Longitude vertices per row.
type MeshBuffers struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Strips    [][]uint32
	Longitude int
	Latitude  int
}

// Vertex is the interleaved vertex layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// ImageLoader resolves a texture path to decoded pixels.
type ImageLoader interface {
	LoadImage(path string) (*image.RGBA, error)
}
