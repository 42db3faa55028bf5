package planet

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/orrery/pkg/math"
)

// BuildSphere computes a closed UV-sphere of the given radius.
//
// Rows run from the south pole (elevation -pi/2) to the north pole, columns from
// azimuth 0 to 2pi inclusive, so the first and last column share a position but
// carry u=0 and u=1 respectively. One strip joins each pair of adjacent rows,
// listing next[i], curr[i] for every column; that order fixes the front-face winding.
func BuildSphere(radius float64, longitude, latitude int) (*MeshBuffers, error) {
	if !(radius > 0) || gomath.IsInf(radius, 1) {
		return nil, fmt.Errorf("%w: radius %v must be positive and finite", ErrInvalidParameter, radius)
	}
	if longitude < 2 || latitude < 2 {
		return nil, fmt.Errorf("%w: resolution %dx%d must be at least 2x2", ErrInvalidParameter, longitude, latitude)
	}
	if uint64(longitude)*uint64(latitude) > gomath.MaxUint32 {
		return nil, fmt.Errorf("%w: resolution %dx%d overflows 32-bit indices", ErrInvalidParameter, longitude, latitude)
	}

	numVertices := longitude * latitude
	mesh := &MeshBuffers{
		Positions: make([]math.Vec3, numVertices),
		Normals:   make([]math.Vec3, numVertices),
		TexCoords: make([]math.Vec2, numVertices),
		Strips:    make([][]uint32, latitude-1),
		Longitude: longitude,
		Latitude:  latitude,
	}

	deltaElevation := gomath.Pi / float64(latitude-1)
	deltaAzimuth := 2 * gomath.Pi / float64(longitude-1)

	vert := 0
	for j := 0; j < latitude; j++ {
		elevation := -gomath.Pi/2 + float64(j)*deltaElevation
		sinEl, cosEl := gomath.Sincos(elevation)
		v := float32(float64(j) / float64(latitude-1))

		for i := 0; i < longitude; i++ {
			sinAz, cosAz := gomath.Sincos(float64(i) * deltaAzimuth)
			dx, dy, dz := cosAz*cosEl, sinAz*cosEl, sinEl

			mesh.Normals[vert] = math.Vec3{X: float32(dx), Y: float32(dy), Z: float32(dz)}
			mesh.Positions[vert] = math.Vec3{X: float32(dx * radius), Y: float32(dy * radius), Z: float32(dz * radius)}
			mesh.TexCoords[vert] = math.Vec2{X: float32(float64(i) / float64(longitude-1)), Y: v}
			vert++
		}
	}

	for j := 0; j < latitude-1; j++ {
		curr := uint32(j * longitude)
		next := curr + uint32(longitude)
		strip := make([]uint32, 0, 2*longitude)
		for i := uint32(0); i < uint32(longitude); i++ {
			strip = append(strip, next+i, curr+i)
		}
		mesh.Strips[j] = strip
	}

	return mesh, nil
}

// BuildSphereParams builds the sphere described by p.
func BuildSphereParams(p SphereParams) (*MeshBuffers, error) {
	mesh, err := BuildSphere(p.Radius, p.LongitudeSegments, p.LatitudeSegments)
	if err != nil {
		return nil, fmt.Errorf("sphere %q: %w", p.Name, err)
	}
	return mesh, nil
}

// VertexCount returns the number of vertices.
func (m *MeshBuffers) VertexCount() int {
	return len(m.Positions)
}

// IndexCount returns the total number of strip indices.
func (m *MeshBuffers) IndexCount() int {
	n := 0
	for _, s := range m.Strips {
		n += len(s)
	}
	return n
}

// Interleave packs the parallel buffers into one vertex slice for GPU upload.
func (m *MeshBuffers) Interleave() []Vertex {
	out := make([]Vertex, len(m.Positions))
	for i := range out {
		out[i] = Vertex{
			Position: m.Positions[i].Array(),
			Normal:   m.Normals[i].Array(),
			TexCoord: m.TexCoords[i].Array(),
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the positions.
func (m *MeshBuffers) Bounds() Bounds {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, p := range m.Positions {
		updateBounds(&b, p.Array())
	}
	return b
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
