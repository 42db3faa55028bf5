package renderer

import (
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

// Shading modes understood by the fragment shader.
const (
	modeFlat        int32 = iota // Primary color only
	modeTextured                 // Unit 0 modulated by primary color
	modeInterpolate              // Unit 1 interpolated against unit 0 by primary color
)

// floatsPerVertex is position(3) + normal(3) + texcoord(2) + color(4).
const floatsPerVertex = 12

// drawItem is a geode with its world matrix for this frame.
type drawItem struct {
	geode *scene.Geode
	world math.Mat4
}

// frame is what one traversal of the scene asks the renderer to do.
type frame struct {
	clear *math.Vec4
	items []drawItem
}

// collect walks root for the clear color and every geode that has geometry.
// The first clear node found wins.
func collect(root scene.Node) frame {
	var f frame
	scene.Walk(root, func(n scene.Node, world math.Mat4) bool {
		switch node := n.(type) {
		case *scene.ClearNode:
			if f.clear == nil {
				c := node.Color
				f.clear = &c
			}
		case *scene.Geode:
			if node.Geometry() != nil {
				f.items = append(f.items, drawItem{geode: node, world: world})
			}
		}
		return true
	})
	return f
}

// shadingMode picks the shader path that reproduces the geode's texture state.
// A second texture without an interpolate combiner on its unit is not drawn.
func shadingMode(g *scene.Geode) int32 {
	if _, ok := g.Texture(0); !ok {
		return modeFlat
	}
	if _, ok := g.Texture(1); !ok {
		return modeTextured
	}
	c, ok := g.Combiner(1)
	if !ok || c.RGB != scene.CombineInterpolate {
		return modeTextured
	}
	if c.Sources != [3]scene.CombineSource{scene.SourcePrevious, scene.SourceTexture, scene.SourcePrimaryColor} {
		return modeTextured
	}
	return modeInterpolate
}

// packVertices interleaves a geometry for upload. Missing normals and
// texcoords are zero; missing colors are white.
func packVertices(g *scene.Geometry) []float32 {
	out := make([]float32, 0, len(g.Positions)*floatsPerVertex)
	for i, p := range g.Positions {
		var n math.Vec3
		if i < len(g.Normals) {
			n = g.Normals[i]
		}
		var uv math.Vec2
		if i < len(g.TexCoords) {
			uv = g.TexCoords[i]
		}
		c := vertexColor(g, i)
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z, uv.X, uv.Y, c[0], c[1], c[2], c[3])
	}
	return out
}

func vertexColor(g *scene.Geometry, i int) math.Vec4 {
	switch g.Binding {
	case scene.BindOverall:
		if len(g.Colors) > 0 {
			return g.Colors[0]
		}
	case scene.BindPerVertex:
		if i < len(g.Colors) {
			return g.Colors[i]
		}
	}
	return math.White
}

// stripRange is one strip's slice of the shared index buffer.
type stripRange struct {
	offset int // In indices
	count  int32
}

// flattenStrips joins all strips into one index buffer.
func flattenStrips(strips [][]uint32) ([]uint32, []stripRange) {
	var total int
	for _, s := range strips {
		total += len(s)
	}
	indices := make([]uint32, 0, total)
	ranges := make([]stripRange, 0, len(strips))
	for _, s := range strips {
		if len(s) == 0 {
			continue
		}
		ranges = append(ranges, stripRange{offset: len(indices), count: int32(len(s))})
		indices = append(indices, s...)
	}
	return indices, ranges
}
