package renderer

import (
	"image"
	"testing"

	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

func layer() *scene.TextureLayer {
	return &scene.TextureLayer{Image: image.NewRGBA(image.Rect(0, 0, 1, 1)), WrapS: scene.WrapRepeat, WrapT: scene.WrapRepeat}
}

func TestShadingMode(t *testing.T) {
	interp := scene.Combiner{
		RGB:     scene.CombineInterpolate,
		Sources: [3]scene.CombineSource{scene.SourcePrevious, scene.SourceTexture, scene.SourcePrimaryColor},
	}

	tests := []struct {
		name  string
		setup func(g *scene.Geode)
		want  int32
	}{
		{"untextured", func(g *scene.Geode) {}, modeFlat},
		{"day only", func(g *scene.Geode) { g.SetTexture(0, layer()) }, modeTextured},
		{"second unit without combiner", func(g *scene.Geode) {
			g.SetTexture(0, layer())
			g.SetTexture(1, layer())
		}, modeTextured},
		{"day and night", func(g *scene.Geode) {
			g.SetTexture(0, layer())
			g.SetTexture(1, layer())
			g.SetCombiner(1, interp)
		}, modeInterpolate},
		{"modulate combiner", func(g *scene.Geode) {
			g.SetTexture(0, layer())
			g.SetTexture(1, layer())
			g.SetCombiner(1, scene.Combiner{RGB: scene.CombineModulate})
		}, modeTextured},
		{"night only", func(g *scene.Geode) {
			g.SetTexture(1, layer())
			g.SetCombiner(1, interp)
		}, modeFlat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := scene.NewGeode("g")
			tt.setup(g)
			if got := shadingMode(g); got != tt.want {
				t.Errorf("shadingMode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPackVertices(t *testing.T) {
	g := &scene.Geometry{
		Positions: []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}},
		Normals:   []math.Vec3{{X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}},
		TexCoords: []math.Vec2{{X: 0.25, Y: 0.5}, {X: 1, Y: 1}},
		Colors:    []math.Vec4{{0.5, 0.5, 0.5, 1}},
		Binding:   scene.BindOverall,
	}

	v := packVertices(g)
	if len(v) != 2*floatsPerVertex {
		t.Fatalf("len = %d, want %d", len(v), 2*floatsPerVertex)
	}
	want := []float32{1, 2, 3, 0, 0, 1, 0.25, 0.5, 0.5, 0.5, 0.5, 1}
	for i, w := range want {
		if v[i] != w {
			t.Errorf("v[%d] = %f, want %f", i, v[i], w)
		}
	}
	if v[floatsPerVertex+8] != 0.5 {
		t.Error("overall color should repeat on every vertex")
	}
}

func TestPackVerticesDefaultsToWhite(t *testing.T) {
	g := &scene.Geometry{Positions: []math.Vec3{{}}, Binding: scene.BindOff}
	v := packVertices(g)
	for i := 8; i < 12; i++ {
		if v[i] != 1 {
			t.Errorf("color component %d = %f, want 1", i-8, v[i])
		}
	}
}

func TestFlattenStrips(t *testing.T) {
	indices, ranges := flattenStrips([][]uint32{{3, 0, 4, 1}, {}, {6, 3, 7, 4}})
	if len(indices) != 8 {
		t.Fatalf("len(indices) = %d, want 8", len(indices))
	}
	if len(ranges) != 2 {
		t.Fatalf("len(ranges) = %d, want 2 (empty strip skipped)", len(ranges))
	}
	if ranges[1].offset != 4 || ranges[1].count != 4 {
		t.Errorf("ranges[1] = %+v, want offset 4 count 4", ranges[1])
	}
	if indices[4] != 6 {
		t.Errorf("indices[4] = %d, want 6", indices[4])
	}
}

func TestCollect(t *testing.T) {
	root := scene.NewGroup("root")
	root.AddChild(scene.NewClearNode(math.Vec4{0.1, 0.2, 0.3, 1}))

	xform := scene.NewTransform("offset")
	xform.SetMatrix(math.Translate(10, 0, 0))
	root.AddChild(xform)

	withGeom := scene.NewGeode("planet")
	withGeom.SetGeometry(&scene.Geometry{Positions: []math.Vec3{{}}})
	xform.AddChild(withGeom)
	xform.AddChild(scene.NewGeode("empty"))

	f := collect(root)
	if f.clear == nil || f.clear[2] != 0.3 {
		t.Errorf("clear = %v, want the clear node color", f.clear)
	}
	if len(f.items) != 1 || f.items[0].geode != withGeom {
		t.Fatalf("items = %+v, want only the geode with geometry", f.items)
	}
	p := f.items[0].world.TransformVec3(math.Vec3{})
	if p.X != 10 {
		t.Errorf("world origin = %+v, want x=10", p)
	}
}

func TestCollectWithoutClearNode(t *testing.T) {
	if f := collect(scene.NewGroup("root")); f.clear != nil {
		t.Errorf("clear = %v, want nil", f.clear)
	}
}
