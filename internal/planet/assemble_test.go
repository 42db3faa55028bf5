package planet

import (
	"fmt"
	"image"
	"testing"

	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

// fakeImages resolves paths from a fixed map and records every request.
type fakeImages struct {
	images map[string]*image.RGBA
	calls  []string
}

func newFakeImages(paths ...string) *fakeImages {
	f := &fakeImages{images: make(map[string]*image.RGBA)}
	for _, p := range paths {
		f.images[p] = image.NewRGBA(image.Rect(0, 0, 4, 2))
	}
	return f
}

func (f *fakeImages) LoadImage(path string) (*image.RGBA, error) {
	f.calls = append(f.calls, path)
	img, ok := f.images[path]
	if !ok {
		return nil, fmt.Errorf("%s: not found", path)
	}
	return img, nil
}

func testMesh(t *testing.T) *MeshBuffers {
	t.Helper()
	mesh, err := BuildSphere(1, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	return mesh
}

func assertFlat(t *testing.T, p *Planet, color math.Vec4) {
	t.Helper()
	if len(p.Layers()) != 0 {
		t.Errorf("expected no texture layers, got %d", len(p.Layers()))
	}
	if slots := p.Node().TextureSlots(); len(slots) != 0 {
		t.Errorf("expected no bound texture units, got %v", slots)
	}
	if _, ok := p.Node().Combiner(NightSlot); ok {
		t.Error("expected no combiner")
	}
	geom := p.Node().Geometry()
	if geom.Binding != scene.BindOverall || len(geom.Colors) != 1 || geom.Colors[0] != color {
		t.Errorf("expected overall color %v, got %v bound %v", color, geom.Colors, geom.Binding)
	}
}

func TestAssembleNoTextures(t *testing.T) {
	mesh := testMesh(t)
	color := math.Vec4{0.8, 0.4, 0.2, 1}

	p := NewAssembler(newFakeImages()).Assemble(mesh, "Mars", color)

	if p.Name() != "Mars" || p.Node().Name() != "Mars" {
		t.Errorf("expected name Mars, got %q / %q", p.Name(), p.Node().Name())
	}
	if p.Color() != color {
		t.Errorf("Color() = %v, want %v", p.Color(), color)
	}
	if p.Mesh() != mesh {
		t.Error("planet should own the given mesh")
	}
	assertFlat(t, p, color)

	geom := p.Node().Geometry()
	if len(geom.Positions) != mesh.VertexCount() || len(geom.Strips) != len(mesh.Strips) {
		t.Error("geometry should carry the mesh buffers")
	}
	if geom.Mode != scene.QuadStrip {
		t.Errorf("expected quad strips, got %v", geom.Mode)
	}
}

func TestAssembleSingleTexture(t *testing.T) {
	images := newFakeImages("moon.png")
	p := NewAssembler(images).Assemble(testMesh(t), "Moon", math.White, "moon.png")

	if len(p.Layers()) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(p.Layers()))
	}
	layer, ok := p.Node().Texture(DaySlot)
	if !ok {
		t.Fatal("expected texture on slot 0")
	}
	if layer.Source != "moon.png" || layer.Image != images.images["moon.png"] {
		t.Errorf("unexpected layer %+v", layer)
	}
	if layer.WrapS != scene.WrapRepeat || layer.WrapT != scene.WrapRepeat {
		t.Error("texture should repeat on both axes")
	}
	if _, ok := p.Node().Combiner(NightSlot); ok {
		t.Error("single texture should not set a combiner")
	}
}

func TestAssembleMissingTextureFallsBack(t *testing.T) {
	color := math.Vec4{0.2, 0.3, 0.9, 1}
	images := newFakeImages()

	p := NewAssembler(images).Assemble(testMesh(t), "Neptune", color, "missing.png")

	assertFlat(t, p, color)
	if len(images.calls) != 1 {
		t.Errorf("expected exactly one load attempt, got %v", images.calls)
	}
}

func TestAssembleDayNight(t *testing.T) {
	images := newFakeImages("day.jpg", "night.jpg")
	p := NewAssembler(images).Assemble(testMesh(t), "Earth", math.White, "day.jpg", "night.jpg")

	if len(p.Layers()) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(p.Layers()))
	}
	day, ok := p.Node().Texture(DaySlot)
	if !ok || day.Source != "day.jpg" {
		t.Errorf("slot 0 = %+v, want day.jpg", day)
	}
	night, ok := p.Node().Texture(NightSlot)
	if !ok || night.Source != "night.jpg" {
		t.Errorf("slot 1 = %+v, want night.jpg", night)
	}
	if night.WrapS != scene.WrapRepeat || night.WrapT != scene.WrapRepeat {
		t.Error("night texture should repeat on both axes")
	}

	c, ok := p.Node().Combiner(NightSlot)
	if !ok {
		t.Fatal("expected a combiner on slot 1")
	}
	if c.RGB != scene.CombineInterpolate {
		t.Errorf("combiner mode = %v, want interpolate", c.RGB)
	}
	wantSources := [3]scene.CombineSource{scene.SourcePrevious, scene.SourceTexture, scene.SourcePrimaryColor}
	if c.Sources != wantSources {
		t.Errorf("combiner sources = %v, want %v", c.Sources, wantSources)
	}
	for i, op := range c.Operands {
		if op != scene.OperandSrcColor {
			t.Errorf("operand %d = %v, want source color", i, op)
		}
	}
	if _, ok := p.Node().Combiner(DaySlot); ok {
		t.Error("slot 0 should keep the default environment")
	}
}

func TestAssembleSecondTextureMissing(t *testing.T) {
	images := newFakeImages("day.jpg")
	p := NewAssembler(images).Assemble(testMesh(t), "Earth", math.White, "day.jpg", "night.jpg")

	if len(p.Layers()) != 1 {
		t.Errorf("expected 1 layer, got %d", len(p.Layers()))
	}
	if _, ok := p.Node().Texture(NightSlot); ok {
		t.Error("slot 1 should be empty")
	}
	if _, ok := p.Node().Combiner(NightSlot); ok {
		t.Error("no combiner without a second texture")
	}
}

func TestAssembleFirstTextureMissingSkipsSecond(t *testing.T) {
	color := math.Vec4{0.5, 0.5, 0.5, 1}
	images := newFakeImages("night.jpg")

	p := NewAssembler(images).Assemble(testMesh(t), "Earth", color, "day.jpg", "night.jpg")

	assertFlat(t, p, color)
	if len(images.calls) != 1 || images.calls[0] != "day.jpg" {
		t.Errorf("second texture must not be tried after the first fails, calls = %v", images.calls)
	}
}

func TestAssembleEmptyPaths(t *testing.T) {
	images := newFakeImages("night.jpg")
	p := NewAssembler(images).Assemble(testMesh(t), "Venus", math.White, "", "night.jpg")

	assertFlat(t, p, math.White)
	if len(images.calls) != 0 {
		t.Errorf("empty path should not hit the loader, calls = %v", images.calls)
	}
}

func TestAssembleNilLoader(t *testing.T) {
	p := NewAssembler(nil).Assemble(testMesh(t), "Io", math.White, "io.png")
	assertFlat(t, p, math.White)
}

func TestAssembleNilImage(t *testing.T) {
	images := newFakeImages()
	images.images["blank.png"] = nil

	p := NewAssembler(images).Assemble(testMesh(t), "Blank", math.White, "blank.png")
	assertFlat(t, p, math.White)
}

func TestAssembleExtraPathsIgnored(t *testing.T) {
	images := newFakeImages("a.png", "b.png", "c.png")
	p := NewAssembler(images).Assemble(testMesh(t), "Saturn", math.White, "a.png", "b.png", "c.png")

	if len(p.Layers()) != 2 {
		t.Errorf("expected 2 layers, got %d", len(p.Layers()))
	}
	for _, c := range images.calls {
		if c == "c.png" {
			t.Error("third texture should never be loaded")
		}
	}
}
