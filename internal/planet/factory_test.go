package planet

import (
	"errors"
	"testing"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

func smallOptions(name string) Options {
	return Options{
		Sphere: SphereParams{
			Radius:            2,
			Name:              name,
			BaseColor:         math.White,
			LongitudeSegments: 6,
			LatitudeSegments:  4,
		},
		Rotation: DefaultRotationState(),
	}
}

func TestCreatePlanet(t *testing.T) {
	opts := smallOptions("Mercury")
	opts.Texture = "mercury.png"

	p, err := NewAssembler(newFakeImages("mercury.png")).CreatePlanet(opts)
	if err != nil {
		t.Fatalf("CreatePlanet() error: %v", err)
	}
	if p.Mesh().VertexCount() != 24 {
		t.Errorf("expected 24 vertices, got %d", p.Mesh().VertexCount())
	}
	if len(p.Layers()) != 1 {
		t.Errorf("expected 1 layer, got %d", len(p.Layers()))
	}
}

func TestCreatePlanetInvalid(t *testing.T) {
	opts := smallOptions("Bad")
	opts.Sphere.Radius = -3

	p, err := NewAssembler(nil).CreatePlanet(opts)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("CreatePlanet() error = %v, want ErrInvalidParameter", err)
	}
	if p != nil {
		t.Error("no planet should be returned on error")
	}
}

func TestCreateRotatingPlanet(t *testing.T) {
	xform, anim, err := NewAssembler(nil).CreateRotatingPlanet(smallOptions("Mars"))
	if err != nil {
		t.Fatalf("CreateRotatingPlanet() error: %v", err)
	}

	if xform.Matrix() != math.Identity() {
		t.Error("new transform should start at identity")
	}
	if len(xform.Children()) != 1 {
		t.Fatalf("expected 1 child, got %d", len(xform.Children()))
	}
	if g, ok := xform.Children()[0].(*scene.Geode); !ok || g.Name() != "Mars" {
		t.Errorf("child = %v, want the Mars geode", xform.Children()[0])
	}
	if anim.Transform() != xform {
		t.Error("animator should be bound to the returned transform")
	}

	scene.Update(xform, scene.FrameStamp{SimulationTime: 10})
	if !xform.Matrix().ApproxEqual(math.RotateZ(1), 1e-6) {
		t.Errorf("after update at t=10 matrix = %v, want 1 rad", xform.Matrix())
	}
}

func TestCreateEarth(t *testing.T) {
	images := newFakeImages(
		"Images/land_shallow_topo_2048.jpg",
		"Images/land_ocean_ice_lights_2048.jpg",
	)
	sys, err := NewAssembler(images).CreateEarth()
	if err != nil {
		t.Fatalf("CreateEarth() error: %v", err)
	}

	if sys.Clear == nil || sys.Clear.Color != math.Black {
		t.Errorf("expected a black clear node, got %+v", sys.Clear)
	}
	if sys.Root.Children()[0] != sys.Clear {
		t.Error("clear node should be the first child")
	}
	if len(sys.Bodies) != 1 {
		t.Fatalf("expected 1 body, got %d", len(sys.Bodies))
	}

	earth := sys.Bodies[0]
	if earth.Planet.Name() != "Earth" {
		t.Errorf("expected Earth, got %s", earth.Planet.Name())
	}
	if earth.Planet.Mesh().Longitude != 100 || earth.Planet.Mesh().Latitude != 50 {
		t.Error("Earth should use the default 100x50 resolution")
	}
	if len(earth.Planet.Layers()) != 2 {
		t.Errorf("expected day and night layers, got %d", len(earth.Planet.Layers()))
	}
	if _, ok := earth.Planet.Node().Combiner(NightSlot); !ok {
		t.Error("expected the day/night combiner")
	}
	if !earth.Animator.Enabled() || earth.Animator.VelocityScale() != 0.1 {
		t.Errorf("unexpected rotation state %+v", earth.Animator.State())
	}
	if scene.Find(sys.Root, "Earth") != earth.Planet.Node() {
		t.Error("Earth geode should be reachable from the root")
	}
}

func TestCreateEarthWithoutImages(t *testing.T) {
	sys, err := NewAssembler(newFakeImages()).CreateEarth()
	if err != nil {
		t.Fatalf("CreateEarth() error: %v", err)
	}
	if n := len(sys.Bodies[0].Planet.Layers()); n != 0 {
		t.Errorf("expected a flat Earth without images, got %d layers", n)
	}
}

func TestBuildSystem(t *testing.T) {
	mars := config.DefaultPlanet()
	mars.Name = "Mars"
	mars.Radius = 5
	mars.LongitudeSegments, mars.LatitudeSegments = 8, 5
	mars.Offset = [3]float32{100, 0, 0}
	mars.Rotation.VelocityScale = 0.5

	moon := config.DefaultPlanet()
	moon.Name = "Moon"
	moon.Radius = 1
	moon.LongitudeSegments, moon.LatitudeSegments = 9, 3
	moon.Offset = [3]float32{-20, 0, 0}
	moon.Rotation.Enabled = false

	sys, err := NewAssembler(nil).BuildSystem(config.SceneConfig{
		ClearColor: math.Vec4{0, 0, 0.1, 1},
		Planets:    []config.PlanetConfig{mars, moon},
	})
	if err != nil {
		t.Fatalf("BuildSystem() error: %v", err)
	}
	if len(sys.Bodies) != 2 || len(sys.Animators()) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(sys.Bodies))
	}

	scene.Update(sys.Root, scene.FrameStamp{SimulationTime: 2})

	if !sys.Bodies[0].Spin.Matrix().ApproxEqual(math.RotateZ(1), 1e-6) {
		t.Errorf("Mars spin = %v, want 1 rad", sys.Bodies[0].Spin.Matrix())
	}
	if sys.Bodies[1].Spin.Matrix() != math.Identity() {
		t.Error("Moon rotation is disabled and should stay at identity")
	}
	if sys.Bodies[0].Offset.Matrix() != math.Translate(100, 0, 0) {
		t.Error("offset transform should not be touched by the spin")
	}

	b := sys.Bounds()
	if !math.ApproxEqual(b.Min[0], -21, 1e-3) || !math.ApproxEqual(b.Max[0], 105, 1e-3) {
		t.Errorf("system x bounds = [%v, %v], want [-21, 105]", b.Min[0], b.Max[0])
	}
}

func TestBuildSystemInvalidPlanet(t *testing.T) {
	bad := config.DefaultPlanet()
	bad.Name = "Bad"
	bad.LatitudeSegments = 1

	_, err := NewAssembler(nil).BuildSystem(config.SceneConfig{Planets: []config.PlanetConfig{bad}})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("BuildSystem() error = %v, want ErrInvalidParameter", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	pc := config.EarthPlanet()
	opts := OptionsFromConfig(pc)

	if opts.Sphere.Name != "Earth" || opts.Sphere.Radius != 100 {
		t.Errorf("unexpected sphere params %+v", opts.Sphere)
	}
	if opts.Texture != pc.Texture || opts.NightTexture != pc.NightTexture {
		t.Error("texture paths should carry over")
	}
	if opts.Rotation.Axis != math.UnitZ || !opts.Rotation.Enabled {
		t.Errorf("unexpected rotation %+v", opts.Rotation)
	}
}
