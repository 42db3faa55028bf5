package planet

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

// Options describes a planet to create.
type Options struct {
	Sphere       SphereParams
	Texture      string // Day map, slot 0
	NightTexture string // Night map, slot 1; only used when Texture loads
	Rotation     RotationState
}

// OptionsFromConfig converts a configured planet into creation options.
func OptionsFromConfig(pc config.PlanetConfig) Options {
	return Options{
		Sphere: SphereParams{
			Radius:            pc.Radius,
			Name:              pc.Name,
			BaseColor:         pc.Color,
			LongitudeSegments: pc.LongitudeSegments,
			LatitudeSegments:  pc.LatitudeSegments,
		},
		Texture:      pc.Texture,
		NightTexture: pc.NightTexture,
		Rotation: RotationState{
			Enabled:       pc.Rotation.Enabled,
			VelocityScale: pc.Rotation.VelocityScale,
			Axis:          math.UnitZ,
		},
	}
}

// CreatePlanet builds the sphere and assembles it. Only sphere parameter errors
// are returned; texture problems just lower the fidelity.
func (a *Assembler) CreatePlanet(opts Options) (*Planet, error) {
	mesh, err := BuildSphereParams(opts.Sphere)
	if err != nil {
		return nil, err
	}
	return a.Assemble(mesh, opts.Sphere.Name, opts.Sphere.BaseColor, opts.Texture, opts.NightTexture), nil
}

// CreateRotatingPlanet wraps a new planet in a transform spun by a RotationAnimator.
func (a *Assembler) CreateRotatingPlanet(opts Options) (*scene.Transform, *RotationAnimator, error) {
	_, xform, anim, err := a.createRotating(opts)
	return xform, anim, err
}

func (a *Assembler) createRotating(opts Options) (*Planet, *scene.Transform, *RotationAnimator, error) {
	p, err := a.CreatePlanet(opts)
	if err != nil {
		return nil, nil, nil, err
	}

	xform := scene.NewTransform(opts.Sphere.Name + " rotation")
	xform.AddChild(p.Node())

	anim := NewRotationAnimator(xform, opts.Rotation)
	xform.AddUpdateCallback(anim)

	return p, xform, anim, nil
}

// CreateEarth builds the classic scene: a black clear node and a day/night textured
// Earth of radius 100 spinning about +Z.
func (a *Assembler) CreateEarth() (*System, error) {
	return a.BuildSystem(config.SceneConfig{
		ClearColor: math.Black,
		Planets:    []config.PlanetConfig{config.EarthPlanet()},
	})
}

// Body is one planet placed in a System.
type Body struct {
	Planet   *Planet
	Offset   *scene.Transform // Static placement
	Spin     *scene.Transform // Driven by Animator
	Animator *RotationAnimator
}

// System is a scene of planets under one root, cleared to a background color.
type System struct {
	Root   *scene.Group
	Clear  *scene.ClearNode
	Bodies []*Body
}

// Animators returns every body's animator.
func (s *System) Animators() []*RotationAnimator {
	out := make([]*RotationAnimator, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = b.Animator
	}
	return out
}

// Bounds returns the world-space box enclosing every body at rest.
func (s *System) Bounds() Bounds {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, body := range s.Bodies {
		mb := body.Planet.Mesh().Bounds()
		m := body.Offset.Matrix()
		updateBounds(&b, m.TransformVec3(math.Vec3{X: mb.Min[0], Y: mb.Min[1], Z: mb.Min[2]}).Array())
		updateBounds(&b, m.TransformVec3(math.Vec3{X: mb.Max[0], Y: mb.Max[1], Z: mb.Max[2]}).Array())
	}
	return b
}

// BuildSystem creates every configured planet under a single root.
// Any planet with invalid sphere parameters fails the whole build.
func (a *Assembler) BuildSystem(cfg config.SceneConfig) (*System, error) {
	sys := &System{
		Root:  scene.NewGroup("system"),
		Clear: scene.NewClearNode(cfg.ClearColor),
	}
	sys.Root.AddChild(sys.Clear)

	for _, pc := range cfg.Planets {
		p, spin, anim, err := a.createRotating(OptionsFromConfig(pc))
		if err != nil {
			return nil, fmt.Errorf("building planet %q: %w", pc.Name, err)
		}

		offset := scene.NewTransform(pc.Name + " offset")
		offset.SetMatrix(math.Translate(pc.Offset[0], pc.Offset[1], pc.Offset[2]))
		offset.AddChild(spin)
		sys.Root.AddChild(offset)

		sys.Bodies = append(sys.Bodies, &Body{
			Planet:   p,
			Offset:   offset,
			Spin:     spin,
			Animator: anim,
		})
	}

	logger.Named("planet").Info("system built", zap.Int("planets", len(sys.Bodies)))
	return sys, nil
}
