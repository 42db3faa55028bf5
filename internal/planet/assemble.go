package planet

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

var errNoPixels = errors.New("loader returned no image")

// Texture units used by a planet.
const (
	DaySlot   = 0
	NightSlot = 1
)

// DayNightCombiner blends the night layer into the day layer using the primary
// color as weight: result = previous*primary + night*(1-primary).
var DayNightCombiner = scene.Combiner{
	RGB: scene.CombineInterpolate,
	Sources: [3]scene.CombineSource{
		scene.SourcePrevious,
		scene.SourceTexture,
		scene.SourcePrimaryColor,
	},
	Operands: [3]scene.CombineOperand{
		scene.OperandSrcColor,
		scene.OperandSrcColor,
		scene.OperandSrcColor,
	},
}

// Planet is an assembled planet: its mesh, flat color and texture layers,
// exposed to the scene graph through Node.
type Planet struct {
	name   string
	mesh   *MeshBuffers
	color  math.Vec4
	layers []*scene.TextureLayer
	node   *scene.Geode
}

// Name returns the planet's display name.
func (p *Planet) Name() string { return p.name }

// Mesh returns the planet's mesh.
func (p *Planet) Mesh() *MeshBuffers { return p.mesh }

// Color returns the overall color bound to the mesh.
func (p *Planet) Color() math.Vec4 { return p.color }

// Layers returns the attached texture layers, slot 0 first.
func (p *Planet) Layers() []*scene.TextureLayer { return p.layers }

// Node returns the renderable geode.
func (p *Planet) Node() *scene.Geode { return p.node }

// Assembler turns meshes into renderable planets. Images may be nil, in which
// case every planet is flat-colored.
type Assembler struct {
	Images ImageLoader
}

// NewAssembler creates an assembler resolving textures through images.
func NewAssembler(images ImageLoader) *Assembler {
	return &Assembler{Images: images}
}

// Assemble wraps mesh with an overall color and up to two texture layers.
//
// The first path goes to slot 0. The second is only tried once the first is
// attached; it goes to slot 1 together with DayNightCombiner. A path that is empty
// or fails to load drops the planet to the next lower fidelity and is logged,
// never returned. Paths past the second are ignored.
func (a *Assembler) Assemble(mesh *MeshBuffers, name string, color math.Vec4, texturePaths ...string) *Planet {
	log := logger.Named("planet").With(zap.String("planet", name))

	p := &Planet{
		name:  name,
		mesh:  mesh,
		color: color,
		node:  scene.NewGeode(name),
	}
	p.node.SetGeometry(&scene.Geometry{
		Positions: mesh.Positions,
		Normals:   mesh.Normals,
		TexCoords: mesh.TexCoords,
		Colors:    []math.Vec4{color},
		Binding:   scene.BindOverall,
		Mode:      scene.QuadStrip,
		Strips:    mesh.Strips,
	})

	if len(texturePaths) > 2 {
		log.Warn("ignoring extra texture paths", zap.Strings("ignored", texturePaths[2:]))
	}

	if len(texturePaths) < 1 || !a.attach(p, DaySlot, texturePaths[0], log) {
		return p
	}
	if len(texturePaths) < 2 || !a.attach(p, NightSlot, texturePaths[1], log) {
		return p
	}
	p.node.SetCombiner(NightSlot, DayNightCombiner)
	log.Debug("day/night blend enabled")

	return p
}

// attach loads path and binds it to slot, reporting whether it did.
func (a *Assembler) attach(p *Planet, slot int, path string, log *zap.Logger) bool {
	if path == "" {
		return false
	}
	if a.Images == nil {
		log.Warn("no image loader, texture skipped", zap.String("path", path), zap.Int("slot", slot))
		return false
	}

	img, err := a.Images.LoadImage(path)
	if err == nil && img == nil {
		err = errNoPixels
	}
	if err != nil {
		log.Warn("texture unavailable, falling back", zap.String("path", path), zap.Int("slot", slot), zap.Error(err))
		return false
	}

	layer := &scene.TextureLayer{
		Source: path,
		Image:  img,
		WrapS:  scene.WrapRepeat,
		WrapT:  scene.WrapRepeat,
	}
	p.node.SetTexture(slot, layer)
	p.layers = append(p.layers, layer)

	log.Debug("texture attached",
		zap.String("path", path),
		zap.Int("slot", slot),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return true
}
