package scene

import (
	"image"
	"sort"

	"github.com/Faultbox/orrery/pkg/math"
)

// ColorBinding says how a geometry's color array maps onto its vertices.
type ColorBinding int

const (
	BindOff ColorBinding = iota
	BindOverall
	BindPerVertex
)

// PrimitiveMode is the connectivity of each index strip.
type PrimitiveMode int

const (
	QuadStrip PrimitiveMode = iota
	TriangleStrip
)

// Geometry is the vertex data and strip connectivity of one drawable.
// The slices are shared with the producer and must not be mutated after attach.
type Geometry struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Colors    []math.Vec4
	Binding   ColorBinding
	Mode      PrimitiveMode
	Strips    [][]uint32
}

// IndexCount returns the total number of indices across all strips.
func (g *Geometry) IndexCount() int {
	n := 0
	for _, s := range g.Strips {
		n += len(s)
	}
	return n
}

// WrapMode is the texture addressing mode along one axis.
type WrapMode int

const (
	WrapClamp WrapMode = iota
	WrapRepeat
)

// TextureLayer is a 2D texture bound to a texture unit.
type TextureLayer struct {
	Source string
	Image  *image.RGBA
	WrapS  WrapMode
	WrapT  WrapMode
}

// CombineMode is the function a texture unit's combiner applies.
type CombineMode int

const (
	CombineModulate CombineMode = iota
	CombineReplace
	CombineInterpolate
)

// CombineSource selects a combiner input.
type CombineSource int

const (
	SourcePrevious CombineSource = iota
	SourceTexture
	SourcePrimaryColor
	SourceConstant
)

// CombineOperand selects which part of a combiner input is used.
type CombineOperand int

const (
	OperandSrcColor CombineOperand = iota
	OperandOneMinusSrcColor
	OperandSrcAlpha
)

// Combiner is a fixed-function texture environment for one texture unit.
// With CombineInterpolate the RGB result is
// Source0*Source2 + Source1*(1-Source2).
type Combiner struct {
	RGB      CombineMode
	Sources  [3]CombineSource
	Operands [3]CombineOperand
}

// Geode is a leaf node holding one drawable and its render state.
type Geode struct {
	base
	geometry  *Geometry
	textures  map[int]*TextureLayer
	combiners map[int]Combiner
}

// NewGeode creates an empty geode.
func NewGeode(name string) *Geode {
	return &Geode{
		base:      base{name: name},
		textures:  make(map[int]*TextureLayer),
		combiners: make(map[int]Combiner),
	}
}

// Children returns nil; geodes are leaves.
func (g *Geode) Children() []Node { return nil }

// SetGeometry attaches the drawable's geometry.
func (g *Geode) SetGeometry(geom *Geometry) { g.geometry = geom }

// Geometry returns the attached geometry, or nil.
func (g *Geode) Geometry() *Geometry { return g.geometry }

// SetTexture binds a texture layer to a texture unit.
func (g *Geode) SetTexture(slot int, layer *TextureLayer) {
	if layer == nil {
		delete(g.textures, slot)
		return
	}
	g.textures[slot] = layer
}

// Texture returns the layer bound to slot.
func (g *Geode) Texture(slot int) (*TextureLayer, bool) {
	l, ok := g.textures[slot]
	return l, ok
}

// TextureSlots returns the bound texture units in ascending order.
func (g *Geode) TextureSlots() []int {
	slots := make([]int, 0, len(g.textures))
	for s := range g.textures {
		slots = append(slots, s)
	}
	sort.Ints(slots)
	return slots
}

// SetCombiner sets the texture environment of a texture unit.
func (g *Geode) SetCombiner(slot int, c Combiner) { g.combiners[slot] = c }

// Combiner returns the texture environment of slot.
func (g *Geode) Combiner(slot int) (Combiner, bool) {
	c, ok := g.combiners[slot]
	return c, ok
}
