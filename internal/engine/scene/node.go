// Package scene provides the scene graph the viewer renders: grouping nodes,
// transforms driven by per-frame update callbacks, and renderable geodes.
package scene

import "github.com/Faultbox/orrery/pkg/math"

// FrameStamp carries the clock values of the frame being updated.
type FrameStamp struct {
	Frame          uint64
	SimulationTime float64 // Seconds of simulated time since the scene started
}

// UpdateCallback is invoked once per frame during the update traversal.
type UpdateCallback interface {
	Update(fs FrameStamp)
}

// UpdateFunc adapts a plain function to UpdateCallback.
type UpdateFunc func(fs FrameStamp)

// Update calls f(fs).
func (f UpdateFunc) Update(fs FrameStamp) {
	f(fs)
}

// Node is an element of the scene graph.
type Node interface {
	Name() string
	Children() []Node
	UpdateCallbacks() []UpdateCallback
}

// base carries the name and update callbacks every node kind shares.
type base struct {
	name      string
	callbacks []UpdateCallback
}

// Name returns the node's display name.
func (b *base) Name() string { return b.name }

// SetName sets the node's display name.
func (b *base) SetName(name string) { b.name = name }

// UpdateCallbacks returns the callbacks attached to the node, in attach order.
func (b *base) UpdateCallbacks() []UpdateCallback { return b.callbacks }

// AddUpdateCallback attaches a per-frame callback to the node.
func (b *base) AddUpdateCallback(cb UpdateCallback) {
	if cb != nil {
		b.callbacks = append(b.callbacks, cb)
	}
}

// Group is a node with ordered children.
type Group struct {
	base
	children []Node
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{base: base{name: name}}
}

// AddChild appends a child. Nil children are ignored.
func (g *Group) AddChild(child Node) {
	if child != nil {
		g.children = append(g.children, child)
	}
}

// Children returns the group's children in order.
func (g *Group) Children() []Node { return g.children }

// Transform is a group whose children are placed by a local matrix.
type Transform struct {
	Group
	matrix math.Mat4
}

// NewTransform creates a transform holding the identity matrix.
func NewTransform(name string) *Transform {
	return &Transform{
		Group:  Group{base: base{name: name}},
		matrix: math.Identity(),
	}
}

// Matrix returns the local matrix.
func (t *Transform) Matrix() math.Mat4 { return t.matrix }

// SetMatrix replaces the local matrix.
func (t *Transform) SetMatrix(m math.Mat4) { t.matrix = m }

// ClearNode tells the renderer which color to clear the frame with.
type ClearNode struct {
	base
	Color math.Vec4
}

// NewClearNode creates a clear node with the given color.
func NewClearNode(color math.Vec4) *ClearNode {
	return &ClearNode{base: base{name: "clear"}, Color: color}
}

// Children returns nil; clear nodes are leaves.
func (c *ClearNode) Children() []Node { return nil }
