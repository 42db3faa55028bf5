package scene

import "github.com/Faultbox/orrery/pkg/math"

// Update runs the update traversal: every node's callbacks fire before its
// children are visited. It must finish before the frame is rendered.
func Update(root Node, fs FrameStamp) {
	if root == nil {
		return
	}
	for _, cb := range root.UpdateCallbacks() {
		cb.Update(fs)
	}
	for _, child := range root.Children() {
		Update(child, fs)
	}
}

// Walk visits every node depth-first with its accumulated world matrix.
// Returning false from fn skips the node's children.
func Walk(root Node, fn func(n Node, world math.Mat4) bool) {
	walk(root, math.Identity(), fn)
}

func walk(n Node, parent math.Mat4, fn func(Node, math.Mat4) bool) {
	if n == nil {
		return
	}
	world := parent
	if t, ok := n.(*Transform); ok {
		world = parent.Mul(t.Matrix())
	}
	if !fn(n, world) {
		return
	}
	for _, child := range n.Children() {
		walk(child, world, fn)
	}
}

// Find returns the first node named name, depth-first.
func Find(root Node, name string) Node {
	var found Node
	Walk(root, func(n Node, _ math.Mat4) bool {
		if found != nil {
			return false
		}
		if n.Name() == name {
			found = n
			return false
		}
		return true
	})
	return found
}
