package graph

import "github.com/flowpad/flowpad/internal/geom"

// Node is a positioned, sized box on the canvas. Position and size are
// in world units. Payload is owned entirely by surrounding code; the
// engine never inspects it.
type Node struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	W       float64        `json:"w"`
	H       float64        `json:"h"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Pos returns the node's top-left corner.
func (n *Node) Pos() geom.Pt {
	return geom.Pt{X: n.X, Y: n.Y}
}

// Size returns the node's dimensions.
func (n *Node) Size() geom.Size {
	return geom.Size{W: n.W, H: n.H}
}

// Bounds returns the node's world-space rectangle.
func (n *Node) Bounds() geom.Rect {
	return geom.RectAt(n.Pos(), n.Size())
}

// Patch is a shallow-merge update for a node. Nil fields are left
// untouched. Payload, when non-nil, replaces the node's payload wholesale;
// position and size stay with the interaction controllers, so the two
// writers never touch the same field.
type Patch struct {
	X, Y    *float64
	W, H    *float64
	Payload map[string]any
}
