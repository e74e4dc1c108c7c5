// Package graph holds the authoritative pipeline state: nodes on the
// canvas and the directed connections between their ports.
package graph

import (
	"github.com/google/uuid"

	"github.com/flowpad/flowpad/internal/geom"
)

// Graph is the node store and connection store. All mutation happens on
// the single event-handling path; Graph itself is not synchronized.
type Graph struct {
	rules Rules
	nodes map[string]*Node
	order []string // insertion order for deterministic iteration and hit-test stacking
	conns []Connection
}

// New creates an empty graph governed by the given type rules.
func New(rules Rules) *Graph {
	return &Graph{
		rules: rules,
		nodes: make(map[string]*Node),
	}
}

// Rules returns the type rules the graph was built with.
func (g *Graph) Rules() Rules {
	return g.rules
}

// AddNode inserts a node and returns it. An empty ID is assigned a fresh
// uuid; zero size is filled from the type's default and clamped at the
// type minimum. Adding an ID that already exists returns nil.
func (g *Graph) AddNode(n Node) *Node {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if _, exists := g.nodes[n.ID]; exists {
		return nil
	}
	if n.W == 0 && n.H == 0 {
		n.W, n.H = g.rules.Spec(n.Type).DefaultSize.W, g.rules.Spec(n.Type).DefaultSize.H
	}
	g.clampSize(&n)

	node := &n
	g.nodes[n.ID] = node
	g.order = append(g.order, n.ID)
	return node
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		if n, ok := g.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// UpdateNode shallow-merges a patch into the node. Size fields are
// clamped at the type minimum. Returns false if the node does not exist.
func (g *Graph) UpdateNode(id string, p Patch) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	if p.X != nil {
		n.X = *p.X
	}
	if p.Y != nil {
		n.Y = *p.Y
	}
	if p.W != nil {
		n.W = *p.W
	}
	if p.H != nil {
		n.H = *p.H
	}
	if p.Payload != nil {
		n.Payload = p.Payload
	}
	g.clampSize(n)
	return true
}

// MoveNode sets a node's position.
func (g *Graph) MoveNode(id string, x, y float64) bool {
	return g.UpdateNode(id, Patch{X: &x, Y: &y})
}

// ResizeNode sets a node's size, clamped at the type minimum.
func (g *Graph) ResizeNode(id string, w, h float64) bool {
	return g.UpdateNode(id, Patch{W: &w, H: &h})
}

// RemoveNode deletes the node and cascade-deletes every connection that
// touches it. Returns false if the node does not exist.
func (g *Graph) RemoveNode(id string) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	delete(g.nodes, id)

	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	filtered := g.conns[:0]
	for _, c := range g.conns {
		if c.From != id && c.To != id {
			filtered = append(filtered, c)
		}
	}
	g.conns = filtered
	return true
}

// NodeAt returns the topmost node whose bounds contain the world point,
// or nil. Later-added nodes stack on top.
func (g *Graph) NodeAt(p geom.Pt) *Node {
	for i := len(g.order) - 1; i >= 0; i-- {
		n := g.nodes[g.order[i]]
		if n != nil && n.Bounds().Contains(p) {
			return n
		}
	}
	return nil
}

func (g *Graph) clampSize(n *Node) {
	min := g.rules.MinSize(n.Type)
	if n.W < min.W {
		n.W = min.W
	}
	if n.H < min.H {
		n.H = min.H
	}
}
