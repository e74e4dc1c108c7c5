package canvas

import (
	"github.com/flowpad/flowpad/internal/geom"
	"github.com/flowpad/flowpad/internal/graph"
)

// Hit geometry, all in world units. The input port sits at the left-edge
// center; output ports are spread evenly down the right edge; the resize
// handle is a square tucked into the bottom-right corner.
const (
	// PortRadius is the hit radius around a port center.
	PortRadius = 8.0
	// HandleSize is the side of the resize handle square.
	HandleSize = 14.0
)

// InputPortPos returns the world position of a node's input port.
func InputPortPos(n *graph.Node) geom.Pt {
	return geom.Pt{X: n.X, Y: n.Y + n.H/2}
}

// OutPortNames returns the node's output port names, with a single
// unnamed port for types that declare none.
func OutPortNames(rules graph.Rules, n *graph.Node) []string {
	if names := rules.OutPorts(n.Type); len(names) > 0 {
		return names
	}
	return []string{""}
}

// OutPortPos returns the world position of output port i of count.
func OutPortPos(n *graph.Node, i, count int) geom.Pt {
	return geom.Pt{
		X: n.X + n.W,
		Y: n.Y + n.H*float64(i+1)/float64(count+1),
	}
}

// OutPortPosNamed resolves a named output port to its world position,
// falling back to the first port for unknown names.
func OutPortPosNamed(rules graph.Rules, n *graph.Node, port string) geom.Pt {
	names := OutPortNames(rules, n)
	for i, name := range names {
		if name == port {
			return OutPortPos(n, i, len(names))
		}
	}
	return OutPortPos(n, 0, len(names))
}

// HandleRect returns the resize handle rectangle for a node.
func HandleRect(n *graph.Node) geom.Rect {
	return geom.Rect{
		Min: geom.Pt{X: n.X + n.W - HandleSize, Y: n.Y + n.H - HandleSize},
		Max: geom.Pt{X: n.X + n.W, Y: n.Y + n.H},
	}
}

func inRadius(p, center geom.Pt, r float64) bool {
	dx, dy := p.X-center.X, p.Y-center.Y
	return dx*dx+dy*dy <= r*r
}

// portAt returns the port under the world point, checking topmost nodes
// first. Ports overhang node edges, so candidacy uses bounds inflated by
// the port radius.
func (c *Canvas) portAt(world geom.Pt) (PortRef, bool) {
	nodes := c.Graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		b := n.Bounds()
		inflated := geom.Rect{
			Min: geom.Pt{X: b.Min.X - PortRadius, Y: b.Min.Y - PortRadius},
			Max: geom.Pt{X: b.Max.X + PortRadius, Y: b.Max.Y + PortRadius},
		}
		if !inflated.Contains(world) {
			continue
		}
		if inRadius(world, InputPortPos(n), PortRadius) {
			return PortRef{Node: n.ID, Dir: PortIn}, true
		}
		names := OutPortNames(c.Graph.Rules(), n)
		for i, name := range names {
			if inRadius(world, OutPortPos(n, i, len(names)), PortRadius) {
				return PortRef{Node: n.ID, Port: name, Dir: PortOut}, true
			}
		}
	}
	return PortRef{}, false
}

// handleAt returns the node whose resize handle contains the world
// point, topmost first.
func (c *Canvas) handleAt(world geom.Pt) (string, bool) {
	nodes := c.Graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if HandleRect(nodes[i]).Contains(world) {
			return nodes[i].ID, true
		}
	}
	return "", false
}
