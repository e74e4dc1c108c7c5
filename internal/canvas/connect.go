package canvas

import "github.com/flowpad/flowpad/internal/geom"

// beginConnect enters the connecting mode from a pointer-down on a port.
//
// Grabbing a wired single-output port detaches its wires and re-drags
// them: the session holds the source end and the loose end starts at the
// original target. Multi-port outputs always start a fresh parallel wire
// so grabbing one port cannot disturb wires on its siblings. Grabbing a
// wired input detaches the most recent inbound wire and turns into a
// reverse drag searching for a new source. Edges detached here are gone
// for good; dropping nowhere does not restore them.
func (c *Canvas) beginConnect(port PortRef) {
	c.mode = ModeConnecting
	n := c.Graph.Node(port.Node)

	switch port.Dir {
	case PortOut:
		c.conn = connState{
			phase:      connFromSource,
			source:     port.Node,
			sourcePort: port.Port,
			anchor:     outPortPosByName(c, n.ID, port.Port),
		}
		if c.Graph.Rules().MultiOut(n.Type) {
			return
		}
		removed := c.Graph.DisconnectFromPort(port.Node, port.Port)
		if len(removed) > 0 {
			if t := c.Graph.Node(removed[len(removed)-1].To); t != nil {
				c.conn.anchor = InputPortPos(t)
			}
		}

	case PortIn:
		c.conn = connState{
			phase:  connFromTarget,
			target: port.Node,
			anchor: InputPortPos(n),
		}
		inbound := c.Graph.ConnectionsTo(port.Node)
		if len(inbound) > 0 {
			grabbed := inbound[len(inbound)-1]
			c.Graph.Disconnect(grabbed.ID)
			if s := c.Graph.Node(grabbed.From); s != nil {
				c.conn.anchor = outPortPosByName(c, s.ID, grabbed.FromPort)
			}
		}
	}
}

// finishConnect resolves the drop target on pointer-up. Every rejected
// drop (self-loop, nothing under the pointer, ambiguous port) is a
// silent no-op; the graph is simply left as it is.
func (c *Canvas) finishConnect(world geom.Pt) {
	port, onPort := c.portAt(world)

	switch c.conn.phase {
	case connFromSource:
		to := ""
		if onPort && port.Dir == PortIn {
			to = port.Node
		} else if !onPort {
			// A drop on a node body counts as its input.
			if n := c.Graph.NodeAt(world); n != nil {
				to = n.ID
			}
		}
		if to != "" {
			c.Graph.Connect(c.conn.source, to, c.conn.sourcePort, "")
		}

	case connFromTarget:
		if onPort && port.Dir == PortOut {
			c.Graph.Connect(port.Node, c.conn.target, port.Port, "")
			return
		}
		if !onPort {
			// Body drop works only when the source port is unambiguous.
			n := c.Graph.NodeAt(world)
			if n != nil && !c.Graph.Rules().MultiOut(n.Type) {
				names := OutPortNames(c.Graph.Rules(), n)
				c.Graph.Connect(n.ID, c.conn.target, names[0], "")
			}
		}
	}
}

// PendingWire returns the endpoints of the wire being drawn, fixed end
// first, for rendering. ok is false outside a connect gesture.
func (c *Canvas) PendingWire() (fixed, loose geom.Pt, ok bool) {
	switch c.conn.phase {
	case connFromSource:
		if n := c.Graph.Node(c.conn.source); n != nil {
			return outPortPosByName(c, n.ID, c.conn.sourcePort), c.conn.anchor, true
		}
	case connFromTarget:
		if n := c.Graph.Node(c.conn.target); n != nil {
			return InputPortPos(n), c.conn.anchor, true
		}
	}
	return geom.Pt{}, geom.Pt{}, false
}

// outPortPosByName resolves a named output port to its world position.
func outPortPosByName(c *Canvas, nodeID, port string) geom.Pt {
	n := c.Graph.Node(nodeID)
	if n == nil {
		return geom.Pt{}
	}
	return OutPortPosNamed(c.Graph.Rules(), n, port)
}
