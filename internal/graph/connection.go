package graph

import "github.com/google/uuid"

// Connection is a directed edge "From → To", optionally scoped to a
// named port on either end. The empty port name is the default port.
type Connection struct {
	ID       string `json:"id"`
	From     string `json:"from"`
	To       string `json:"to"`
	FromPort string `json:"fromPort,omitempty"`
	ToPort   string `json:"toPort,omitempty"`
}

// sameWire reports tuple equality ignoring the connection id.
func (c Connection) sameWire(from, to, fromPort, toPort string) bool {
	return c.From == from && c.To == to && c.FromPort == fromPort && c.ToPort == toPort
}

// Connect creates the edge (from → to) scoped to the given ports.
// Self-loops and edges whose endpoints are missing are rejected. When
// the target type is single-inbound, every existing inbound edge to the
// target is removed first; the replacement is atomic from the caller's
// point of view. Creating an edge whose exact tuple already exists is a
// no-op and returns that edge. The second result reports whether a new
// edge was created.
func (g *Graph) Connect(from, to, fromPort, toPort string) (Connection, bool) {
	return g.AddConnection(Connection{From: from, To: to, FromPort: fromPort, ToPort: toPort})
}

// AddConnection inserts an edge record under the same validation as
// Connect. An empty ID gets a fresh one; a populated ID is kept, so
// edges restored from a saved setup keep their identity across
// sessions.
func (g *Graph) AddConnection(c Connection) (Connection, bool) {
	if c.From == c.To {
		return Connection{}, false
	}
	target, ok := g.nodes[c.To]
	if !ok {
		return Connection{}, false
	}
	if _, ok := g.nodes[c.From]; !ok {
		return Connection{}, false
	}

	for _, existing := range g.conns {
		if existing.sameWire(c.From, c.To, c.FromPort, c.ToPort) {
			return existing, false
		}
	}

	if g.rules.SingleInbound(target.Type) {
		g.DisconnectInbound(c.To)
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	g.conns = append(g.conns, c)
	return c, true
}

// Disconnect removes the connection with the given id.
func (g *Graph) Disconnect(id string) bool {
	for i, c := range g.conns {
		if c.ID == id {
			g.conns = append(g.conns[:i], g.conns[i+1:]...)
			return true
		}
	}
	return false
}

// DisconnectFromPort removes every connection leaving (node, port) and
// returns the removed edges, most recent last.
func (g *Graph) DisconnectFromPort(node, port string) []Connection {
	var removed []Connection
	kept := g.conns[:0]
	for _, c := range g.conns {
		if c.From == node && c.FromPort == port {
			removed = append(removed, c)
		} else {
			kept = append(kept, c)
		}
	}
	g.conns = kept
	return removed
}

// DisconnectInbound removes every connection arriving at the node and
// returns the removed edges.
func (g *Graph) DisconnectInbound(node string) []Connection {
	var removed []Connection
	kept := g.conns[:0]
	for _, c := range g.conns {
		if c.To == node {
			removed = append(removed, c)
		} else {
			kept = append(kept, c)
		}
	}
	g.conns = kept
	return removed
}

// Connections returns all edges in creation order.
func (g *Graph) Connections() []Connection {
	out := make([]Connection, len(g.conns))
	copy(out, g.conns)
	return out
}

// ConnectionsFrom returns edges leaving the node, any port.
func (g *Graph) ConnectionsFrom(node string) []Connection {
	var out []Connection
	for _, c := range g.conns {
		if c.From == node {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionsFromPort returns edges leaving (node, port). Renderers use
// this for per-port wire counts.
func (g *Graph) ConnectionsFromPort(node, port string) []Connection {
	var out []Connection
	for _, c := range g.conns {
		if c.From == node && c.FromPort == port {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionsTo returns edges arriving at the node.
func (g *Graph) ConnectionsTo(node string) []Connection {
	var out []Connection
	for _, c := range g.conns {
		if c.To == node {
			out = append(out, c)
		}
	}
	return out
}
