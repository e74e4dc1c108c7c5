// Package canvas implements the interactive layer of the editor: the
// pan/zoom viewport, node drag and resize, and the connection-drawing
// state machine, arbitrated so exactly one gesture is active at a time.
package canvas

import (
	"github.com/flowpad/flowpad/internal/geom"
	"github.com/flowpad/flowpad/internal/graph"
)

// Canvas is the interaction session arbiter. It routes pointer events to
// whichever controller owns the active gesture and guarantees that
// pointer-up clears every transient sub-state, so a missed or
// out-of-order event can never leave the session stuck.
type Canvas struct {
	Graph *graph.Graph
	View  *Viewport

	// Selected is the node a plain click landed on, cleared by clicks on
	// empty canvas. UI state only; not persisted.
	Selected string

	mode       Mode
	drag       dragState
	resize     resizeState
	conn       connState
	hover      Hover
	lastScreen geom.Pt
}

// New creates a canvas over the given graph and viewport.
func New(g *graph.Graph, v *Viewport) *Canvas {
	return &Canvas{Graph: g, View: v}
}

// Mode returns the active interaction mode.
func (c *Canvas) Mode() Mode {
	return c.mode
}

// Hover returns the transient target under the pointer.
func (c *Canvas) Hover() Hover {
	return c.hover
}

// Wheel forwards a scroll event to the viewport.
func (c *Canvas) Wheel(dx, dy float64, zoomModifier bool) {
	c.View.Wheel(dx, dy, zoomModifier)
}

// PointerDown starts a gesture. Routing priority, highest first: resize
// handle, port, node body, pan. A held pan modifier skips the node
// checks so the user can always pan over a crowded canvas.
func (c *Canvas) PointerDown(screen geom.Pt, panModifier bool) {
	c.lastScreen = screen
	world := c.View.Transform.World(screen)

	if !panModifier {
		if id, ok := c.handleAt(world); ok {
			n := c.Graph.Node(id)
			c.mode = ModeResizing
			c.resize = resizeState{nodeID: id, originScreen: screen, originSize: n.Size()}
			return
		}
		if port, ok := c.portAt(world); ok {
			c.beginConnect(port)
			return
		}
		if n := c.Graph.NodeAt(world); n != nil {
			c.Selected = n.ID
			c.mode = ModeDragging
			c.drag = dragState{nodeID: n.ID, originScreen: screen, originPos: n.Pos()}
			return
		}
		c.Selected = ""
	}

	c.mode = ModePanning
}

// PointerMove advances the active gesture. Drag and resize divide the
// screen delta by the current scale on every event, so zooming mid-drag
// never produces a jump.
func (c *Canvas) PointerMove(screen geom.Pt) {
	defer func() { c.lastScreen = screen }()

	switch c.mode {
	case ModePanning:
		c.View.PanDrag(screen.X-c.lastScreen.X, screen.Y-c.lastScreen.Y)

	case ModeDragging:
		delta := screen.Sub(c.drag.originScreen).Div(c.View.Transform.Scale)
		pos := c.drag.originPos.Add(delta)
		c.Graph.MoveNode(c.drag.nodeID, pos.X, pos.Y)

	case ModeResizing:
		delta := screen.Sub(c.resize.originScreen).Div(c.View.Transform.Scale)
		c.Graph.ResizeNode(c.resize.nodeID,
			c.resize.originSize.W+delta.X,
			c.resize.originSize.H+delta.Y)

	case ModeConnecting:
		world := c.View.Transform.World(screen)
		c.conn.anchor = world
		c.updateHover(world)

	case ModeIdle:
		c.updateHover(c.View.Transform.World(screen))
	}
}

// PointerUp finalizes the active gesture and unconditionally resets
// every transient field.
func (c *Canvas) PointerUp(screen geom.Pt) {
	if c.mode == ModeConnecting {
		c.finishConnect(c.View.Transform.World(screen))
	}
	c.reset()
}

// DeleteSelected removes the selected node, cascading its connections.
func (c *Canvas) DeleteSelected() bool {
	if c.Selected == "" {
		return false
	}
	ok := c.Graph.RemoveNode(c.Selected)
	c.Selected = ""
	return ok
}

func (c *Canvas) updateHover(world geom.Pt) {
	c.hover = Hover{}
	if port, ok := c.portAt(world); ok {
		c.hover = Hover{Port: port, IsPort: true, NodeID: port.Node}
		return
	}
	if n := c.Graph.NodeAt(world); n != nil {
		c.hover.NodeID = n.ID
	}
}

// reset clears all transient interaction state, not just the sub-state
// that was active.
func (c *Canvas) reset() {
	c.mode = ModeIdle
	c.drag = dragState{}
	c.resize = resizeState{}
	c.conn = connState{}
	c.hover = Hover{}
}
