package canvas

import "github.com/flowpad/flowpad/internal/geom"

// Mode is the mutually exclusive interaction mode. Exactly one mode is
// active at any instant; every pointer-up returns to ModeIdle.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeDragging
	ModeResizing
	ModeConnecting
)

func (m Mode) String() string {
	return [...]string{"Idle", "Panning", "Dragging", "Resizing", "Connecting"}[m]
}

// PortDir distinguishes output (source) from input (target) ports.
type PortDir int

const (
	PortOut PortDir = iota
	PortIn
)

// PortRef identifies a port on a node. Port is empty for the default
// port of single-output types and for inputs.
type PortRef struct {
	Node string
	Port string
	Dir  PortDir
}

// Hover is the transient target under the pointer. It decides the drop
// target on pointer-up and drives visual feedback; it is never part of
// the graph's authoritative state.
type Hover struct {
	Port   PortRef
	IsPort bool
	NodeID string
}

// dragState captures a node-move gesture at pointer-down.
type dragState struct {
	nodeID       string
	originScreen geom.Pt
	originPos    geom.Pt
}

// resizeState captures a resize gesture at pointer-down.
type resizeState struct {
	nodeID       string
	originScreen geom.Pt
	originSize   geom.Size
}

// connPhase is the connection state machine's own state.
type connPhase int

const (
	connIdle connPhase = iota
	// connFromSource drags the loose end of a wire leaving (source, port).
	connFromSource
	// connFromTarget is a reverse drag searching for a source to feed target.
	connFromTarget
)

// connState is the in-flight connection gesture.
type connState struct {
	phase      connPhase
	source     string
	sourcePort string
	target     string
	// anchor is the world position the pending wire hangs from, for
	// rendering only. When re-dragging an existing wire it starts at the
	// original far end.
	anchor geom.Pt
}
