package graph

import "github.com/flowpad/flowpad/internal/geom"

// TypeSpec describes the canvas-relevant behavior of one node type.
// Everything else about a type (what it renders, what it computes) lives
// outside the engine.
type TypeSpec struct {
	// DefaultSize is applied when a node is created with zero size.
	DefaultSize geom.Size
	// MinSize is the resize floor for the type.
	MinSize geom.Size
	// OutPorts names the type's output ports. Empty means one unnamed
	// default port.
	OutPorts []string
	// SingleInbound marks types that accept at most one incoming
	// connection, replaced atomically on reconnect.
	SingleInbound bool
}

// Rules maps node type tags to their specs. Supplied by configuration,
// never hard-coded in the engine.
type Rules map[string]TypeSpec

// FallbackMinSize applies to unknown types so malformed data can still
// be clamped to something renderable.
var FallbackMinSize = geom.Size{W: 80, H: 40}

// Spec returns the spec for a type, zero value if unknown.
func (r Rules) Spec(typ string) TypeSpec {
	return r[typ]
}

// MinSize returns the resize floor for a type.
func (r Rules) MinSize(typ string) geom.Size {
	if s, ok := r[typ]; ok && s.MinSize.W > 0 && s.MinSize.H > 0 {
		return s.MinSize
	}
	return FallbackMinSize
}

// SingleInbound reports whether the type replaces its inbound edge on
// reconnect.
func (r Rules) SingleInbound(typ string) bool {
	return r[typ].SingleInbound
}

// OutPorts returns the named output ports of a type. A nil result means
// the type has a single unnamed output.
func (r Rules) OutPorts(typ string) []string {
	return r[typ].OutPorts
}

// MultiOut reports whether the type exposes more than one output port.
func (r Rules) MultiOut(typ string) bool {
	return len(r[typ].OutPorts) > 1
}
