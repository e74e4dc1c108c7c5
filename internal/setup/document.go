// Package setup handles persistence of canvas setups: the JSON document
// shape, load-time sanitizing, and the stores that hold saved setups.
package setup

import (
	"encoding/json"
	"fmt"

	"github.com/flowpad/flowpad/internal/geom"
	"github.com/flowpad/flowpad/internal/graph"
)

// TransformState is the persisted viewport transform.
type TransformState struct {
	TX    float64 `json:"tx"`
	TY    float64 `json:"ty"`
	Scale float64 `json:"scale"`
}

// Document is the serializable shape of a whole setup. Connections
// reference nodes by id, never by pointer, so the document is flat and
// cycle-free.
type Document struct {
	Nodes       []graph.Node       `json:"nodes"`
	Connections []graph.Connection `json:"connections"`
	Transform   TransformState     `json:"transform"`
}

// Snapshot captures the graph and transform into a document.
func Snapshot(g *graph.Graph, tr geom.Transform) *Document {
	doc := &Document{
		Connections: g.Connections(),
		Transform:   TransformState{TX: tr.TX, TY: tr.TY, Scale: tr.Scale},
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, *n)
	}
	return doc
}

// Restore builds a graph from a document under the given rules. The
// document is sanitized first, so malformed persisted data degrades to a
// smaller setup instead of a crash.
func (d *Document) Restore(rules graph.Rules) (*graph.Graph, geom.Transform) {
	d.Sanitize(rules)

	g := graph.New(rules)
	for _, n := range d.Nodes {
		g.AddNode(n)
	}
	for _, c := range d.Connections {
		g.AddConnection(c)
	}

	return g, geom.Transform{TX: d.Transform.TX, TY: d.Transform.TY, Scale: d.Transform.Scale}
}

// Sanitize repairs a loaded document in place: nodes with duplicate or
// empty ids are dropped, undersized nodes are clamped up to their type
// minimum, connections with dangling endpoints or self-loops are pruned,
// duplicate wire tuples collapse to one, and a non-positive scale resets
// to 1. Returns the number of entries dropped.
func (d *Document) Sanitize(rules graph.Rules) int {
	dropped := 0

	ids := make(map[string]bool, len(d.Nodes))
	nodes := d.Nodes[:0]
	for _, n := range d.Nodes {
		if n.ID == "" || ids[n.ID] {
			dropped++
			continue
		}
		ids[n.ID] = true
		min := rules.MinSize(n.Type)
		if n.W < min.W {
			n.W = min.W
		}
		if n.H < min.H {
			n.H = min.H
		}
		nodes = append(nodes, n)
	}
	d.Nodes = nodes

	type wire struct{ from, to, fp, tp string }
	seen := make(map[wire]bool, len(d.Connections))
	conns := d.Connections[:0]
	for _, c := range d.Connections {
		w := wire{c.From, c.To, c.FromPort, c.ToPort}
		if !ids[c.From] || !ids[c.To] || c.From == c.To || seen[w] {
			dropped++
			continue
		}
		seen[w] = true
		conns = append(conns, c)
	}
	d.Connections = conns

	if d.Transform.Scale <= 0 {
		d.Transform.Scale = 1
	}
	return dropped
}

// Encode renders the document as indented JSON.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode setup: %w", err)
	}
	return data, nil
}

// Decode parses a document from JSON.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode setup: %w", err)
	}
	return &doc, nil
}
