package graph

import (
	"testing"

	"github.com/flowpad/flowpad/internal/geom"
)

// testRules mirrors a small flow-editor setup: sources feed scorers,
// scorers feed a single-inbound output.
func testRules() Rules {
	return Rules{
		"source": {
			DefaultSize: geom.Size{W: 200, H: 120},
			MinSize:     geom.Size{W: 120, H: 60},
		},
		"scorer": {
			DefaultSize: geom.Size{W: 240, H: 160},
			MinSize:     geom.Size{W: 140, H: 80},
			OutPorts:    []string{"pass", "fail"},
		},
		"output": {
			DefaultSize:   geom.Size{W: 200, H: 100},
			MinSize:       geom.Size{W: 120, H: 60},
			SingleInbound: true,
		},
	}
}

func TestAddNodeDefaults(t *testing.T) {
	g := New(testRules())

	n := g.AddNode(Node{Type: "source", X: 10, Y: 20})
	if n == nil {
		t.Fatal("AddNode returned nil")
	}
	if n.ID == "" {
		t.Error("expected generated id")
	}
	if n.W != 200 || n.H != 120 {
		t.Errorf("default size = %vx%v, want 200x120", n.W, n.H)
	}
}

func TestAddNodeDuplicateID(t *testing.T) {
	g := New(testRules())
	g.AddNode(Node{ID: "a", Type: "source"})
	if g.AddNode(Node{ID: "a", Type: "source"}) != nil {
		t.Error("duplicate id should be rejected")
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}
}

func TestAddNodeClampsUndersized(t *testing.T) {
	g := New(testRules())
	n := g.AddNode(Node{Type: "source", W: 10, H: 10})
	if n.W != 120 || n.H != 60 {
		t.Errorf("size = %vx%v, want clamped 120x60", n.W, n.H)
	}
}

func TestUpdateNodeShallowMerge(t *testing.T) {
	g := New(testRules())
	n := g.AddNode(Node{ID: "a", Type: "source", X: 1, Y: 2, Payload: map[string]any{"q": "old"}})

	x := 50.0
	if !g.UpdateNode("a", Patch{X: &x}) {
		t.Fatal("UpdateNode failed")
	}
	if n.X != 50 || n.Y != 2 {
		t.Errorf("pos = (%v,%v), want (50,2)", n.X, n.Y)
	}
	if n.Payload["q"] != "old" {
		t.Error("payload must survive a position patch")
	}

	g.UpdateNode("a", Patch{Payload: map[string]any{"q": "new"}})
	if n.Payload["q"] != "new" || n.X != 50 {
		t.Error("payload patch must not disturb position")
	}
}

func TestResizeFloor(t *testing.T) {
	g := New(testRules())
	g.AddNode(Node{ID: "a", Type: "scorer"})

	g.ResizeNode("a", 20, 500)
	n := g.Node("a")
	if n.W != 140 {
		t.Errorf("W = %v, want clamped 140", n.W)
	}
	if n.H != 500 {
		t.Errorf("H = %v, want 500", n.H)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g := New(testRules())
	g.AddNode(Node{ID: "a", Type: "source"})
	g.AddNode(Node{ID: "b", Type: "source"})
	g.AddNode(Node{ID: "c", Type: "source"})
	g.Connect("a", "b", "", "")
	g.Connect("b", "c", "", "")
	g.Connect("a", "c", "", "")

	if !g.RemoveNode("b") {
		t.Fatal("RemoveNode failed")
	}

	conns := g.Connections()
	if len(conns) != 1 {
		t.Fatalf("got %d connections, want 1", len(conns))
	}
	if conns[0].From != "a" || conns[0].To != "c" {
		t.Errorf("surviving edge = %+v, want a→c", conns[0])
	}
	if g.Node("b") != nil {
		t.Error("node b should be gone")
	}
}

func TestNodeAtTopmost(t *testing.T) {
	g := New(testRules())
	g.AddNode(Node{ID: "under", Type: "source", X: 0, Y: 0, W: 200, H: 120})
	g.AddNode(Node{ID: "over", Type: "source", X: 100, Y: 60, W: 200, H: 120})

	if n := g.NodeAt(geom.Pt{X: 150, Y: 100}); n == nil || n.ID != "over" {
		t.Errorf("NodeAt overlap = %v, want over", n)
	}
	if n := g.NodeAt(geom.Pt{X: 10, Y: 10}); n == nil || n.ID != "under" {
		t.Errorf("NodeAt = %v, want under", n)
	}
	if n := g.NodeAt(geom.Pt{X: -5, Y: -5}); n != nil {
		t.Errorf("NodeAt empty space = %v, want nil", n)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New(testRules())
	g.AddNode(Node{ID: "1", Type: "source"})
	g.AddNode(Node{ID: "2", Type: "source"})
	g.AddNode(Node{ID: "3", Type: "source"})
	g.RemoveNode("2")

	nodes := g.Nodes()
	if len(nodes) != 2 || nodes[0].ID != "1" || nodes[1].ID != "3" {
		t.Errorf("order = %v", nodes)
	}
}
