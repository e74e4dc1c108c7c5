package graph

import "testing"

func connGraph() *Graph {
	g := New(testRules())
	g.AddNode(Node{ID: "a", Type: "source"})
	g.AddNode(Node{ID: "b", Type: "source"})
	g.AddNode(Node{ID: "s", Type: "scorer"})
	g.AddNode(Node{ID: "out", Type: "output"})
	return g
}

func TestConnectIdempotent(t *testing.T) {
	g := connGraph()

	first, created := g.Connect("a", "b", "", "")
	if !created {
		t.Fatal("first Connect should create")
	}
	second, created := g.Connect("a", "b", "", "")
	if created {
		t.Error("duplicate tuple must not create a second edge")
	}
	if second.ID != first.ID {
		t.Error("duplicate Connect should return the existing edge")
	}
	if len(g.Connections()) != 1 {
		t.Errorf("got %d edges, want 1", len(g.Connections()))
	}
}

func TestConnectPortScopedNotDuplicates(t *testing.T) {
	g := connGraph()

	g.Connect("s", "a", "pass", "")
	_, created := g.Connect("s", "a", "fail", "")
	if !created {
		t.Error("edges differing only in FromPort are distinct")
	}
	if len(g.ConnectionsFrom("s")) != 2 {
		t.Errorf("ConnectionsFrom = %d, want 2", len(g.ConnectionsFrom("s")))
	}
	if len(g.ConnectionsFromPort("s", "pass")) != 1 {
		t.Error("per-port query should see exactly one edge")
	}
}

func TestConnectRejectsSelfLoop(t *testing.T) {
	g := connGraph()
	if _, created := g.Connect("a", "a", "", ""); created {
		t.Error("self-loop must never be created")
	}
	if len(g.Connections()) != 0 {
		t.Error("store must be untouched after a rejected connect")
	}
}

func TestConnectRejectsMissingEndpoint(t *testing.T) {
	g := connGraph()
	if _, created := g.Connect("a", "ghost", "", ""); created {
		t.Error("missing target must be rejected")
	}
	if _, created := g.Connect("ghost", "a", "", ""); created {
		t.Error("missing source must be rejected")
	}
}

func TestSingleInboundReplace(t *testing.T) {
	g := connGraph()

	g.Connect("a", "out", "", "")
	_, created := g.Connect("b", "out", "", "")
	if !created {
		t.Fatal("replacement edge should be created")
	}

	inbound := g.ConnectionsTo("out")
	if len(inbound) != 1 {
		t.Fatalf("single-inbound node has %d inbound edges, want 1", len(inbound))
	}
	if inbound[0].From != "b" {
		t.Errorf("inbound from %q, want b", inbound[0].From)
	}
	if len(g.Connections()) != 1 {
		t.Errorf("total edges = %d, want 1", len(g.Connections()))
	}
}

func TestSingleInboundReconnectSameSource(t *testing.T) {
	g := connGraph()

	first, _ := g.Connect("a", "out", "", "")
	again, created := g.Connect("a", "out", "", "")
	if created {
		t.Error("same tuple onto single-inbound node is a no-op")
	}
	if again.ID != first.ID {
		t.Error("existing edge must survive, not be replaced")
	}
}

func TestDisconnect(t *testing.T) {
	g := connGraph()
	c, _ := g.Connect("a", "b", "", "")

	if !g.Disconnect(c.ID) {
		t.Fatal("Disconnect failed")
	}
	if g.Disconnect(c.ID) {
		t.Error("second Disconnect should report false")
	}
	if len(g.Connections()) != 0 {
		t.Error("edge should be gone")
	}
}

func TestDisconnectFromPort(t *testing.T) {
	g := connGraph()
	g.Connect("s", "a", "pass", "")
	g.Connect("s", "b", "pass", "")
	g.Connect("s", "b", "fail", "")

	removed := g.DisconnectFromPort("s", "pass")
	if len(removed) != 2 {
		t.Fatalf("removed %d, want 2", len(removed))
	}
	if len(g.ConnectionsFrom("s")) != 1 {
		t.Error("fail-port edge must survive")
	}
}

func TestDisconnectInbound(t *testing.T) {
	g := connGraph()
	g.Connect("a", "s", "", "")
	g.Connect("b", "s", "", "")
	g.Connect("a", "b", "", "")

	removed := g.DisconnectInbound("s")
	if len(removed) != 2 {
		t.Fatalf("removed %d, want 2", len(removed))
	}
	if len(g.Connections()) != 1 {
		t.Error("unrelated edge must survive")
	}
}

func TestAddConnectionKeepsID(t *testing.T) {
	g := connGraph()

	c, created := g.AddConnection(Connection{ID: "wire-1", From: "a", To: "b"})
	if !created || c.ID != "wire-1" {
		t.Fatalf("got (%q, %v), want existing id kept", c.ID, created)
	}

	c, created = g.AddConnection(Connection{From: "b", To: "s"})
	if !created || c.ID == "" {
		t.Fatalf("got (%q, %v), want a minted id", c.ID, created)
	}

	// Validation matches Connect.
	if _, created := g.AddConnection(Connection{ID: "dup", From: "a", To: "b"}); created {
		t.Error("duplicate tuple must not create a second edge")
	}
	if _, created := g.AddConnection(Connection{ID: "loop", From: "a", To: "a"}); created {
		t.Error("self-loop must be rejected")
	}
}
