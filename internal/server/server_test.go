package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowpad/flowpad/internal/geom"
	"github.com/flowpad/flowpad/internal/graph"
	"github.com/flowpad/flowpad/internal/setup"
)

func testRules() graph.Rules {
	return graph.Rules{
		"prompt": {MinSize: geom.Size{W: 120, H: 60}},
		"output": {MinSize: geom.Size{W: 120, H: 60}, SingleInbound: true},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(setup.NewMemoryStore(), testRules()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func putSetup(t *testing.T, srv *httptest.Server, id string, doc any) *http.Response {
	t.Helper()
	body, err := json.Marshal(doc)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/setups/"+id, bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPutGetRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	doc := setup.Document{
		Nodes: []graph.Node{
			{ID: "a", Type: "prompt", W: 200, H: 120},
			{ID: "b", Type: "output", W: 200, H: 100},
		},
		Connections: []graph.Connection{{ID: "c", From: "a", To: "b"}},
		Transform:   setup.TransformState{Scale: 0.5},
	}
	resp := putSetup(t, srv, "demo", doc)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	get, err := http.Get(srv.URL + "/setups/demo")
	require.NoError(t, err)
	defer get.Body.Close()
	require.Equal(t, http.StatusOK, get.StatusCode)

	var got setup.Document
	require.NoError(t, json.NewDecoder(get.Body).Decode(&got))
	assert.Len(t, got.Nodes, 2)
	assert.Len(t, got.Connections, 1)
	assert.Equal(t, 0.5, got.Transform.Scale)
}

func TestPutSanitizesBeforeStoring(t *testing.T) {
	srv := newTestServer(t)

	doc := setup.Document{
		Nodes: []graph.Node{{ID: "a", Type: "prompt", W: 1, H: 1}},
		Connections: []graph.Connection{
			{ID: "c", From: "a", To: "ghost"},
		},
		Transform: setup.TransformState{Scale: 1},
	}
	resp := putSetup(t, srv, "dirty", doc)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored setup.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stored))
	assert.Empty(t, stored.Connections, "dangling connection should be pruned")
	require.Len(t, stored.Nodes, 1)
	assert.Equal(t, 120.0, stored.Nodes[0].W, "undersized node should be clamped")
}

func TestPutRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/setups/x", bytes.NewReader([]byte("{oops")))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMissingSetup(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/setups/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListAndDelete(t *testing.T) {
	srv := newTestServer(t)
	putSetup(t, srv, "one", setup.Document{Transform: setup.TransformState{Scale: 1}}).Body.Close()
	putSetup(t, srv, "two", setup.Document{Transform: setup.TransformState{Scale: 1}}).Body.Close()

	resp, err := http.Get(srv.URL + "/setups")
	require.NoError(t, err)
	defer resp.Body.Close()

	var listed struct {
		Setups []string `json:"setups"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.ElementsMatch(t, []string{"one", "two"}, listed.Setups)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/setups/one", nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	again, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	again.Body.Close()
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestMetricsExposed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
