//go:build integration
// +build integration

package integration_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docomm/analytics-core/internal/datagen"
	"github.com/docomm/analytics-core/internal/graph"
	"github.com/docomm/analytics-core/internal/server"
	"github.com/docomm/analytics-core/internal/session"
	"github.com/docomm/analytics-core/pkg/models"
)

// TestE2E_SessionLifecycle drives the full session flow over the HTTP API:
// create, ingest a community-structured dataset, compute metrics, end, delete.
func TestE2E_SessionLifecycle(t *testing.T) {
	opts := graph.DefaultOptions()
	opts.Seed = 42
	opts.Simulations = 20
	srv := server.NewHTTPServer(session.NewStore(opts))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	// Create a session.
	resp, err := http.Post(ts.URL+"/v1/sessions", "application/json", strings.NewReader(""))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		Session models.Session `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	resp.Body.Close()
	sessionID := created.Session.ID
	if sessionID == "" {
		t.Fatalf("expected generated session id")
	}

	// Ingest a clustered dataset as one batch.
	events := datagen.NewGenerator(42).CommunityBased(sessionID, 0)
	batch, _ := json.Marshal(map[string]any{"events": events})
	resp, err = http.Post(ts.URL+"/v1/sessions/"+sessionID+"/events", "application/json", strings.NewReader(string(batch)))
	if err != nil {
		t.Fatalf("ingest events: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 ingesting events, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Compute the full metric set.
	resp, err = http.Get(ts.URL + "/v1/sessions/" + sessionID + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 computing metrics, got %d", resp.StatusCode)
	}
	var metricsResp struct {
		Metrics models.GraphMetrics `json:"metrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&metricsResp); err != nil {
		t.Fatalf("decode metrics response: %v", err)
	}
	resp.Body.Close()

	m := metricsResp.Metrics
	if m.NumNodes == 0 || m.NumEdges == 0 {
		t.Fatalf("expected non-trivial graph, got %d nodes %d edges", m.NumNodes, m.NumEdges)
	}
	if m.NumCommunities < 2 {
		t.Fatalf("expected clustered dataset to yield communities, got %d", m.NumCommunities)
	}
	if len(m.Nodes) != m.NumNodes {
		t.Fatalf("expected per-node metrics for every node")
	}
	if len(m.Diffusion.InfluenceMaximizers) == 0 {
		t.Fatalf("expected influence maximizers")
	}

	// End the session with a selected message.
	resp, err = http.Post(ts.URL+"/v1/sessions/"+sessionID+":end", "application/json",
		strings.NewReader(`{"selected_message":["WATER","THANKS"]}`))
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 ending session, got %d", resp.StatusCode)
	}
	var ended struct {
		Session models.Session `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ended); err != nil {
		t.Fatalf("decode end response: %v", err)
	}
	resp.Body.Close()
	if ended.Session.EndTime == nil {
		t.Fatalf("expected end_time on ended session")
	}

	// Delete and verify the session is gone.
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/sessions/"+sessionID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 deleting session, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/v1/sessions/" + sessionID)
	if err != nil {
		t.Fatalf("get deleted session: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
