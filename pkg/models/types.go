package models

import (
	"time"
)

// NodeID identifies a node in the interaction graph. Labels are opaque:
// no normalization or case folding is applied.
type NodeID string

// InteractionEvent represents a single directed interaction between two nodes.
// Events are immutable once created; timestamps may arrive out of order.
type InteractionEvent struct {
	From      NodeID  `json:"from_node"`
	To        NodeID  `json:"to_node"`
	Timestamp float64 `json:"timestamp"`
	Duration  float64 `json:"duration"`
	SessionID string  `json:"session_id"`
}

// NodeMetrics contains per-node centrality and clustering measures.
type NodeMetrics struct {
	NodeID      NodeID  `json:"node_id"`
	Degree      float64 `json:"degree_centrality"`
	Betweenness float64 `json:"betweenness_centrality"`
	Closeness   float64 `json:"closeness_centrality"`
	Eigenvector float64 `json:"eigenvector_centrality"`
	PageRank    float64 `json:"pagerank"`
	Clustering  float64 `json:"clustering_coefficient"`
	CommunityID int     `json:"community_id"`
}

// CommunityInfo describes one detected community.
type CommunityInfo struct {
	ID                     int      `json:"community_id"`
	Nodes                  []NodeID `json:"nodes"`
	Size                   int      `json:"size"`
	InternalEdges          int      `json:"internal_edges"`
	ExternalEdges          int      `json:"external_edges"`
	ModularityContribution float64  `json:"modularity_contribution"`
}

// RobustnessMetrics summarizes structural vulnerability of the graph.
// AvgPathLengthOriginal is 0.0 when the undirected projection is disconnected;
// callers must treat that value as a sentinel, not a measurement.
type RobustnessMetrics struct {
	CriticalNodes             []NodeID `json:"critical_nodes"`
	VulnerabilityScore        float64  `json:"vulnerability_score"`
	AvgPathLengthOriginal     float64  `json:"avg_path_length_original"`
	AvgPathLengthAfterRemoval float64  `json:"avg_path_length_after_removal"`
	ConnectivityLoss          float64  `json:"connectivity_loss"`
}

// TransitionMetrics contains the first-order transition model derived from
// the temporally ordered event sequence.
type TransitionMetrics struct {
	Matrix      map[NodeID]map[NodeID]float64 `json:"transition_matrix"`
	Entropy     float64                       `json:"entropy"`
	Burstiness  float64                       `json:"burstiness"`
	CommonPaths [][]NodeID                    `json:"most_common_paths"`
}

// DiffusionMetrics contains Independent-Cascade spreading estimates.
type DiffusionMetrics struct {
	SpreadPotential     map[NodeID]float64 `json:"spread_potential"`
	ActivationThreshold float64            `json:"activation_threshold"`
	ExpectedCascadeSize map[NodeID]float64 `json:"expected_cascade_size"`
	InfluenceMaximizers []NodeID           `json:"influence_maximizers"`
}

// GraphMetrics aggregates every metric family computed over one graph
// snapshot. A value is built once per computation request and never mutated.
// Diameter and AvgPathLength are nil when the graph, treated as undirected,
// is not a single connected component.
type GraphMetrics struct {
	NumNodes      int      `json:"num_nodes"`
	NumEdges      int      `json:"num_edges"`
	Density       float64  `json:"density"`
	Diameter      *int     `json:"diameter"`
	AvgPathLength *float64 `json:"avg_path_length"`
	AvgClustering float64  `json:"avg_clustering_coefficient"`

	Nodes []NodeMetrics `json:"node_metrics"`

	NumCommunities int             `json:"num_communities"`
	Modularity     float64         `json:"modularity_score"`
	Communities    []CommunityInfo `json:"communities"`

	Robustness  RobustnessMetrics `json:"robustness"`
	Transitions TransitionMetrics `json:"transitions"`
	Diffusion   DiffusionMetrics  `json:"diffusion"`

	ComputedAt time.Time `json:"computed_at"`
}
