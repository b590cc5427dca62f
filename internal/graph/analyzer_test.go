package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docomm/analytics-core/internal/datagen"
	"github.com/docomm/analytics-core/pkg/models"
)

func TestComputeAllEmptyGraph(t *testing.T) {
	a := NewAnalyzer(DefaultOptions())
	_, err := a.ComputeAll()
	require.ErrorIs(t, err, ErrEmptyGraph)
}

func TestComputeAllSingleEdge(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 1
	a := NewAnalyzer(opts)
	a.AddEvent(models.InteractionEvent{From: "A", To: "B", Timestamp: 0, Duration: 2.0})

	m, err := a.ComputeAll()
	require.NoError(t, err)
	require.Equal(t, 2, m.NumNodes)
	require.Equal(t, 1, m.NumEdges)
	require.InDelta(t, 0.5, m.Density, 1e-9)
	require.NotNil(t, m.Diameter)
	require.Equal(t, 1, *m.Diameter)
	require.NotNil(t, m.AvgPathLength)
	require.InDelta(t, 1.0, *m.AvgPathLength, 1e-9)
	require.Len(t, m.Nodes, 2)
	require.Equal(t, models.NodeID("A"), m.Nodes[0].NodeID)
	require.InDelta(t, 1.0, m.Nodes[0].Degree, 1e-9)
	require.InDelta(t, 0.0, m.Nodes[1].Degree, 1e-9)
	require.False(t, m.ComputedAt.IsZero())
}

func TestComputeAllSingleNode(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 1
	a := NewAnalyzer(opts)
	a.AddEvent(models.InteractionEvent{From: "A", To: "A", Timestamp: 0, Duration: 1.0})

	m, err := a.ComputeAll()
	require.NoError(t, err)
	require.Equal(t, 1, m.NumNodes)
	require.NotNil(t, m.Diameter)
	require.Equal(t, 0, *m.Diameter)
	require.Nil(t, m.AvgPathLength)
}

func TestComputeAllDisconnectedGraph(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 1
	a := NewAnalyzer(opts)
	a.AddEvent(models.InteractionEvent{From: "A", To: "B", Timestamp: 0, Duration: 1.0})
	a.AddEvent(models.InteractionEvent{From: "C", To: "D", Timestamp: 1, Duration: 1.0})

	m, err := a.ComputeAll()
	require.NoError(t, err)
	require.Nil(t, m.Diameter)
	require.Nil(t, m.AvgPathLength)
}

func TestBuildFromReplayIsReproducible(t *testing.T) {
	gen := datagen.NewGenerator(7)
	events := gen.Random(40, "s1", 0)

	opts := DefaultOptions()
	opts.Seed = 42
	opts.Simulations = 20
	a := NewAnalyzer(opts)

	a.BuildFrom(events)
	m1, err := a.ComputeAll()
	require.NoError(t, err)

	a.BuildFrom(events)
	m2, err := a.ComputeAll()
	require.NoError(t, err)

	require.Equal(t, m1.Nodes, m2.Nodes)
	require.Equal(t, m1.Communities, m2.Communities)
	require.Equal(t, m1.Modularity, m2.Modularity)
	require.Equal(t, m1.Diffusion.SpreadPotential, m2.Diffusion.SpreadPotential)
	require.Equal(t, m1.Diffusion.InfluenceMaximizers, m2.Diffusion.InfluenceMaximizers)
	require.Equal(t, m1.Transitions.CommonPaths, m2.Transitions.CommonPaths)
}

func TestComputeAllCommunityScenario(t *testing.T) {
	gen := datagen.NewGenerator(42)
	events := gen.CommunityBased("s1", 0)

	opts := DefaultOptions()
	opts.Seed = 42
	opts.Simulations = 20
	a := NewAnalyzer(opts)
	a.BuildFrom(events)

	m, err := a.ComputeAll()
	require.NoError(t, err)

	require.Equal(t, 3, m.NumCommunities)
	require.Greater(t, m.Modularity, 0.3)

	totalSize := 0
	for _, c := range m.Communities {
		totalSize += c.Size
	}
	require.Equal(t, m.NumNodes, totalSize)

	for _, nm := range m.Nodes {
		require.GreaterOrEqual(t, nm.Degree, 0.0)
		require.LessOrEqual(t, nm.Degree, 1.0)
		require.GreaterOrEqual(t, nm.PageRank, 0.0)
		require.GreaterOrEqual(t, nm.CommunityID, 0)
		require.Less(t, nm.CommunityID, m.NumCommunities)
	}

	require.NotEmpty(t, m.Diffusion.InfluenceMaximizers)
	require.NotEmpty(t, m.Transitions.Matrix)
	require.NotZero(t, m.Transitions.Burstiness)
}

func TestComputeAllBoundsOnRandomData(t *testing.T) {
	gen := datagen.NewGenerator(3)
	events := gen.Random(60, "s1", 0)

	opts := DefaultOptions()
	opts.Seed = 3
	opts.Simulations = 20
	a := NewAnalyzer(opts)
	a.BuildFrom(events)

	m, err := a.ComputeAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, m.Density, 0.0)
	require.LessOrEqual(t, m.Density, 1.0)
	require.GreaterOrEqual(t, m.AvgClustering, 0.0)
	require.LessOrEqual(t, m.AvgClustering, 1.0)

	prSum := 0.0
	for _, nm := range m.Nodes {
		require.GreaterOrEqual(t, nm.Betweenness, 0.0)
		require.LessOrEqual(t, nm.Betweenness, 1.0)
		require.GreaterOrEqual(t, nm.Closeness, 0.0)
		require.LessOrEqual(t, nm.Closeness, 1.0)
		prSum += nm.PageRank
	}
	require.InDelta(t, 1.0, prSum, 1e-6)
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	require.Equal(t, 100, o.Simulations)
	require.InDelta(t, 0.3, o.ActivationThreshold, 1e-9)
	require.Equal(t, 3, o.PathLength)
	require.Equal(t, 5, o.TopPaths)
	require.NotZero(t, o.Seed)

	custom := Options{Simulations: 10, ActivationThreshold: 0.2, PathLength: 4, TopPaths: 2, Seed: 9}
	require.Equal(t, custom, custom.withDefaults())
}
