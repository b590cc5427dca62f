package graph

import (
	"errors"
	"time"

	"github.com/docomm/analytics-core/pkg/config"
	"github.com/docomm/analytics-core/pkg/models"
	"github.com/docomm/analytics-core/pkg/utils"
)

// ErrEmptyGraph is returned by ComputeAll when no events have been ingested.
// It is the only error the engine surfaces; every other ill-defined metric
// degrades silently instead (nil diameter, zeroed eigenvector, sentinel 0.0
// robustness baseline).
var ErrEmptyGraph = errors.New("interaction graph is empty")

// Options tunes the metric pipeline. Zero values fall back to defaults.
type Options struct {
	// Simulations is the number of Independent-Cascade trials per seed node.
	Simulations int
	// ActivationThreshold caps the per-edge activation probability.
	ActivationThreshold float64
	// PathLength is the length of node sequences mined from the event stream.
	PathLength int
	// TopPaths is how many frequent sequences are reported.
	TopPaths int
	// Seed seeds the random source behind the diffusion simulation, the
	// pipeline's only nondeterministic stage. The source is recreated from
	// the seed on every computation, so a fixed seed reproduces exact
	// activation sets and rebuilding the same event sequence yields
	// identical metrics. Zero picks a clock seed once at construction.
	Seed int64
}

// DefaultOptions returns the standard pipeline parameters.
func DefaultOptions() Options {
	return Options{
		Simulations:         100,
		ActivationThreshold: 0.3,
		PathLength:          3,
		TopPaths:            5,
	}
}

// OptionsFromConfig maps service configuration onto pipeline options.
func OptionsFromConfig(a config.Analysis) Options {
	return Options{
		Simulations:         a.Simulations,
		ActivationThreshold: a.ActivationThreshold,
		PathLength:          a.PathLength,
		TopPaths:            a.TopPaths,
		Seed:                a.Seed,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Simulations <= 0 {
		o.Simulations = def.Simulations
	}
	if o.ActivationThreshold <= 0 {
		o.ActivationThreshold = def.ActivationThreshold
	}
	if o.PathLength < 2 {
		o.PathLength = def.PathLength
	}
	if o.TopPaths <= 0 {
		o.TopPaths = def.TopPaths
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// Analyzer accumulates interaction events into a weighted directed graph and
// computes the full metric set over the current snapshot on demand.
//
// An Analyzer is not safe for concurrent use; the host owns one per session
// and serializes access (see the session store).
type Analyzer struct {
	graph  *Graph
	events []models.InteractionEvent
	opts   Options
}

// NewAnalyzer creates an analyzer with the given options.
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{
		graph: NewGraph(),
		opts:  opts.withDefaults(),
	}
}

// AddEvent ingests one interaction event. It never fails: malformed values
// (negative durations, out-of-order timestamps) are accepted as-is.
func (a *Analyzer) AddEvent(e models.InteractionEvent) {
	a.events = append(a.events, e)
	a.graph.Observe(e.From, e.To, e.Duration)
}

// BuildFrom resets the analyzer and replays the given events in order.
// Repeated calls with the same sequence yield identical state.
func (a *Analyzer) BuildFrom(events []models.InteractionEvent) {
	a.graph = NewGraph()
	a.events = nil
	for _, e := range events {
		a.AddEvent(e)
	}
}

// Graph exposes the accumulated graph snapshot.
func (a *Analyzer) Graph() *Graph {
	return a.graph
}

// NumEvents returns how many events have been ingested.
func (a *Analyzer) NumEvents() int {
	return len(a.events)
}

// ComputeAll computes every metric family over the current graph snapshot.
// It fails with ErrEmptyGraph when no node has been seen; this is the single
// validated precondition. The call is synchronous and heavy (all-pairs
// shortest paths plus nodes x simulations cascade trials); callers that need
// responsiveness should run it off the request path.
func (a *Analyzer) ComputeAll() (*models.GraphMetrics, error) {
	g := a.graph
	n := g.NumNodes()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	u := g.undirected()

	m := &models.GraphMetrics{
		NumNodes:      n,
		NumEdges:      g.NumEdges(),
		Density:       density(n, g.NumEdges()),
		AvgClustering: averageClustering(u),
		ComputedAt:    time.Now().UTC(),
	}

	if u.isConnected() {
		diameter, apl, ok := pathStats(u)
		if ok {
			m.Diameter = &diameter
			m.AvgPathLength = &apl
		} else if n == 1 {
			// A single node has a defined eccentricity but no node pairs.
			zero := 0
			m.Diameter = &zero
		}
	}

	degree := degreeCentrality(g)
	betweenness := betweennessCentrality(g)
	closeness := closenessCentrality(g)
	eigenvector := eigenvectorCentrality(g)
	pagerank := pageRank(g)
	clustering := localClustering(u)

	partition, communities, modularity := detectCommunities(u)
	m.NumCommunities = len(communities)
	m.Modularity = modularity
	m.Communities = communities

	nodes := g.Nodes()
	m.Nodes = make([]models.NodeMetrics, n)
	for i, id := range nodes {
		m.Nodes[i] = models.NodeMetrics{
			NodeID:      id,
			Degree:      degree[i],
			Betweenness: betweenness[i],
			Closeness:   closeness[i],
			Eigenvector: eigenvector[i],
			PageRank:    pagerank[i],
			Clustering:  clustering[i],
			CommunityID: partition[i],
		}
	}

	m.Robustness = computeRobustness(u, nodes, betweenness)
	m.Transitions = computeTransitions(a.events, a.opts.PathLength, a.opts.TopPaths)
	m.Diffusion = computeDiffusion(g, a.opts, utils.NewRandSource(a.opts.Seed))

	return m, nil
}
