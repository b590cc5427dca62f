package graph

import (
	"github.com/docomm/analytics-core/pkg/models"
)

// Edge is a directed weighted edge. Weight counts how many times the
// (From, To) pair was observed; Durations keeps every observed duration
// in arrival order.
type Edge struct {
	From      models.NodeID
	To        models.NodeID
	Weight    int
	Durations []float64
}

type edgeKey struct {
	from, to models.NodeID
}

// Graph is a directed weighted graph keyed by node label. Nodes and
// successor lists keep insertion order so that every metric pass iterates
// deterministically for a fixed input sequence.
//
// A Graph is owned by exactly one Analyzer and carries no locking.
type Graph struct {
	order []models.NodeID
	index map[models.NodeID]int
	succ  map[models.NodeID][]models.NodeID
	edges map[edgeKey]*Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[models.NodeID]int),
		succ:  make(map[models.NodeID][]models.NodeID),
		edges: make(map[edgeKey]*Edge),
	}
}

func (g *Graph) addNode(id models.NodeID) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
}

// Observe records one occurrence of the directed edge (from, to). A repeated
// pair increments the edge weight and appends the duration to its history;
// a new pair creates the edge with weight 1. Self-loops are not filtered.
func (g *Graph) Observe(from, to models.NodeID, duration float64) {
	g.addNode(from)
	g.addNode(to)

	key := edgeKey{from, to}
	if e, ok := g.edges[key]; ok {
		e.Weight++
		e.Durations = append(e.Durations, duration)
		return
	}
	g.edges[key] = &Edge{
		From:      from,
		To:        to,
		Weight:    1,
		Durations: []float64{duration},
	}
	g.succ[from] = append(g.succ[from], to)
}

// NumNodes returns the number of distinct node labels seen.
func (g *Graph) NumNodes() int {
	return len(g.order)
}

// NumEdges returns the number of distinct directed (from, to) pairs.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// Nodes returns the node labels in insertion order.
func (g *Graph) Nodes() []models.NodeID {
	nodes := make([]models.NodeID, len(g.order))
	copy(nodes, g.order)
	return nodes
}

// Successors returns the distinct out-neighbors of a node in first-seen order.
func (g *Graph) Successors(id models.NodeID) []models.NodeID {
	return g.succ[id]
}

// EdgeBetween returns the edge (from, to) if it exists.
func (g *Graph) EdgeBetween(from, to models.NodeID) (*Edge, bool) {
	e, ok := g.edges[edgeKey{from, to}]
	return e, ok
}

// weight returns the occurrence count of the directed edge (from, to), 0 if absent.
func (g *Graph) weight(from, to models.NodeID) int {
	if e, ok := g.edges[edgeKey{from, to}]; ok {
		return e.Weight
	}
	return 0
}

// undirected is the index-based undirected projection of a Graph. Reciprocal
// directed edges collapse into one undirected edge whose weight is the sum of
// both directions' occurrence counts. Self-loops are dropped: no metric
// computed on the projection is defined over them.
type undirected struct {
	labels  []models.NodeID
	adj     [][]int
	weights map[[2]int]float64
}

func pairKey(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

// undirected builds the projection. Adjacency lists follow the deterministic
// directed-edge iteration order, so downstream algorithms stay reproducible.
func (g *Graph) undirected() *undirected {
	u := &undirected{
		labels:  g.Nodes(),
		adj:     make([][]int, len(g.order)),
		weights: make(map[[2]int]float64),
	}

	for _, from := range g.order {
		fi := g.index[from]
		for _, to := range g.succ[from] {
			ti := g.index[to]
			if fi == ti {
				continue
			}
			key := pairKey(fi, ti)
			if _, seen := u.weights[key]; !seen {
				u.adj[fi] = append(u.adj[fi], ti)
				u.adj[ti] = append(u.adj[ti], fi)
			}
			u.weights[key] += float64(g.weight(from, to))
		}
	}

	return u
}

func (u *undirected) n() int {
	return len(u.labels)
}

func (u *undirected) numEdges() int {
	return len(u.weights)
}

// totalWeight returns the sum of undirected edge weights (each edge once).
func (u *undirected) totalWeight() float64 {
	total := 0.0
	for _, w := range u.weights {
		total += w
	}
	return total
}

func (u *undirected) weight(i, j int) float64 {
	return u.weights[pairKey(i, j)]
}

// weightedDegree returns the sum of incident edge weights of node i.
func (u *undirected) weightedDegree(i int) float64 {
	d := 0.0
	for _, j := range u.adj[i] {
		d += u.weight(i, j)
	}
	return d
}

// bfsDistances returns hop distances from src, -1 for unreachable nodes.
func (u *undirected) bfsDistances(src int) []int {
	dist := make([]int, u.n())
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0

	queue := []int{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range u.adj[v] {
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}

	return dist
}

// isConnected reports whether the projection is a single connected component.
// The empty projection and a single node count as connected.
func (u *undirected) isConnected() bool {
	if u.n() == 0 {
		return true
	}
	dist := u.bfsDistances(0)
	for _, d := range dist {
		if d < 0 {
			return false
		}
	}
	return true
}

// largestComponent returns the node indices of the largest connected
// component. Ties go to the component containing the earliest-inserted node.
func (u *undirected) largestComponent() []int {
	visited := make([]bool, u.n())
	var largest []int

	for i := 0; i < u.n(); i++ {
		if visited[i] {
			continue
		}
		var comp []int
		queue := []int{i}
		visited[i] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			comp = append(comp, v)
			for _, w := range u.adj[v] {
				if !visited[w] {
					visited[w] = true
					queue = append(queue, w)
				}
			}
		}
		if len(comp) > len(largest) {
			largest = comp
		}
	}

	return largest
}

// without returns a copy of the projection with one node removed.
func (u *undirected) without(removed int) *undirected {
	keep := make([]int, 0, u.n()-1)
	for i := 0; i < u.n(); i++ {
		if i != removed {
			keep = append(keep, i)
		}
	}
	return u.subgraph(keep)
}

// subgraph returns the induced projection over the given node indices.
func (u *undirected) subgraph(keep []int) *undirected {
	remap := make(map[int]int, len(keep))
	sub := &undirected{
		labels:  make([]models.NodeID, len(keep)),
		adj:     make([][]int, len(keep)),
		weights: make(map[[2]int]float64),
	}
	for newIdx, oldIdx := range keep {
		remap[oldIdx] = newIdx
		sub.labels[newIdx] = u.labels[oldIdx]
	}

	for _, oldIdx := range keep {
		ni := remap[oldIdx]
		for _, oldNbr := range u.adj[oldIdx] {
			nj, ok := remap[oldNbr]
			if !ok {
				continue
			}
			sub.adj[ni] = append(sub.adj[ni], nj)
			key := pairKey(ni, nj)
			if _, seen := sub.weights[key]; !seen {
				sub.weights[key] = u.weight(oldIdx, oldNbr)
			}
		}
	}

	return sub
}
