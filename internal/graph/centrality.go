package graph

import (
	"math"
)

const (
	eigenvectorMaxIter = 1000
	eigenvectorTol     = 1e-6

	pageRankDamping = 0.85
	pageRankMaxIter = 100
	pageRankTol     = 1e-6
)

// successorIndices returns, per node index, the indices of its distinct
// out-neighbors in first-seen order.
func successorIndices(g *Graph) [][]int {
	succ := make([][]int, g.NumNodes())
	for _, from := range g.order {
		fi := g.index[from]
		for _, to := range g.succ[from] {
			succ[fi] = append(succ[fi], g.index[to])
		}
	}
	return succ
}

// predecessorIndices returns the reverse adjacency of successorIndices.
func predecessorIndices(g *Graph) [][]int {
	pred := make([][]int, g.NumNodes())
	for fi, outs := range successorIndices(g) {
		for _, ti := range outs {
			pred[ti] = append(pred[ti], fi)
		}
	}
	return pred
}

// degreeCentrality returns, per node, the fraction of other nodes directly
// reachable in one directed hop.
func degreeCentrality(g *Graph) []float64 {
	n := g.NumNodes()
	result := make([]float64, n)
	if n <= 1 {
		return result
	}

	for i, outs := range successorIndices(g) {
		reachable := 0
		for _, j := range outs {
			if j != i {
				reachable++
			}
		}
		result[i] = float64(reachable) / float64(n-1)
	}
	return result
}

// betweennessCentrality computes directed betweenness via Brandes' algorithm
// over unweighted shortest paths, normalized by (n-1)(n-2). All zeros for
// fewer than three nodes.
func betweennessCentrality(g *Graph) []float64 {
	n := g.NumNodes()
	cb := make([]float64, n)
	if n < 3 {
		return cb
	}

	succ := successorIndices(g)

	for s := 0; s < n; s++ {
		// BFS phase: shortest-path counts and predecessor lists.
		stack := make([]int, 0, n)
		pred := make([][]int, n)
		sigma := make([]float64, n)
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		sigma[s] = 1
		dist[s] = 0

		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range succ[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		// Accumulation phase: back-propagate pair dependencies.
		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	norm := float64((n - 1) * (n - 2))
	for i := range cb {
		cb[i] /= norm
	}
	return cb
}

// closenessCentrality computes directed closeness on incoming distances with
// the reachable-fraction scaling, keeping values comparable across
// disconnected graphs and inside [0, 1].
func closenessCentrality(g *Graph) []float64 {
	n := g.NumNodes()
	result := make([]float64, n)
	if n <= 1 {
		return result
	}

	pred := predecessorIndices(g)

	for v := 0; v < n; v++ {
		// BFS over incoming edges: distance from u to v in the original graph.
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[v] = 0
		queue := []int{v}
		for len(queue) > 0 {
			x := queue[0]
			queue = queue[1:]
			for _, w := range pred[x] {
				if dist[w] < 0 {
					dist[w] = dist[x] + 1
					queue = append(queue, w)
				}
			}
		}

		reachable := 0
		totalDist := 0
		for u, d := range dist {
			if u != v && d > 0 {
				reachable++
				totalDist += d
			}
		}
		if totalDist > 0 {
			r := float64(reachable)
			result[v] = (r / float64(totalDist)) * (r / float64(n-1))
		}
	}

	return result
}

// eigenvectorCentrality computes the principal eigenvector of the adjacency
// matrix by power iteration over incoming edges. On non-convergence, which a
// directed interaction graph can legitimately produce, every node degrades
// to 0.0 rather than failing.
func eigenvectorCentrality(g *Graph) []float64 {
	n := g.NumNodes()
	zeros := make([]float64, n)
	if n == 0 {
		return zeros
	}

	succ := successorIndices(g)

	x := make([]float64, n)
	for i := range x {
		x[i] = 1.0 / float64(n)
	}

	for iter := 0; iter < eigenvectorMaxIter; iter++ {
		xlast := x
		x = make([]float64, n)
		copy(x, xlast)
		// x <- (A^T + I) x: each node passes its score along its out-edges.
		for v := 0; v < n; v++ {
			for _, w := range succ[v] {
				x[w] += xlast[v]
			}
		}

		norm := 0.0
		for _, v := range x {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		for i := range x {
			x[i] /= norm
		}

		diff := 0.0
		for i := range x {
			diff += math.Abs(x[i] - xlast[i])
		}
		if diff < float64(n)*eigenvectorTol {
			return x
		}
	}

	return zeros
}

// pageRank computes the damped random-walk stationary distribution, weighted
// by edge occurrence counts, with uniform redistribution from dangling nodes.
// Values sum to 1 across all nodes.
func pageRank(g *Graph) []float64 {
	n := g.NumNodes()
	if n == 0 {
		return nil
	}

	succ := successorIndices(g)
	nodes := g.Nodes()

	outWeight := make([]float64, n)
	edgeWeight := make([][]float64, n)
	for i, outs := range succ {
		edgeWeight[i] = make([]float64, len(outs))
		for k, j := range outs {
			w := float64(g.weight(nodes[i], nodes[j]))
			edgeWeight[i][k] = w
			outWeight[i] += w
		}
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = 1.0 / float64(n)
	}

	base := (1 - pageRankDamping) / float64(n)
	for iter := 0; iter < pageRankMaxIter; iter++ {
		xlast := x
		x = make([]float64, n)

		danglesum := 0.0
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				danglesum += xlast[i]
			}
		}
		danglesum *= pageRankDamping / float64(n)

		for i := 0; i < n; i++ {
			for k, j := range succ[i] {
				x[j] += pageRankDamping * xlast[i] * edgeWeight[i][k] / outWeight[i]
			}
		}

		diff := 0.0
		for i := range x {
			x[i] += danglesum + base
			diff += math.Abs(x[i] - xlast[i])
		}
		if diff < float64(n)*pageRankTol {
			break
		}
	}

	return x
}
