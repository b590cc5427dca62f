package graph

// density returns E / (N * (N-1)) for a directed graph, 0 when N <= 1.
func density(numNodes, numEdges int) float64 {
	if numNodes <= 1 {
		return 0
	}
	return float64(numEdges) / float64(numNodes*(numNodes-1))
}

// pathStats computes the diameter and average shortest-path length of a
// connected undirected projection via all-pairs BFS. ok is false when the
// projection has fewer than two nodes and the average is undefined.
func pathStats(u *undirected) (diameter int, avgPathLength float64, ok bool) {
	n := u.n()
	if n < 2 {
		return 0, 0, false
	}

	totalDist := 0
	for i := 0; i < n; i++ {
		dist := u.bfsDistances(i)
		for _, d := range dist {
			if d < 0 {
				// Disconnected; callers check connectivity first, but a
				// defined answer does not exist either way.
				return 0, 0, false
			}
			totalDist += d
			if d > diameter {
				diameter = d
			}
		}
	}

	avgPathLength = float64(totalDist) / float64(n*(n-1))
	return diameter, avgPathLength, true
}

// averagePathLength is pathStats restricted to the mean, used by the
// robustness simulation where the diameter is not needed.
func averagePathLength(u *undirected) (float64, bool) {
	_, apl, ok := pathStats(u)
	return apl, ok
}

// localClustering returns each node's undirected clustering coefficient:
// the fraction of its neighbor pairs that are themselves connected.
// Nodes with degree below 2 score 0.
func localClustering(u *undirected) []float64 {
	n := u.n()
	coeffs := make([]float64, n)

	adjSet := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		adjSet[i] = make(map[int]bool, len(u.adj[i]))
		for _, j := range u.adj[i] {
			adjSet[i][j] = true
		}
	}

	for i := 0; i < n; i++ {
		neighbors := u.adj[i]
		k := len(neighbors)
		if k < 2 {
			continue
		}
		links := 0
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if adjSet[neighbors[a]][neighbors[b]] {
					links++
				}
			}
		}
		coeffs[i] = 2 * float64(links) / float64(k*(k-1))
	}

	return coeffs
}

// averageClustering returns the mean local clustering coefficient over all
// nodes, 0 for the empty projection.
func averageClustering(u *undirected) float64 {
	n := u.n()
	if n == 0 {
		return 0
	}
	total := 0.0
	for _, c := range localClustering(u) {
		total += c
	}
	return total / float64(n)
}
