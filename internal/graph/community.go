package graph

import (
	"github.com/docomm/analytics-core/pkg/models"
)

// detectCommunities partitions the undirected projection by greedy modularity
// optimization (Louvain). Edge weights are occurrence multiplicities, so the
// optimization sees repeated interactions as stronger ties.
//
// Nodes are visited in insertion order and the algorithm draws no randomness,
// so the partition is deterministic for a fixed graph. Community ids are
// relabeled 0..k-1 by first appearance over the node insertion order.
func detectCommunities(u *undirected) (partition []int, infos []models.CommunityInfo, modularity float64) {
	n := u.n()
	partition = louvain(u)

	// Relabel community ids by first appearance.
	relabel := make(map[int]int)
	for i := 0; i < n; i++ {
		if _, ok := relabel[partition[i]]; !ok {
			relabel[partition[i]] = len(relabel)
		}
	}
	for i := range partition {
		partition[i] = relabel[partition[i]]
	}

	numCommunities := len(relabel)
	members := make([][]int, numCommunities)
	for i, c := range partition {
		members[c] = append(members[c], i)
	}

	m := u.totalWeight()
	infos = make([]models.CommunityInfo, numCommunities)
	for c := 0; c < numCommunities; c++ {
		info := models.CommunityInfo{
			ID:   c,
			Size: len(members[c]),
		}
		for _, i := range members[c] {
			info.Nodes = append(info.Nodes, u.labels[i])
		}

		internalWeight := 0.0
		degreeSum := 0.0
		for key, w := range u.weights {
			inA := partition[key[0]] == c
			inB := partition[key[1]] == c
			switch {
			case inA && inB:
				info.InternalEdges++
				internalWeight += w
			case inA || inB:
				info.ExternalEdges++
			}
		}
		for _, i := range members[c] {
			degreeSum += u.weightedDegree(i)
		}

		if m > 0 {
			ac := degreeSum / (2 * m)
			info.ModularityContribution = internalWeight/m - ac*ac
		}
		modularity += info.ModularityContribution
		infos[c] = info
	}

	return partition, infos, modularity
}

// louvain runs the two-phase Louvain loop and returns a community id per
// node index. Ids are arbitrary ints; callers relabel.
func louvain(u *undirected) []int {
	n := u.n()
	community := make([]int, n)
	for i := range community {
		community[i] = i
	}
	if u.numEdges() == 0 {
		return community
	}

	// Working multigraph: nodes are current communities, edges keep merged
	// weights; loops accumulate intra-community weight.
	type wedge struct {
		to int
		w  float64
	}
	adj := make([][]wedge, n)
	loops := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, j := range u.adj[i] {
			adj[i] = append(adj[i], wedge{j, u.weight(i, j)})
		}
	}
	// toOriginal maps working-graph nodes to the original nodes they absorb.
	toOriginal := make([][]int, n)
	for i := range toOriginal {
		toOriginal[i] = []int{i}
	}

	m := u.totalWeight()

	for {
		size := len(adj)
		comm := make([]int, size)
		degree := make([]float64, size)
		commTotal := make([]float64, size)
		for i := 0; i < size; i++ {
			comm[i] = i
			degree[i] = 2 * loops[i]
			for _, e := range adj[i] {
				degree[i] += e.w
			}
			commTotal[i] = degree[i]
		}

		// Phase 1: local moving until a full pass makes no move.
		improved := false
		for {
			moved := false
			for i := 0; i < size; i++ {
				current := comm[i]
				commTotal[current] -= degree[i]

				// Weight from i into each neighboring community.
				neighWeight := map[int]float64{current: 0}
				neighOrder := []int{current}
				for _, e := range adj[i] {
					c := comm[e.to]
					if _, ok := neighWeight[c]; !ok {
						neighOrder = append(neighOrder, c)
					}
					neighWeight[c] += e.w
				}

				best := current
				bestGain := neighWeight[current] - commTotal[current]*degree[i]/(2*m)
				for _, c := range neighOrder {
					gain := neighWeight[c] - commTotal[c]*degree[i]/(2*m)
					if gain > bestGain {
						best = c
						bestGain = gain
					}
				}

				commTotal[best] += degree[i]
				comm[i] = best
				if best != current {
					moved = true
					improved = true
				}
			}
			if !moved {
				break
			}
		}

		if !improved {
			break
		}

		// Compact community ids for the aggregated graph.
		compact := make(map[int]int)
		for i := 0; i < size; i++ {
			if _, ok := compact[comm[i]]; !ok {
				compact[comm[i]] = len(compact)
			}
		}

		// Record the partition on original nodes.
		for i := 0; i < size; i++ {
			c := compact[comm[i]]
			for _, orig := range toOriginal[i] {
				community[orig] = c
			}
		}

		// Phase 2: build the aggregated graph.
		newSize := len(compact)
		newLoops := make([]float64, newSize)
		newToOriginal := make([][]int, newSize)
		merged := make([]map[int]float64, newSize)
		for i := range merged {
			merged[i] = make(map[int]float64)
		}
		for i := 0; i < size; i++ {
			ci := compact[comm[i]]
			newLoops[ci] += loops[i]
			newToOriginal[ci] = append(newToOriginal[ci], toOriginal[i]...)
			for _, e := range adj[i] {
				cj := compact[comm[e.to]]
				if ci == cj {
					// Each intra-community edge is visited from both ends.
					newLoops[ci] += e.w / 2
				} else {
					merged[ci][cj] += e.w
				}
			}
		}

		newAdj := make([][]wedge, newSize)
		for i := 0; i < newSize; i++ {
			// Deterministic edge order: by community id.
			for j := 0; j < newSize; j++ {
				if w, ok := merged[i][j]; ok {
					newAdj[i] = append(newAdj[i], wedge{j, w})
				}
			}
		}

		if newSize == size {
			break
		}
		adj = newAdj
		loops = newLoops
		toOriginal = newToOriginal
	}

	return community
}
