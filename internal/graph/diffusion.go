package graph

import (
	"sort"

	"github.com/docomm/analytics-core/pkg/models"
	"github.com/docomm/analytics-core/pkg/utils"
)

// computeDiffusion estimates every node's spreading power via Monte-Carlo
// Independent-Cascade trials. Each activated node gets exactly one attempt
// per not-yet-activated successor, with probability
// min(edgeWeight * 0.1, activationThreshold); activations propagate in
// breadth-first waves. A node belongs to a seed's consensus set when it was
// activated in at least half of the trials.
//
// This is the pipeline's only randomized stage; all randomness flows through
// the injected source, so a fixed seed reproduces exact activation sets.
func computeDiffusion(g *Graph, opts Options, rng *utils.RandSource) models.DiffusionMetrics {
	n := g.NumNodes()
	nodes := g.Nodes()
	succ := successorIndices(g)

	prob := make([][]float64, n)
	for i, outs := range succ {
		prob[i] = make([]float64, len(outs))
		for k, j := range outs {
			w := float64(g.weight(nodes[i], nodes[j]))
			prob[i][k] = utils.MinFloat64(w*0.1, opts.ActivationThreshold)
		}
	}

	result := models.DiffusionMetrics{
		SpreadPotential:     make(map[models.NodeID]float64, n),
		ActivationThreshold: opts.ActivationThreshold,
		ExpectedCascadeSize: make(map[models.NodeID]float64, n),
	}

	spread := make([]float64, n)
	for seed := 0; seed < n; seed++ {
		activationCounts := make([]int, n)

		for trial := 0; trial < opts.Simulations; trial++ {
			activated := make([]bool, n)
			activated[seed] = true
			frontier := []int{seed}

			for len(frontier) > 0 {
				var next []int
				for _, v := range frontier {
					for k, w := range succ[v] {
						if activated[w] {
							continue
						}
						if rng.Float64() < prob[v][k] {
							activated[w] = true
							next = append(next, w)
						}
					}
				}
				frontier = next
			}

			for i, a := range activated {
				if a {
					activationCounts[i]++
				}
			}
		}

		consensus := 0
		for _, c := range activationCounts {
			if float64(c) >= float64(opts.Simulations)*0.5 {
				consensus++
			}
		}

		spread[seed] = float64(consensus) / float64(n)
		result.SpreadPotential[nodes[seed]] = spread[seed]
		result.ExpectedCascadeSize[nodes[seed]] = float64(consensus)
	}

	// Top 3 influence maximizers; stable sort keeps insertion order on ties.
	ranked := make([]int, n)
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return spread[ranked[a]] > spread[ranked[b]]
	})
	top := 3
	if n < top {
		top = n
	}
	for _, idx := range ranked[:top] {
		result.InfluenceMaximizers = append(result.InfluenceMaximizers, nodes[idx])
	}

	return result
}
