package graph

import (
	"sort"

	"github.com/docomm/analytics-core/pkg/models"
)

// computeRobustness identifies the structurally critical nodes and simulates
// the removal of the most critical one on a disposable copy of the
// undirected projection.
//
// The baseline average path length is 0.0 when the projection is already
// disconnected. That sentinel conflates "no degradation" with "no baseline";
// it is preserved for compatibility with the established output contract.
func computeRobustness(u *undirected, nodes []models.NodeID, betweenness []float64) models.RobustnessMetrics {
	result := models.RobustnessMetrics{}
	n := len(nodes)
	if n == 0 {
		return result
	}

	// Top 3 by betweenness; the stable sort keeps insertion order on ties.
	ranked := make([]int, n)
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return betweenness[ranked[a]] > betweenness[ranked[b]]
	})
	numCritical := 3
	if n < numCritical {
		numCritical = n
	}

	scoreSum := 0.0
	for _, idx := range ranked[:numCritical] {
		result.CriticalNodes = append(result.CriticalNodes, nodes[idx])
		scoreSum += betweenness[idx]
	}
	result.VulnerabilityScore = scoreSum / float64(numCritical)

	connected := u.isConnected()
	if connected {
		if apl, ok := averagePathLength(u); ok {
			result.AvgPathLengthOriginal = apl
		}
	}

	if !connected || n <= 1 {
		return result
	}

	// Remove the most critical node from a disposable copy.
	remainder := u.without(ranked[0])
	if remainder.isConnected() {
		if apl, ok := averagePathLength(remainder); ok {
			result.AvgPathLengthAfterRemoval = apl
		}
		return result
	}

	largest := remainder.largestComponent()
	if len(largest) > 1 {
		if apl, ok := averagePathLength(remainder.subgraph(largest)); ok {
			result.AvgPathLengthAfterRemoval = apl
		}
	}
	result.ConnectivityLoss = 1.0 - float64(len(largest))/float64(n)

	return result
}
