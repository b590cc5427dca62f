package graph

import (
	"math"
	"sort"
	"strings"

	"github.com/docomm/analytics-core/pkg/models"
	"github.com/docomm/analytics-core/pkg/utils"
)

// computeTransitions builds a first-order transition probability model over
// the temporally ordered event sequence, plus entropy, burstiness and the
// most frequent short node sequences.
func computeTransitions(events []models.InteractionEvent, pathLength, topPaths int) models.TransitionMetrics {
	ordered := make([]models.InteractionEvent, len(events))
	copy(ordered, events)
	// Stable: ties keep relative input order.
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Timestamp < ordered[b].Timestamp
	})

	counts := make(map[models.NodeID]map[models.NodeID]int)
	for _, e := range ordered {
		row := counts[e.From]
		if row == nil {
			row = make(map[models.NodeID]int)
			counts[e.From] = row
		}
		row[e.To]++
	}

	matrix := make(map[models.NodeID]map[models.NodeID]float64, len(counts))
	entropy := 0.0
	for from, row := range counts {
		total := 0
		for _, c := range row {
			total += c
		}
		probs := make(map[models.NodeID]float64, len(row))
		for to, c := range row {
			p := float64(c) / float64(total)
			probs[to] = p
			entropy -= p * math.Log2(p)
		}
		matrix[from] = probs
	}

	return models.TransitionMetrics{
		Matrix:      matrix,
		Entropy:     entropy,
		Burstiness:  burstiness(ordered),
		CommonPaths: commonPaths(ordered, pathLength, topPaths),
	}
}

// burstiness returns (sigma - mu) / (sigma + mu) over successive inter-event
// gaps, with population standard deviation. Fewer than two events, or a
// degenerate sigma + mu of zero, yield 0.0.
func burstiness(ordered []models.InteractionEvent) float64 {
	if len(ordered) < 2 {
		return 0
	}

	gaps := make([]float64, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		gaps = append(gaps, ordered[i].Timestamp-ordered[i-1].Timestamp)
	}

	mean := utils.Mean(gaps)
	std := utils.StdDev(gaps)
	if mean+std == 0 {
		return 0
	}
	return (std - mean) / (std + mean)
}

// commonPaths mines the topPaths most frequent contiguous node sequences of
// the given length by sliding a window over the ordered transitions. A window
// starting at transition i reads [from_i, to_i, to_i+1, ...]. Frequency ties
// break by first occurrence.
func commonPaths(ordered []models.InteractionEvent, pathLength, topPaths int) [][]models.NodeID {
	if len(ordered) < pathLength-1 {
		return nil
	}

	type pathCount struct {
		path  []models.NodeID
		count int
		first int
	}

	seen := make(map[string]*pathCount)
	var all []*pathCount

	numWindows := len(ordered) - (pathLength - 1) + 1
	for i := 0; i < numWindows; i++ {
		path := make([]models.NodeID, 0, pathLength)
		path = append(path, ordered[i].From)
		for j := 0; j < pathLength-1; j++ {
			path = append(path, ordered[i+j].To)
		}

		key := joinPath(path)
		if pc, ok := seen[key]; ok {
			pc.count++
			continue
		}
		pc := &pathCount{path: path, count: 1, first: i}
		seen[key] = pc
		all = append(all, pc)
	}

	sort.SliceStable(all, func(a, b int) bool {
		if all[a].count != all[b].count {
			return all[a].count > all[b].count
		}
		return all[a].first < all[b].first
	})

	if len(all) > topPaths {
		all = all[:topPaths]
	}
	result := make([][]models.NodeID, len(all))
	for i, pc := range all {
		result[i] = pc.path
	}
	return result
}

func joinPath(path []models.NodeID) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = string(id)
	}
	return strings.Join(parts, "\x00")
}
