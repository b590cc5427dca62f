// Package datagen produces synthetic interaction event streams for testing
// and demonstration. The generated shapes mirror how the communication board
// is used in practice: free selection, intent sequences, and clustered topics.
package datagen

import (
	"github.com/docomm/analytics-core/pkg/models"
	"github.com/docomm/analytics-core/pkg/utils"
)

// Vocabulary is the default set of board words events are drawn from.
var Vocabulary = []models.NodeID{
	"PAIN", "WATER", "HELP", "YES", "NO",
	"THANKS", "FAMILY", "SLEEP", "MEDICINE", "BATHROOM",
}

// intentSequences are short realistic selection chains.
var intentSequences = [][]models.NodeID{
	{"PAIN", "HELP", "MEDICINE"},
	{"WATER", "YES", "THANKS"},
	{"BATHROOM", "HELP", "THANKS"},
	{"PAIN", "MEDICINE", "SLEEP"},
	{"FAMILY", "YES", "THANKS"},
}

// topicClusters group words that co-occur, used to synthesize data with a
// clear community structure.
var topicClusters = [][]models.NodeID{
	{"WATER", "BATHROOM", "SLEEP"},
	{"PAIN", "MEDICINE", "HELP"},
	{"FAMILY", "THANKS", "YES", "NO"},
}

// Generator creates synthetic interaction events from a seeded random source.
type Generator struct {
	rng *utils.RandSource
}

// NewGenerator creates a generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: utils.NewRandSource(seed)}
}

// Random generates n uniformly random interactions over the vocabulary,
// spaced 2 seconds apart. Self-loops are re-drawn.
func (g *Generator) Random(n int, sessionID string, startTime float64) []models.InteractionEvent {
	events := make([]models.InteractionEvent, 0, n)
	for i := 0; i < n; i++ {
		from := Vocabulary[g.rng.Intn(len(Vocabulary))]
		to := Vocabulary[g.rng.Intn(len(Vocabulary))]
		for to == from {
			to = Vocabulary[g.rng.Intn(len(Vocabulary))]
		}
		events = append(events, models.InteractionEvent{
			From:      from,
			To:        to,
			Timestamp: startTime + float64(i)*2.0,
			Duration:  g.rng.UniformFloat64(1.0, 5.0),
			SessionID: sessionID,
		})
	}
	return events
}

// RealisticSequences replays the intent sequences with jittered gaps,
// producing the kind of stream a short real session yields.
func (g *Generator) RealisticSequences(sessionID string, startTime float64) []models.InteractionEvent {
	var events []models.InteractionEvent
	timestamp := startTime
	for _, seq := range intentSequences {
		for i := 0; i < len(seq)-1; i++ {
			events = append(events, models.InteractionEvent{
				From:      seq[i],
				To:        seq[i+1],
				Timestamp: timestamp,
				Duration:  g.rng.UniformFloat64(2.0, 4.0),
				SessionID: sessionID,
			})
			timestamp += g.rng.UniformFloat64(1.0, 3.0)
		}
	}
	return events
}

// CommunityBased generates 15 intra-cluster interactions per topic cluster
// plus 10 inter-cluster interactions, yielding a stream whose graph has a
// clear three-community structure.
func (g *Generator) CommunityBased(sessionID string, startTime float64) []models.InteractionEvent {
	var events []models.InteractionEvent
	timestamp := startTime

	for _, cluster := range topicClusters {
		for i := 0; i < 15; i++ {
			from := cluster[g.rng.Intn(len(cluster))]
			to := cluster[g.rng.Intn(len(cluster))]
			for to == from {
				to = cluster[g.rng.Intn(len(cluster))]
			}
			events = append(events, models.InteractionEvent{
				From:      from,
				To:        to,
				Timestamp: timestamp,
				Duration:  g.rng.UniformFloat64(1.5, 4.0),
				SessionID: sessionID,
			})
			timestamp += g.rng.UniformFloat64(0.5, 2.0)
		}
	}

	for i := 0; i < 10; i++ {
		a := g.rng.Intn(len(topicClusters))
		b := g.rng.Intn(len(topicClusters))
		for b == a {
			b = g.rng.Intn(len(topicClusters))
		}
		from := topicClusters[a][g.rng.Intn(len(topicClusters[a]))]
		to := topicClusters[b][g.rng.Intn(len(topicClusters[b]))]
		events = append(events, models.InteractionEvent{
			From:      from,
			To:        to,
			Timestamp: timestamp,
			Duration:  g.rng.UniformFloat64(1.5, 4.0),
			SessionID: sessionID,
		})
		timestamp += g.rng.UniformFloat64(0.5, 2.0)
	}

	return events
}
