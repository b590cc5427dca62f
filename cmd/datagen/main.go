// Command datagen emits synthetic interaction events as JSON, for seeding an
// analytics session during development and demos.
package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/docomm/analytics-core/internal/datagen"
	"github.com/docomm/analytics-core/pkg/logger"
	"github.com/docomm/analytics-core/pkg/models"
)

func main() {
	var output string
	var kind string
	var num int
	var seed int64
	var sessionID string

	flag.StringVar(&output, "output", "-", "output file path, or - for stdout")
	flag.StringVar(&kind, "type", "random", "dataset type (random, realistic, community)")
	flag.IntVar(&num, "num", 50, "number of events (random type only)")
	flag.Int64Var(&seed, "seed", 0, "random seed; 0 seeds from the clock")
	flag.StringVar(&sessionID, "session-id", "demo", "session id stamped on every event")
	flag.Parse()

	logger.SetDefault(logger.NewText("info", os.Stderr))

	gen := datagen.NewGenerator(seed)
	startTime := float64(time.Now().Unix())

	var events []models.InteractionEvent
	switch kind {
	case "random":
		events = gen.Random(num, sessionID, startTime)
	case "realistic":
		events = gen.RealisticSequences(sessionID, startTime)
	case "community":
		events = gen.CommunityBased(sessionID, startTime)
	default:
		logger.Error("unknown dataset type", "type", kind)
		os.Exit(1)
	}

	out := os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			logger.Error("failed to create output file", "path", output, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"events": events}); err != nil {
		logger.Error("failed to encode events", "error", err)
		os.Exit(1)
	}

	logger.Info("dataset generated", "type", kind, "events", len(events), "session_id", sessionID)
}
