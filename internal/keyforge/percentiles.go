package keyforge

import (
	"encoding/json"
	"math"
	"strconv"
)

// statFields are the nine DoK deck-quality metrics ranked against the
// global population.
var statFields = []string{
	"expectedAmber",
	"creatureProtection",
	"amberControl",
	"artifactControl",
	"creatureControl",
	"effectivePower",
	"disruption",
	"efficiency",
	"recursion",
}

// percentileTable is the per-field baseline: metric value (as a stringified
// integer) to percentile.
type percentileTable struct {
	PercentileForValue map[string]float64 `json:"percentileForValue"`
}

// ParseDokStats ranks one deck against the population baseline. Each metric
// is rounded to the nearest integer and looked up in the field's percentile
// table; anything missing along the way (field absent from the deck,
// baseline table absent or malformed, rounded key out of range) yields 0
// rather than an error.
func ParseDokStats(dokData map[string]any, baseline Baseline) map[string]float64 {
	out := make(map[string]float64, len(statFields))
	deckData, _ := dokData["deck"].(map[string]any)

	for _, field := range statFields {
		out[field] = 0

		value, ok := deckData[field].(float64)
		if !ok {
			continue
		}

		raw, ok := baseline[field+"Stats"]
		if !ok {
			continue
		}
		var table percentileTable
		if err := json.Unmarshal(raw, &table); err != nil {
			continue
		}

		key := strconv.Itoa(int(math.Round(value)))
		if pct, ok := table.PercentileForValue[key]; ok {
			out[field] = pct
		}
	}
	return out
}
