// FILE: pkg/ranking/weights.go
// PURPOSE: Scoring weight configuration for the ranking engine

package ranking

import (
	"fmt"
	"math"
)

// Weights holds the relative importance of each scoring factor. The factors
// are each in [0, 1], so with weights summing to 1.0 the final score is too.
type Weights struct {
	Semantic   float64 `json:"semantic"`
	Location   float64 `json:"location"`
	Time       float64 `json:"time"`
	Category   float64 `json:"category"`
	Popularity float64 `json:"popularity"`
}

func DefaultWeights() Weights {
	return Weights{
		Semantic:   0.40,
		Location:   0.25,
		Time:       0.20,
		Category:   0.10,
		Popularity: 0.05,
	}
}

func (w Weights) Sum() float64 {
	return w.Semantic + w.Location + w.Time + w.Category + w.Popularity
}

// Validate reports weights whose sum drifts from 1.0 beyond rounding noise.
// Callers log the problem and keep going; a skewed sum only rescales scores.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.02 {
		return fmt.Errorf("ranking weights sum to %.3f, expected 1.0", w.Sum())
	}
	return nil
}

// ApplyOverrides merges per-request overrides into a copy of the weights.
// Unknown keys are ignored and the result is intentionally not re-validated.
func (w Weights) ApplyOverrides(overrides map[string]float64) Weights {
	merged := w
	for key, value := range overrides {
		switch key {
		case "semantic":
			merged.Semantic = value
		case "location":
			merged.Location = value
		case "time":
			merged.Time = value
		case "category":
			merged.Category = value
		case "popularity":
			merged.Popularity = value
		}
	}
	return merged
}
