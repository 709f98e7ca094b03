// FILE: pkg/ranking/engine.go
// PURPOSE: Multi-factor scoring and tier partitioning of search candidates

package ranking

import (
	"sort"

	"event-discovery-be/internal/pkg/logger"
)

const (
	DefaultMaxRecommended = 5
	DefaultMaxAdditional  = 5
	DefaultMaxContext     = 10
)

// Tiers caps the size of each result tier.
type Tiers struct {
	MaxRecommended int
	MaxAdditional  int
	MaxContext     int
}

func DefaultTiers() Tiers {
	return Tiers{
		MaxRecommended: DefaultMaxRecommended,
		MaxAdditional:  DefaultMaxAdditional,
		MaxContext:     DefaultMaxContext,
	}
}

// Engine combines per-factor scores into a final rank and partitions
// candidates into tiers. Category and popularity scoring are pluggable so
// deployments can swap in their own signals.
type Engine struct {
	weights          Weights
	tiers            Tiers
	categoryScorer   Scorer
	popularityScorer Scorer
	log              logger.ILogger
}

func NewEngine(weights Weights, tiers Tiers, log logger.ILogger) *Engine {
	if tiers.MaxRecommended <= 0 {
		tiers.MaxRecommended = DefaultMaxRecommended
	}
	if tiers.MaxAdditional <= 0 {
		tiers.MaxAdditional = DefaultMaxAdditional
	}
	if tiers.MaxContext <= 0 {
		tiers.MaxContext = DefaultMaxContext
	}

	if err := weights.Validate(); err != nil {
		log.Warn("ranking", "Using unbalanced ranking weights", map[string]interface{}{"error": err.Error()})
	}

	return &Engine{
		weights:          weights,
		tiers:            tiers,
		categoryScorer:   TagOverlapScorer,
		popularityScorer: ConstantPopularityScorer,
		log:              log,
	}
}

// SetCategoryScorer replaces the category factor. Intended for wiring, not
// concurrent reconfiguration.
func (e *Engine) SetCategoryScorer(scorer Scorer) {
	if scorer != nil {
		e.categoryScorer = scorer
	}
}

func (e *Engine) SetPopularityScorer(scorer Scorer) {
	if scorer != nil {
		e.popularityScorer = scorer
	}
}

func (e *Engine) Weights() Weights {
	return e.weights
}

// Rank scores every candidate, orders them by score descending, and fills
// the three tiers. Per-request weight overrides may be nil.
func (e *Engine) Rank(candidates []Candidate, qc QueryContext, overrides map[string]float64) Result {
	weights := e.weights
	if len(overrides) > 0 {
		weights = weights.ApplyOverrides(overrides)
	}

	ranked := make([]RankedEvent, 0, len(candidates))
	for _, candidate := range candidates {
		ranked = append(ranked, e.score(candidate, qc, weights))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	result := Result{
		TotalConsidered: len(candidates),
		Metadata:        Metadata{Weights: weights},
	}
	for _, event := range ranked {
		switch {
		case len(result.Recommended) < e.tiers.MaxRecommended:
			result.Recommended = append(result.Recommended, event)
		case len(result.Additional) < e.tiers.MaxAdditional:
			result.Additional = append(result.Additional, event)
		case len(result.Context) < e.tiers.MaxContext:
			result.Context = append(result.Context, event)
		}
	}
	return result
}

func (e *Engine) score(candidate Candidate, qc QueryContext, weights Weights) RankedEvent {
	locScore, distance := locationScore(candidate.Event, qc)
	tScore, daysUntil := timeScore(candidate.Event, qc)

	factors := Factors{
		Semantic:   clamp01(candidate.Similarity),
		Location:   locScore,
		Time:       tScore,
		Category:   clamp01(e.categoryScorer(candidate.Event, qc)),
		Popularity: clamp01(e.popularityScorer(candidate.Event, qc)),
	}

	score := weights.Semantic*factors.Semantic +
		weights.Location*factors.Location +
		weights.Time*factors.Time +
		weights.Category*factors.Category +
		weights.Popularity*factors.Popularity

	return RankedEvent{
		Event:         candidate.Event,
		Score:         clamp01(score),
		Similarity:    candidate.Similarity,
		Factors:       factors,
		DistanceMiles: distance,
		DaysUntil:     daysUntil,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
