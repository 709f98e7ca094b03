// FILE: pkg/ranking/result.go
// PURPOSE: Tiered ranking output returned to retrieval callers

package ranking

import (
	"time"

	"event-discovery-be/internal/entity"
)

// Candidate is a search hit entering the ranking pipeline.
type Candidate struct {
	Event      entity.Event
	Similarity float64
}

// RankedEvent is a candidate with its final score and factor breakdown.
// DistanceMiles and DaysUntil are diagnostics carried alongside the factor
// scores they fed.
type RankedEvent struct {
	Event         entity.Event `json:"event"`
	Score         float64      `json:"score"`
	Similarity    float64      `json:"similarity"`
	Factors       Factors      `json:"factors"`
	DistanceMiles *float64     `json:"distance_miles,omitempty"`
	DaysUntil     *float64     `json:"days_until,omitempty"`
}

// Metadata describes how the result set was produced. The retrieval service
// fills it in; the engine only ranks.
type Metadata struct {
	Query              string     `json:"query"`
	DateFrom           *time.Time `json:"date_from,omitempty"`
	DateTo             *time.Time `json:"date_to,omitempty"`
	DateConfidence     float64    `json:"date_confidence,omitempty"`
	LocationName       string     `json:"location_name,omitempty"`
	LocationConfidence float64    `json:"location_confidence,omitempty"`
	EmbeddingMode      string     `json:"embedding_mode,omitempty"`
	FallbackUsed       bool       `json:"fallback_used,omitempty"`
	Error              string     `json:"error,omitempty"`
	// Weights holds the effective weights the engine scored with, after
	// any per-request overrides.
	Weights Weights `json:"weights"`
}

// Result is the tiered ranking output. Recommended holds the strongest
// matches, Additional the next band, and Context lower-scored events kept
// around for downstream consumers that want broader grounding.
type Result struct {
	Recommended     []RankedEvent `json:"recommended"`
	Additional      []RankedEvent `json:"additional"`
	Context         []RankedEvent `json:"context"`
	TotalConsidered int           `json:"total_considered"`
	Metadata        Metadata      `json:"metadata"`
}

// AllEvents returns every ranked event across the three tiers, preserving
// the score ordering.
func (r Result) AllEvents() []RankedEvent {
	all := make([]RankedEvent, 0, len(r.Recommended)+len(r.Additional)+len(r.Context))
	all = append(all, r.Recommended...)
	all = append(all, r.Additional...)
	all = append(all, r.Context...)
	return all
}

// FlatEvents returns recommended plus additional events, the shape older
// callers expect before tiers existed.
func (r Result) FlatEvents() []RankedEvent {
	flat := make([]RankedEvent, 0, len(r.Recommended)+len(r.Additional))
	flat = append(flat, r.Recommended...)
	flat = append(flat, r.Additional...)
	return flat
}
