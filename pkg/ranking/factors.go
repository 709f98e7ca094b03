// FILE: pkg/ranking/factors.go
// PURPOSE: Per-candidate scoring factors and their default scorers

package ranking

import (
	"strings"
	"time"

	"event-discovery-be/internal/entity"
	"event-discovery-be/pkg/geo"
)

// neutralScore is used when a factor has nothing to discriminate on, so the
// candidate is neither rewarded nor punished for missing data.
const neutralScore = 0.5

// defaultHorizonDays bounds the time proximity decay. Events starting beyond
// the horizon all score 0 on the time factor.
const defaultHorizonDays = 30

// QueryContext carries the query-side inputs each factor scores against.
type QueryContext struct {
	Now         time.Time
	Latitude    *float64
	Longitude   *float64
	RadiusMiles float64
	Tags        []string
	HorizonDays int
}

func (qc QueryContext) hasCoordinates() bool {
	return qc.Latitude != nil && qc.Longitude != nil
}

func (qc QueryContext) horizon() float64 {
	if qc.HorizonDays > 0 {
		return float64(qc.HorizonDays)
	}
	return defaultHorizonDays
}

// Factors are the individual [0, 1] scores combined into the final rank.
type Factors struct {
	Semantic   float64 `json:"semantic"`
	Location   float64 `json:"location"`
	Time       float64 `json:"time"`
	Category   float64 `json:"category"`
	Popularity float64 `json:"popularity"`
}

// Scorer computes one pluggable factor for a candidate event.
type Scorer func(event entity.Event, qc QueryContext) float64

// locationScore decays linearly from 1.0 at the query point to 0.0 at the
// search radius. Virtual events are location-independent and score neutral,
// as do searches without a resolved location. Physical events without
// coordinates cannot be placed and score 0.
func locationScore(event entity.Event, qc QueryContext) (float64, *float64) {
	if event.IsVirtual {
		return neutralScore, nil
	}
	if !qc.hasCoordinates() {
		return neutralScore, nil
	}
	if !event.HasCoordinates() {
		return 0.0, nil
	}

	radius := qc.RadiusMiles
	if radius <= 0 {
		radius = geo.DefaultRadiusMiles
	}

	distance := geo.HaversineMiles(*qc.Latitude, *qc.Longitude, *event.Latitude, *event.Longitude)
	score := 1.0 - distance/radius
	if score < 0 {
		score = 0
	}
	return score, &distance
}

// timeScore rewards sooner events with a linear decay across the horizon.
// Events already underway score full marks until they end. The second
// return is the signed days-until-start diagnostic, nil without a start
// time.
func timeScore(event entity.Event, qc QueryContext) (float64, *float64) {
	if event.StartTime == nil {
		return neutralScore, nil
	}

	days := event.StartTime.Sub(qc.Now).Hours() / 24.0

	if event.StartTime.Before(qc.Now) {
		if event.EndTime != nil && event.EndTime.After(qc.Now) {
			return 1.0, &days
		}
		return 0.0, &days
	}

	score := 1.0 - days/qc.horizon()
	if score < 0 {
		score = 0
	}
	return score, &days
}

// TagOverlapScorer scores category affinity as Jaccard overlap between the
// event's metadata tags and the query's tags. No query tags means the factor
// has nothing to measure and stays neutral.
func TagOverlapScorer(event entity.Event, qc QueryContext) float64 {
	if len(qc.Tags) == 0 {
		return neutralScore
	}
	if len(event.MetadataTags) == 0 {
		return 0.0
	}

	querySet := make(map[string]struct{}, len(qc.Tags))
	for _, tag := range qc.Tags {
		querySet[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}

	union := len(querySet)
	intersection := 0
	seen := make(map[string]struct{}, len(event.MetadataTags))
	for _, tag := range event.MetadataTags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		if _, ok := querySet[normalized]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return neutralScore
	}
	return float64(intersection) / float64(union)
}

// ConstantPopularityScorer holds the popularity factor flat until real
// engagement signals (saves, clicks, attendance counts) are ingested.
func ConstantPopularityScorer(event entity.Event, qc QueryContext) float64 {
	return neutralScore
}
