// FILE: pkg/locations/rank.go
// PURPOSE: Deterministic disambiguation ranking for same-named places

package locations

import (
	"sort"

	"event-discovery-be/internal/entity"
)

// Match is the outcome of one location resolution call.
type Match struct {
	MatchedPlace    *entity.Place
	Confidence      float64 // 0.0 to 1.0
	IsAmbiguous     bool
	Alternatives    []*entity.Place // at most 4
	NormalizedQuery string
	StateUsed       string // empty when no state was available
}

// Coordinates returns the matched place's position, or false when unresolved.
func (m Match) Coordinates() (lat, lng float64, ok bool) {
	if m.MatchedPlace == nil {
		return 0, 0, false
	}
	return m.MatchedPlace.Latitude, m.MatchedPlace.Longitude, true
}

func (m Match) DisplayName() string {
	if m.MatchedPlace == nil {
		return ""
	}
	return m.MatchedPlace.DisplayName()
}

// RankPlaces orders same-named candidates for disambiguation:
//  1. exact match to the caller's preferred state
//  2. position in PreferredStates
//  3. population descending
//  4. state then name alphabetically (deterministic tie-break)
//
// The input slice is not modified.
func RankPlaces(places []*entity.Place, preferredState string) []*entity.Place {
	ranked := make([]*entity.Place, len(places))
	copy(ranked, places)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		aExact := boolRank(preferredState != "" && a.State == preferredState)
		bExact := boolRank(preferredState != "" && b.State == preferredState)
		if aExact != bExact {
			return aExact < bExact
		}

		aIdx, bIdx := preferredIndex(a.State), preferredIndex(b.State)
		if aIdx != bIdx {
			return aIdx < bIdx
		}

		if a.Population != b.Population {
			return a.Population > b.Population
		}

		if a.State != b.State {
			return a.State < b.State
		}
		return a.Name < b.Name
	})

	return ranked
}

// AmbiguousConfidence scores an ambiguous best match: 0.8 when the state is
// in the top of the regional preference list, 0.7 for large places, else 0.5.
func AmbiguousConfidence(best *entity.Place) float64 {
	idx := preferredIndex(best.State)
	if idx >= 0 && idx < 3 {
		return 0.8
	}
	if best.Population > 50000 {
		return 0.7
	}
	return 0.5
}

func boolRank(match bool) int {
	if match {
		return 0
	}
	return 1
}
