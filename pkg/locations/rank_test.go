package locations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-discovery-be/internal/entity"
)

func place(name, state string, population int64) *entity.Place {
	return &entity.Place{
		Name:           name,
		NormalizedName: name,
		State:          state,
		Population:     population,
	}
}

func TestRankPlaces_ExactStateFirst(t *testing.T) {
	places := []*entity.Place{
		place("springfield", "MO", 169176),
		place("springfield", "IL", 114394),
	}

	ranked := RankPlaces(places, "IL")
	assert.Equal(t, "IL", ranked[0].State)
	assert.Equal(t, "MO", ranked[1].State)
}

func TestRankPlaces_RegionalPreferenceBeatsPopulation(t *testing.T) {
	places := []*entity.Place{
		place("portland", "OR", 652503),
		place("portland", "ME", 68408),
	}

	ranked := RankPlaces(places, "")
	assert.Equal(t, "ME", ranked[0].State, "New England state outranks larger place elsewhere")
}

func TestRankPlaces_PopulationWithinSamePreference(t *testing.T) {
	places := []*entity.Place{
		place("springfield", "IL", 114394),
		place("springfield", "MO", 169176),
	}

	// Neither state is in the regional list, population decides.
	ranked := RankPlaces(places, "")
	assert.Equal(t, "MO", ranked[0].State)
}

func TestRankPlaces_DeterministicTieBreak(t *testing.T) {
	places := []*entity.Place{
		place("georgetown", "TX", 1000),
		place("georgetown", "CO", 1000),
	}

	first := RankPlaces(places, "")
	second := RankPlaces([]*entity.Place{places[1], places[0]}, "")
	assert.Equal(t, first[0].State, second[0].State)
	assert.Equal(t, "CO", first[0].State, "alphabetical state breaks the tie")
}

func TestRankPlaces_DoesNotMutateInput(t *testing.T) {
	places := []*entity.Place{
		place("portland", "OR", 652503),
		place("portland", "ME", 68408),
	}

	_ = RankPlaces(places, "")
	assert.Equal(t, "OR", places[0].State)
}

func TestAmbiguousConfidence(t *testing.T) {
	tests := []struct {
		name     string
		place    *entity.Place
		expected float64
	}{
		{"top regional state", place("portland", "MA", 1000), 0.8},
		{"large place elsewhere", place("portland", "OR", 652503), 0.7},
		{"small place elsewhere", place("portland", "TX", 4000), 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AmbiguousConfidence(tc.place))
		})
	}
}

func TestPreferredStatesOrder(t *testing.T) {
	require.Equal(t, []string{"MA", "NH", "RI", "CT", "ME", "VT", "NY"}, PreferredStates)
}
