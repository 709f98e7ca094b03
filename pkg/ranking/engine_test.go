package ranking

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-discovery-be/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var testNow = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

func futureEvent(title string, daysAhead int, lat, lng float64) entity.Event {
	start := testNow.AddDate(0, 0, daysAhead)
	return entity.Event{
		Id:        uuid.New(),
		Title:     title,
		StartTime: &start,
		Latitude:  &lat,
		Longitude: &lng,
	}
}

func ptr[T any](v T) *T { return &v }

func TestDefaultWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 0.001)
	assert.NoError(t, DefaultWeights().Validate())
}

func TestWeightsValidate(t *testing.T) {
	skewed := Weights{Semantic: 0.9, Location: 0.5}
	assert.Error(t, skewed.Validate())
}

func TestApplyOverrides(t *testing.T) {
	merged := DefaultWeights().ApplyOverrides(map[string]float64{
		"semantic": 0.7,
		"location": 0.1,
		"bogus":    5.0,
	})
	assert.Equal(t, 0.7, merged.Semantic)
	assert.Equal(t, 0.1, merged.Location)
	assert.Equal(t, DefaultWeights().Time, merged.Time)
}

func TestTimeScore(t *testing.T) {
	qc := QueryContext{Now: testNow}

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		expected float64
		delta    float64
	}{
		{"starts now", ptr(testNow), nil, 1.0, 0.01},
		{"fifteen days out", ptr(testNow.AddDate(0, 0, 15)), nil, 0.5, 0.01},
		{"beyond horizon", ptr(testNow.AddDate(0, 0, 45)), nil, 0.0, 0.001},
		{"ongoing", ptr(testNow.Add(-2 * time.Hour)), ptr(testNow.Add(2 * time.Hour)), 1.0, 0.001},
		{"already ended", ptr(testNow.Add(-48 * time.Hour)), ptr(testNow.Add(-24 * time.Hour)), 0.0, 0.001},
		{"no start time", nil, nil, neutralScore, 0.001},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			event := entity.Event{StartTime: tc.start, EndTime: tc.end}
			score, daysUntil := timeScore(event, qc)
			assert.InDelta(t, tc.expected, score, tc.delta)
			if tc.start == nil {
				assert.Nil(t, daysUntil)
			} else {
				require.NotNil(t, daysUntil)
				assert.InDelta(t, tc.start.Sub(testNow).Hours()/24.0, *daysUntil, 0.001)
			}
		})
	}
}

func TestLocationScore(t *testing.T) {
	// Boston Common
	qc := QueryContext{
		Now:         testNow,
		Latitude:    ptr(42.3550),
		Longitude:   ptr(-71.0655),
		RadiusMiles: 10.0,
	}

	t.Run("event at query point", func(t *testing.T) {
		event := futureEvent("nearby", 1, 42.3550, -71.0655)
		score, distance := locationScore(event, qc)
		assert.InDelta(t, 1.0, score, 0.01)
		require.NotNil(t, distance)
		assert.InDelta(t, 0.0, *distance, 0.1)
	})

	t.Run("event outside radius", func(t *testing.T) {
		// Worcester is roughly 40 miles from Boston
		event := futureEvent("far", 1, 42.2626, -71.8023)
		score, distance := locationScore(event, qc)
		assert.Equal(t, 0.0, score)
		require.NotNil(t, distance)
		assert.Greater(t, *distance, 10.0)
	})

	t.Run("virtual event is neutral", func(t *testing.T) {
		event := entity.Event{IsVirtual: true}
		score, distance := locationScore(event, qc)
		assert.Equal(t, neutralScore, score)
		assert.Nil(t, distance)
	})

	t.Run("physical event without coordinates", func(t *testing.T) {
		event := entity.Event{Title: "unknown venue"}
		score, _ := locationScore(event, qc)
		assert.Equal(t, 0.0, score)
	})

	t.Run("no query location is neutral", func(t *testing.T) {
		event := futureEvent("anywhere", 1, 42.3550, -71.0655)
		score, _ := locationScore(event, QueryContext{Now: testNow})
		assert.Equal(t, neutralScore, score)
	})
}

func TestTagOverlapScorer(t *testing.T) {
	tests := []struct {
		name      string
		eventTags []string
		queryTags []string
		expected  float64
	}{
		{"identical tags", []string{"music", "jazz"}, []string{"music", "jazz"}, 1.0},
		{"partial overlap", []string{"music", "outdoor"}, []string{"music", "family"}, 1.0 / 3.0},
		{"disjoint", []string{"sports"}, []string{"theater"}, 0.0},
		{"no query tags", []string{"music"}, nil, neutralScore},
		{"no event tags", nil, []string{"music"}, 0.0},
		{"case insensitive", []string{"Music"}, []string{"music"}, 1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			event := entity.Event{MetadataTags: tc.eventTags}
			qc := QueryContext{Tags: tc.queryTags}
			assert.InDelta(t, tc.expected, TagOverlapScorer(event, qc), 0.001)
		})
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	engine := NewEngine(DefaultWeights(), DefaultTiers(), nopLogger{})
	qc := QueryContext{Now: testNow}

	candidates := []Candidate{
		{Event: futureEvent("weak match", 25, 42.35, -71.06), Similarity: 0.2},
		{Event: futureEvent("strong match", 1, 42.35, -71.06), Similarity: 0.95},
		{Event: futureEvent("medium match", 10, 42.35, -71.06), Similarity: 0.6},
	}

	result := engine.Rank(candidates, qc, nil)
	require.Len(t, result.Recommended, 3)
	assert.Equal(t, "strong match", result.Recommended[0].Event.Title)
	assert.Equal(t, "medium match", result.Recommended[1].Event.Title)
	assert.Equal(t, "weak match", result.Recommended[2].Event.Title)
	assert.Equal(t, 3, result.TotalConsidered)

	for i := 1; i < len(result.Recommended); i++ {
		assert.GreaterOrEqual(t, result.Recommended[i-1].Score, result.Recommended[i].Score)
	}
}

func TestRankPartitionsTiers(t *testing.T) {
	tiers := Tiers{MaxRecommended: 2, MaxAdditional: 2, MaxContext: 3}
	engine := NewEngine(DefaultWeights(), tiers, nopLogger{})
	qc := QueryContext{Now: testNow}

	candidates := make([]Candidate, 10)
	for i := range candidates {
		candidates[i] = Candidate{
			Event:      futureEvent(fmt.Sprintf("event %d", i), i+1, 42.35, -71.06),
			Similarity: 1.0 - float64(i)*0.05,
		}
	}

	result := engine.Rank(candidates, qc, nil)
	assert.Len(t, result.Recommended, 2)
	assert.Len(t, result.Additional, 2)
	assert.Len(t, result.Context, 3)
	assert.Equal(t, 10, result.TotalConsidered)

	// Tier boundaries keep the non-increasing score order.
	all := result.AllEvents()
	require.Len(t, all, 7)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Score, all[i].Score)
	}

	flat := result.FlatEvents()
	assert.Len(t, flat, 4)
	assert.Equal(t, all[:4], flat)

	// Tiers are disjoint.
	seen := make(map[string]bool)
	for _, event := range all {
		assert.False(t, seen[event.Event.Title])
		seen[event.Event.Title] = true
	}
}

func TestRankWithOverrides(t *testing.T) {
	engine := NewEngine(DefaultWeights(), DefaultTiers(), nopLogger{})
	qc := QueryContext{Now: testNow}

	soonButWeak := Candidate{Event: futureEvent("soon", 1, 42.35, -71.06), Similarity: 0.3}
	lateButStrong := Candidate{Event: futureEvent("late", 28, 42.35, -71.06), Similarity: 0.9}
	candidates := []Candidate{soonButWeak, lateButStrong}

	// Default weights favor the semantic match.
	base := engine.Rank(candidates, qc, nil)
	assert.Equal(t, "late", base.Recommended[0].Event.Title)

	// Shifting all weight onto time flips the order.
	timed := engine.Rank(candidates, qc, map[string]float64{"semantic": 0.0, "time": 0.95})
	assert.Equal(t, "soon", timed.Recommended[0].Event.Title)

	// Engine weights are untouched by per-request overrides.
	assert.Equal(t, DefaultWeights(), engine.Weights())
}

func TestRankRecordsEffectiveWeights(t *testing.T) {
	engine := NewEngine(DefaultWeights(), DefaultTiers(), nopLogger{})
	qc := QueryContext{Now: testNow}
	candidates := []Candidate{{Event: futureEvent("solo", 1, 42.35, -71.06), Similarity: 0.5}}

	base := engine.Rank(candidates, qc, nil)
	assert.Equal(t, DefaultWeights(), base.Metadata.Weights)

	overridden := engine.Rank(candidates, qc, map[string]float64{"semantic": 0.7, "location": 0.0})
	assert.Equal(t, 0.7, overridden.Metadata.Weights.Semantic)
	assert.Equal(t, 0.0, overridden.Metadata.Weights.Location)
	assert.Equal(t, DefaultWeights().Time, overridden.Metadata.Weights.Time)
}

func TestRankCarriesDaysUntil(t *testing.T) {
	engine := NewEngine(DefaultWeights(), DefaultTiers(), nopLogger{})
	qc := QueryContext{Now: testNow}

	result := engine.Rank([]Candidate{
		{Event: futureEvent("week out", 7, 42.35, -71.06), Similarity: 0.5},
	}, qc, nil)

	require.Len(t, result.Recommended, 1)
	require.NotNil(t, result.Recommended[0].DaysUntil)
	assert.InDelta(t, 7.0, *result.Recommended[0].DaysUntil, 0.01)
}

func TestRankEmptyCandidates(t *testing.T) {
	engine := NewEngine(DefaultWeights(), DefaultTiers(), nopLogger{})
	result := engine.Rank(nil, QueryContext{Now: testNow}, nil)
	assert.Empty(t, result.Recommended)
	assert.Empty(t, result.AllEvents())
	assert.Equal(t, 0, result.TotalConsidered)
}
