package locations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedCity  string
		expectedState string
	}{
		{"comma state code", "Newton, MA", "newton", "MA"},
		{"comma no space", "Newton,MA", "newton", "MA"},
		{"trailing state code", "Newton MA", "newton", "MA"},
		{"full state name", "Newton Massachusetts", "newton", "MA"},
		{"full state name with comma", "Portland, Maine", "portland", "ME"},
		{"west virginia beats virginia", "Charleston West Virginia", "charleston", "WV"},
		{"query preposition stripped", "events in Newton", "newton", ""},
		{"bare preposition stripped", "near Cambridge", "cambridge", ""},
		{"civic prefix stripped", "City of Springfield", "springfield", ""},
		{"punctuation removed", "St. Paul, MN", "st paul", "MN"},
		{"hyphen preserved", "Winston-Salem, NC", "winston-salem", "NC"},
		{"lowercase state after comma", "boston, ma", "boston", "MA"},
		{"lowercase trailing code ignored", "boston ma", "boston ma", ""},
		{"no state", "Worcester", "worcester", ""},
		{"empty", "", "", ""},
		{"whitespace collapsed", "  New   York,  NY ", "new york", "NY"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			city, state := Normalize(tc.input)
			assert.Equal(t, tc.expectedCity, city)
			assert.Equal(t, tc.expectedState, state)
		})
	}
}

func TestNormalizeForMatchingAgreesWithQuerySide(t *testing.T) {
	// The Gazetteer name and the query form must land on the same key.
	assert.Equal(t, NormalizeForMatching("Newton"), func() string {
		city, _ := Normalize("events in Newton, MA")
		return city
	}())
	assert.Equal(t, "winston-salem", NormalizeForMatching("Winston-Salem"))
}

func TestIsStateCode(t *testing.T) {
	assert.True(t, IsStateCode("MA"))
	assert.True(t, IsStateCode("DC"))
	assert.False(t, IsStateCode("XX"))
	assert.False(t, IsStateCode("ma"))
}
