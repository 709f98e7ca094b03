package rag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"event-discovery-be/internal/entity"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips tags", "<p>Live <b>jazz</b> tonight</p>", "Live jazz tonight"},
		{"decodes entities", "Food &amp; Drinks&nbsp;included", "Food & Drinks included"},
		{"collapses whitespace", "  lots \n\t of   space  ", "lots of space"},
		{"plain text untouched", "Family fun day", "Family fun day"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CleanHTML(tc.input))
		})
	}
}

func TestBuildSearchText(t *testing.T) {
	start := time.Date(2026, 6, 13, 19, 30, 0, 0, time.UTC) // Saturday evening

	event := entity.Event{
		Title:        "Summer Jazz Festival",
		Description:  "<p>An evening of <em>live jazz</em> on the waterfront.</p>",
		Location:     "Boston Harbor, Boston, MA",
		StartTime:    &start,
		MetadataTags: []string{"music", "outdoor"},
	}

	text := BuildSearchText(event)
	assert.Contains(t, text, "Summer Jazz Festival")
	assert.Contains(t, text, "live jazz on the waterfront")
	assert.NotContains(t, text, "<p>")
	assert.Contains(t, text, "Located at Boston Harbor, Boston, MA")
	assert.Contains(t, text, "Happening on Saturday")
	assert.Contains(t, text, "Evening event")
	assert.Contains(t, text, "In June")
	assert.Contains(t, text, "music outdoor")
}

func TestBuildSearchTextVirtualEvent(t *testing.T) {
	event := entity.Event{
		Title:     "Remote Coding Workshop",
		IsVirtual: true,
	}
	text := BuildSearchText(event)
	assert.Contains(t, text, "Virtual online event")
	assert.NotContains(t, text, "Located at")
}

func TestBuildSearchTextMorningAfternoon(t *testing.T) {
	morning := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	afternoon := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	assert.Contains(t, BuildSearchText(entity.Event{Title: "a", StartTime: &morning}), "Morning event")
	assert.Contains(t, BuildSearchText(entity.Event{Title: "a", StartTime: &afternoon}), "Afternoon event")
}
