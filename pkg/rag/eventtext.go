// FILE: pkg/rag/eventtext.go
// PURPOSE: Builds the searchable text an event is embedded under

package rag

import (
	"fmt"
	"regexp"
	"strings"

	"event-discovery-be/internal/entity"
)

var (
	reHTMLTag    = regexp.MustCompile(`<[^>]+>`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// CleanHTML strips markup and entities from scraped descriptions so they
// embed as plain prose.
func CleanHTML(raw string) string {
	text := reHTMLTag.ReplaceAllString(raw, " ")
	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
	text = replacer.Replace(text)
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}

// BuildSearchText composes the text an event is embedded under. Title and
// description carry the semantics; location, weekday, time of day and month
// are appended so temporal and spatial phrasings in queries land near the
// right events in vector space.
func BuildSearchText(event entity.Event) string {
	var parts []string

	if title := strings.TrimSpace(event.Title); title != "" {
		parts = append(parts, title)
	}
	if description := CleanHTML(event.Description); description != "" {
		parts = append(parts, description)
	}
	if location := strings.TrimSpace(event.Location); location != "" {
		parts = append(parts, fmt.Sprintf("Located at %s", location))
	}

	if event.StartTime != nil {
		start := *event.StartTime
		parts = append(parts, fmt.Sprintf("Happening on %s", start.Weekday().String()))
		parts = append(parts, timeOfDayPhrase(start.Hour()))
		parts = append(parts, fmt.Sprintf("In %s", start.Month().String()))
	}

	if len(event.MetadataTags) > 0 {
		parts = append(parts, strings.Join(event.MetadataTags, " "))
	}
	if event.IsVirtual {
		parts = append(parts, "Virtual online event")
	}

	return strings.Join(parts, ". ")
}

func timeOfDayPhrase(hour int) string {
	switch {
	case hour < 12:
		return "Morning event"
	case hour < 17:
		return "Afternoon event"
	default:
		return "Evening event"
	}
}
