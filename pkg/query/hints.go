// FILE: pkg/query/hints.go
// PURPOSE: Heuristic location candidate extraction from query text

package query

import (
	"regexp"
	"strings"
)

var hintPatterns = []*regexp.Regexp{
	// "events in Newton", "near Boston Common"
	regexp.MustCompile(`(?:in|at|near|around)\s+([A-Z][a-zA-Z\s,]+?)(?:\s|$|,)`),
	// "Newton, MA" / "Newton MA"
	regexp.MustCompile(`([A-Z][a-zA-Z]+\s*,?\s*[A-Z][A-Z])`),
	// Two capitalized words ("West Newton")
	regexp.MustCompile(`([A-Z][a-zA-Z]+\s+[A-Z][a-zA-Z]+)`),
}

const maxLocationHints = 3

// LocationHints extracts up to three capitalized location candidates from a
// query, ranked by match order. Candidates shorter than three characters
// are dropped.
func LocationHints(message string) []string {
	var hints []string
	for _, pattern := range hintPatterns {
		for _, m := range pattern.FindAllStringSubmatch(message, -1) {
			candidate := strings.Trim(m[1], " ,")
			if len(candidate) > 2 {
				hints = append(hints, candidate)
			}
			if len(hints) >= maxLocationHints {
				return hints
			}
		}
	}
	return hints
}
