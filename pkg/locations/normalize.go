// FILE: pkg/locations/normalize.go
// PURPOSE: Location query parsing and name normalization

package locations

import (
	"regexp"
	"strings"
)

var (
	reCommaState  = regexp.MustCompile(`^(.+?),\s*([A-Za-z]{2})$`)
	reSpaceState  = regexp.MustCompile(`^(.+?)\s+([A-Z]{2})$`)
	reCivicPrefix = regexp.MustCompile(`^(city|town|village|borough|township)\s+of\s+`)
	reQueryPrefix = regexp.MustCompile(`^(in|at|near|around|events\s+(?:in|at|near|around))\s+`)
	rePunct       = regexp.MustCompile(`[^\w\s-]`)
	reWhitespace  = regexp.MustCompile(`\s+`)
)

// Normalize parses a raw location query into a normalized city name and an
// optional USPS state code.
//
//	"Newton, MA"          -> ("newton", "MA")
//	"Newton Massachusetts"-> ("newton", "MA")
//	"events in Newton"    -> ("newton", "")
//	"City of Springfield" -> ("springfield", "")
func Normalize(text string) (city, state string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	city, state = extractState(text)
	return normalizeCityName(city), state
}

// NormalizeForMatching normalizes a canonical place name the same way the
// query side is normalized, so the two can join on equality.
func NormalizeForMatching(name string) string {
	return normalizeCityName(name)
}

func extractState(text string) (string, string) {
	// "City, ST" or "City,ST"
	if m := reCommaState.FindStringSubmatch(text); m != nil {
		code := strings.ToUpper(strings.TrimSpace(m[2]))
		if IsStateCode(code) {
			return strings.TrimSpace(m[1]), code
		}
	}

	// "City ST" (uppercase code at the end)
	if m := reSpaceState.FindStringSubmatch(text); m != nil {
		if IsStateCode(m[2]) {
			return strings.TrimSpace(m[1]), m[2]
		}
	}

	// "City StateName" (full state name suffix). Longest names are tried
	// first so "west virginia" never loses to "virginia".
	textLower := strings.ToLower(text)
	for _, stateName := range stateNamesByLength {
		if strings.HasSuffix(textLower, stateName) {
			city := strings.TrimSpace(text[:len(text)-len(stateName)])
			city = strings.TrimSpace(strings.TrimSuffix(city, ","))
			return city, StateAbbreviations[stateName]
		}
	}

	return text, ""
}

// normalizeCityName lowercases, strips civic prefixes and query prepositions,
// removes punctuation (hyphens kept for names like Winston-Salem) and
// collapses whitespace.
func normalizeCityName(city string) string {
	if city == "" {
		return ""
	}

	result := strings.ToLower(strings.TrimSpace(city))
	result = reCivicPrefix.ReplaceAllString(result, "")
	result = reQueryPrefix.ReplaceAllString(result, "")
	result = rePunct.ReplaceAllString(result, "")
	result = reWhitespace.ReplaceAllString(result, " ")

	return strings.TrimSpace(result)
}
