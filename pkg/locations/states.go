// Package locations normalizes free-text location queries and ranks
// candidate places deterministically when a name is ambiguous across states.
package locations

import "sort"

// StateAbbreviations maps lowercase full state names to USPS codes.
var StateAbbreviations = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR", "california": "CA",
	"colorado": "CO", "connecticut": "CT", "delaware": "DE", "florida": "FL", "georgia": "GA",
	"hawaii": "HI", "idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
	"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS", "missouri": "MO",
	"montana": "MT", "nebraska": "NE", "nevada": "NV", "new hampshire": "NH", "new jersey": "NJ",
	"new mexico": "NM", "new york": "NY", "north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
	"district of columbia": "DC",
}

// PreferredStates orders states for disambiguation, Greater Boston first.
var PreferredStates = []string{"MA", "NH", "RI", "CT", "ME", "VT", "NY"}

var stateCodes = func() map[string]bool {
	codes := make(map[string]bool, len(StateAbbreviations))
	for _, abbrev := range StateAbbreviations {
		codes[abbrev] = true
	}
	return codes
}()

var stateNamesByLength = func() []string {
	names := make([]string, 0, len(StateAbbreviations))
	for name := range StateAbbreviations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

// IsStateCode reports whether s is a valid USPS state abbreviation.
func IsStateCode(s string) bool {
	return stateCodes[s]
}

// preferredIndex returns the position of state in PreferredStates, or a
// large sentinel when absent so non-preferred states sort last.
func preferredIndex(state string) int {
	for i, s := range PreferredStates {
		if s == state {
			return i
		}
	}
	return 999
}
