// Package query extracts structured retrieval hints (date ranges, location
// candidates) from free-text event discovery queries.
package query

import "time"

// DateRange is the result of date extraction from a query.
// Both bounds are nil exactly when Confidence is 0.
type DateRange struct {
	DateFrom         *time.Time `json:"date_from"`
	DateTo           *time.Time `json:"date_to"`
	ExtractedPhrases []string   `json:"extracted_phrases"`
	Confidence       float64    `json:"confidence"` // 0.0 to 1.0
}

// HasDates reports whether the extraction produced a usable range.
func (r DateRange) HasDates() bool {
	return r.DateFrom != nil && r.DateTo != nil
}
