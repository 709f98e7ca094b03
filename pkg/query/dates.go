// FILE: pkg/query/dates.go
// PURPOSE: Natural-language date range extraction for event queries

package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"jun": time.June, "jul": time.July, "aug": time.August, "sep": time.September,
	"sept": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	reToday       = regexp.MustCompile(`\btoday\b`)
	reTonight     = regexp.MustCompile(`\btonight\b`)
	reTomorrow    = regexp.MustCompile(`\btomorrow\b`)
	reThisWeekend = regexp.MustCompile(`\bthis\s+weekend\b`)
	reNextWeekend = regexp.MustCompile(`\bnext\s+weekend\b`)
	reInDays      = regexp.MustCompile(`\bin\s+(\d+)\s+days?\b`)
	reInHours     = regexp.MustCompile(`\bin\s+(\d+)\s+hours?\b`)
	reNextDays    = regexp.MustCompile(`\bnext\s+(\d+)\s+days?\b`)
	reNextHours   = regexp.MustCompile(`\bnext\s+(\d+)\s+hours?\b`)

	reMonthDay = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept?|oct|nov|dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?\b`)
	reDayMonth = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept?|oct|nov|dec)\b`)
	reSlash    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)
	reISODate  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)

	reBareNumber = regexp.MustCompile(`^\d+$`)
	reAgeRange   = regexp.MustCompile(`(?i)^\d+[-–]\d+\s*year`)
	reAgeSingle  = regexp.MustCompile(`(?i)^\d+\s*year`)
	reAgeOld     = regexp.MustCompile(`(?i)^\d+\s*years?\s*old`)
)

// Words a naive date search can misread as dates (e.g. "story time", "to do").
var stopPhrases = map[string]bool{
	"time": true, "do": true, "to": true, "at": true, "on": true,
	"in": true, "for": true, "the": true, "a": true, "an": true,
}

var explicitDateKeywords = []string{
	"tomorrow", "today", "weekend",
	"saturday", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday",
}

type datedPhrase struct {
	phrase string
	date   time.Time
}

// ExtractDates pulls a date range out of a natural language query.
// Past-only mentions are discarded rather than treated as "no constraint":
// event discovery is about the future, so "what happened yesterday" yields
// an empty extraction with zero confidence.
func ExtractDates(raw string, ref time.Time) DateRange {
	queryLower := strings.ToLower(raw)

	found := extractCommonPatterns(queryLower, ref)
	phrases := make([]string, 0, len(found))
	for _, f := range found {
		phrases = append(phrases, f.phrase)
	}

	// Second pass: generic date search for calendar-style mentions the
	// pattern layer misses, with false-positive filtering.
	for _, cand := range searchGenericDates(queryLower, ref) {
		candLower := strings.ToLower(cand.phrase)
		dup := false
		for _, p := range phrases {
			pl := strings.ToLower(p)
			if strings.Contains(pl, candLower) || strings.Contains(candLower, pl) {
				dup = true
				break
			}
		}
		if dup || isFalsePositive(candLower, queryLower) {
			continue
		}
		found = append(found, cand)
		phrases = append(phrases, cand.phrase)
	}

	// Keep only dates on/after the reference day.
	todayStart := startOfDay(ref)
	future := found[:0]
	for _, f := range found {
		if !startOfDay(f.date).Before(todayStart) {
			future = append(future, f)
		}
	}

	if len(future) == 0 {
		return DateRange{ExtractedPhrases: []string{}, Confidence: 0.0}
	}

	minDate, maxDate := future[0].date, future[0].date
	phrases = phrases[:0]
	for _, f := range future {
		phrases = append(phrases, f.phrase)
		if f.date.Before(minDate) {
			minDate = f.date
		}
		if f.date.After(maxDate) {
			maxDate = f.date
		}
	}

	dateFrom := startOfDay(minDate)
	dateTo := endOfDay(maxDate)

	return DateRange{
		DateFrom:         &dateFrom,
		DateTo:           &dateTo,
		ExtractedPhrases: phrases,
		Confidence:       calculateConfidence(queryLower, len(future)),
	}
}

// extractCommonPatterns handles relative phrases a generic date search
// cannot resolve: today, tonight, tomorrow, weekends, weekday names with
// this/next qualifiers and "in/next N days/hours".
func extractCommonPatterns(q string, ref time.Time) []datedPhrase {
	var results []datedPhrase
	today := startOfDay(ref)
	weekday := pyWeekday(ref) // Monday=0 ... Sunday=6

	if reToday.MatchString(q) {
		results = append(results, datedPhrase{"today", today})
	}
	if reTonight.MatchString(q) {
		results = append(results, datedPhrase{"tonight", today.Add(18 * time.Hour)})
	}
	if reTomorrow.MatchString(q) {
		results = append(results, datedPhrase{"tomorrow", today.AddDate(0, 0, 1)})
	}

	if reThisWeekend.MatchString(q) {
		daysUntilSaturday := (5 - weekday + 7) % 7
		saturday := today.AddDate(0, 0, daysUntilSaturday)
		results = append(results,
			datedPhrase{"this weekend", saturday},
			datedPhrase{"this weekend (end)", saturday.AddDate(0, 0, 1)},
		)
	}
	if reNextWeekend.MatchString(q) {
		daysUntilSaturday := (5 - weekday + 7) % 7
		if daysUntilSaturday == 0 {
			daysUntilSaturday = 7
		}
		nextSaturday := today.AddDate(0, 0, daysUntilSaturday+7)
		results = append(results,
			datedPhrase{"next weekend", nextSaturday},
			datedPhrase{"next weekend (end)", nextSaturday.AddDate(0, 0, 1)},
		)
	}

	for i, day := range dayNames {
		thisPattern := regexp.MustCompile(`\b(?:this\s+)?` + day + `\b`)
		nextPattern := regexp.MustCompile(`\bnext\s+` + day + `\b`)

		if nextPattern.MatchString(q) {
			// "next Friday" always skips to the following week's occurrence.
			daysAhead := (i - weekday + 7) % 7
			if daysAhead == 0 {
				daysAhead = 7
			}
			results = append(results, datedPhrase{"next " + day, today.AddDate(0, 0, daysAhead+7)})
		} else if thisPattern.MatchString(q) {
			// "this Friday" or bare "Friday" is the upcoming one; saying
			// "Friday" on a Friday means today.
			daysAhead := (i - weekday + 7) % 7
			results = append(results, datedPhrase{day, today.AddDate(0, 0, daysAhead)})
		}
	}

	if m := reInDays.FindStringSubmatch(q); m != nil {
		days, _ := strconv.Atoi(m[1])
		results = append(results, datedPhrase{m[0], today.AddDate(0, 0, days)})
	}
	if m := reInHours.FindStringSubmatch(q); m != nil {
		hours, _ := strconv.Atoi(m[1])
		results = append(results, datedPhrase{m[0], ref.Add(time.Duration(hours) * time.Hour)})
	}
	if m := reNextDays.FindStringSubmatch(q); m != nil {
		days, _ := strconv.Atoi(m[1])
		results = append(results, datedPhrase{m[0], today.AddDate(0, 0, days)})
	}
	if m := reNextHours.FindStringSubmatch(q); m != nil {
		hours, _ := strconv.Atoi(m[1])
		results = append(results, datedPhrase{m[0], ref.Add(time.Duration(hours) * time.Hour)})
	}

	return results
}

// searchGenericDates finds calendar-style mentions: "march 14", "14 march",
// "3/14", "2026-03-14". Month/day mentions without a year resolve to the
// next occurrence on/after the reference day.
func searchGenericDates(q string, ref time.Time) []datedPhrase {
	var results []datedPhrase

	for _, m := range reMonthDay.FindAllStringSubmatch(q, -1) {
		month := monthsByName[strings.TrimSuffix(m[1], ".")]
		day, _ := strconv.Atoi(m[2])
		results = appendCalendarDate(results, m[0], month, day, m[3], ref)
	}
	for _, m := range reDayMonth.FindAllStringSubmatch(q, -1) {
		month := monthsByName[m[2]]
		day, _ := strconv.Atoi(m[1])
		results = appendCalendarDate(results, m[0], month, day, "", ref)
	}
	for _, m := range reSlash.FindAllStringSubmatch(q, -1) {
		monthNum, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if monthNum < 1 || monthNum > 12 || day < 1 || day > 31 {
			continue
		}
		results = appendCalendarDate(results, m[0], time.Month(monthNum), day, m[3], ref)
	}
	for _, m := range reISODate.FindAllStringSubmatch(q, -1) {
		year, _ := strconv.Atoi(m[1])
		monthNum, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if monthNum < 1 || monthNum > 12 || day < 1 || day > 31 {
			continue
		}
		results = appendCalendarDate(results, m[0], time.Month(monthNum), day, fmt.Sprintf("%d", year), ref)
	}

	return results
}

func appendCalendarDate(results []datedPhrase, phrase string, month time.Month, day int, yearStr string, ref time.Time) []datedPhrase {
	if day < 1 || day > 31 {
		return results
	}
	if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return results
		}
		return append(results, datedPhrase{phrase, time.Date(year, month, day, 0, 0, 0, 0, ref.Location())})
	}

	// No year given: prefer the future occurrence.
	candidate := time.Date(ref.Year(), month, day, 0, 0, 0, 0, ref.Location())
	if candidate.Before(startOfDay(ref)) {
		candidate = candidate.AddDate(1, 0, 0)
	}
	return append(results, datedPhrase{phrase, candidate})
}

// isFalsePositive rejects phrases the generic pass picked up that are not
// really dates: bare numbers, age expressions ("3-5 year olds") and short
// ambiguous words.
func isFalsePositive(phrase, fullQuery string) bool {
	phrase = strings.TrimSpace(phrase)

	if reAgeRange.MatchString(phrase) || reAgeOld.MatchString(phrase) || reAgeSingle.MatchString(phrase) {
		return true
	}

	// Phrase used in an age context elsewhere in the query.
	escaped := regexp.QuoteMeta(phrase)
	if regexp.MustCompile(`(?i)`+escaped+`\s*olds?\b`).MatchString(fullQuery) ||
		regexp.MustCompile(`(?i)`+escaped+`\s+old\b`).MatchString(fullQuery) {
		return true
	}

	if reBareNumber.MatchString(phrase) {
		return true
	}

	return stopPhrases[strings.ToLower(phrase)]
}

func calculateConfidence(q string, datesFound int) float64 {
	confidence := 0.5

	for _, kw := range explicitDateKeywords {
		if strings.Contains(q, kw) {
			confidence += 0.3
			break
		}
	}
	if len(q) > 100 {
		confidence -= 0.1
	}
	if datesFound > 1 {
		confidence += 0.1
	}

	if confidence < 0.0 {
		return 0.0
	}
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}

// pyWeekday maps time.Weekday to Monday=0 ... Sunday=6.
func pyWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
