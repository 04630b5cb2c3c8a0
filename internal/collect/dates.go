// Package collect implements the invoice field-collection core: a
// natural-language date normalizer, a description list formatter, and the
// first-write-wins field merger that drives the collect/preview/approve
// workflow.
package collect

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	daysPattern   = regexp.MustCompile(`(?:in\s+)?(\d+)\s*days?`)
	weeksPattern  = regexp.MustCompile(`(?:in\s+)?(\d+)\s*weeks?`)
	monthsPattern = regexp.MustCompile(`(?:in\s+)?(\d+)\s*months?`)
	netPattern    = regexp.MustCompile(`net\s*(\d+)`)
	ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
)

// absoluteLayouts are tried in order against cleaned input. Yearless
// layouts are listed separately because a date parsed without a year that
// has already passed rolls forward to next year.
var absoluteLayouts = []string{
	"2006-01-02",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"1/2/2006",
}

var yearlessLayouts = []string{
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
}

// Normalizer converts natural-language due-date phrases into absolute
// YYYY-MM-DD dates. Relative phrases are resolved against the clock at
// call time, so Normalize is deliberately not pure. Weeks are a fixed 7
// days and months a fixed 30 days; this is an approximation, not calendar
// arithmetic.
type Normalizer struct {
	// Now supplies the reference clock. Nil means time.Now.
	Now func() time.Time
}

func (n Normalizer) today() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

// Normalize parses a due-date phrase and returns the date as YYYY-MM-DD.
// It reports false when the phrase cannot be understood; the caller turns
// that into a user-facing notice rather than an error.
func (n Normalizer) Normalize(text string) (string, bool) {
	input := strings.ToLower(strings.TrimSpace(text))
	if input == "" {
		return "", false
	}
	today := n.today()

	// Numeric relative patterns take priority over literal phrases so
	// "2 weeks" never matches the "next week" branch.
	if m := daysPattern.FindStringSubmatch(input); m != nil {
		return offsetDays(today, m[1], 1)
	}
	if m := weeksPattern.FindStringSubmatch(input); m != nil {
		return offsetDays(today, m[1], 7)
	}
	if m := monthsPattern.FindStringSubmatch(input); m != nil {
		return offsetDays(today, m[1], 30)
	}

	if strings.Contains(input, "next week") {
		return formatDate(today.AddDate(0, 0, 7)), true
	}
	if strings.Contains(input, "next month") {
		return formatDate(today.AddDate(0, 0, 30)), true
	}
	if strings.Contains(input, "tomorrow") {
		return formatDate(today.AddDate(0, 0, 1)), true
	}

	// Payment terms: "net 30" means 30 days from today.
	if m := netPattern.FindStringSubmatch(input); m != nil {
		return offsetDays(today, m[1], 1)
	}

	return n.parseAbsolute(input, today)
}

// parseAbsolute handles spelled-out calendar dates such as "April 12 2025"
// or "Jan 5th". Ordinal suffixes are stripped before parsing. A date
// parsed without an explicit year that falls before today rolls forward
// one year, so "December 15" said in late December still lands in the
// future.
func (n Normalizer) parseAbsolute(input string, today time.Time) (string, bool) {
	cleaned := ordinalSuffix.ReplaceAllString(input, "$1")
	cleaned = stripFillerWords(cleaned)
	cleaned = capitalizeWords(cleaned)

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return formatDate(t), true
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location())
		if dateBefore(t, today) {
			t = t.AddDate(1, 0, 0)
		}
		return formatDate(t), true
	}

	return "", false
}

func offsetDays(today time.Time, digits string, multiplier int) (string, bool) {
	num, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}
	return formatDate(today.AddDate(0, 0, num*multiplier)), true
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func dateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// stripFillerWords drops leading prepositions so phrases like
// "by April 12" still parse.
func stripFillerWords(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 {
		switch words[0] {
		case "on", "by", "due", "the":
			words = words[1:]
		default:
			return strings.Join(words, " ")
		}
	}
	return ""
}

// capitalizeWords restores the capitalization time.Parse expects for
// month names after the input was lowercased.
func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
