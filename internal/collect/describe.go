package collect

import (
	"fmt"
	"regexp"
	"strings"
)

// descriptionSeparators are candidate list separators in priority order.
// An earlier separator keeps the win on ties; only a strictly greater
// item count replaces it.
var descriptionSeparators = []string{"\n", ";", ",", "|", "•", "-", "*"}

var (
	numberMarker = regexp.MustCompile(`^[0-9]+[.)\-\s]+`)
	bulletMarker = regexp.MustCompile(`^[•\-*]\s*`)
)

// FormatDescription detects an itemized list hidden inside free text and
// renders it as numbered lines ("1. item"), one per line. Text that does
// not split into at least two items is returned unchanged. Formatting is
// idempotent: existing numbering and bullet markers are stripped before
// renumbering, so formatting already-formatted output reproduces it.
func FormatDescription(text string) string {
	if text == "" {
		return text
	}

	bestSeparator := ""
	maxItems := 1
	for _, sep := range descriptionSeparators {
		if !strings.Contains(text, sep) {
			continue
		}
		if n := len(splitAndTrim(text, sep)); n > maxItems {
			maxItems = n
			bestSeparator = sep
		}
	}

	if bestSeparator == "" || maxItems <= 1 {
		return text
	}

	items := []string{}
	for _, part := range splitAndTrim(text, bestSeparator) {
		part = numberMarker.ReplaceAllString(part, "")
		part = bulletMarker.ReplaceAllString(strings.TrimSpace(part), "")
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}

	if len(items) <= 1 {
		return text
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

func splitAndTrim(text, sep string) []string {
	parts := []string{}
	for _, p := range strings.Split(text, sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
