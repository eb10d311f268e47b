package resolver

import (
	"regexp"
	"strings"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
)

// Preposition-anchored fallback patterns, tried in order. Captures run
// to the next punctuation boundary.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bat\s+([^.,;]+)`),
	regexp.MustCompile(`(?i)\bin\s+([^.,;]+)`),
	regexp.MustCompile(`(?i)(?:the\s+)?location(?:\s+is|:)\s+([^.,;]+)`),
	regexp.MustCompile(`(?i)(?:the\s+)?place(?:\s+is|:)\s+([^.,;]+)`),
	regexp.MustCompile(`(?i)(?:the\s+)?venue(?:\s+is|:)\s+([^.,;]+)`),
}

// Cleanup passes applied in order to strip time/date fragments that
// contaminate a captured location phrase.
var locationCleanups = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:on|this|next)\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|wed|thu|fri|sat|sun|weekend)\b`),
	regexp.MustCompile(`(?i)\b(?:today|tomorrow|tonight|next|this)\s+\w+\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)?\b`),
	regexp.MustCompile(`(?i)\b(?:morning|afternoon|evening|night|noon|midnight)\b`),
	regexp.MustCompile(`(?i)\bto\s+(?:discuss|review|talk|go|meet|work)\s+[^,;.]+`),
	regexp.MustCompile(`(?i)\b(?:today|tomorrow|tonight)\b`),
}

var (
	whitespaceRe          = regexp.MustCompile(`\s+`)
	danglingConjunctionRe = regexp.MustCompile(`(?i)\b(?:to|and|for|with)\s*$`)
)

// ResolveLocation produces a location string for a segment. A
// recognized location entity wins verbatim; otherwise the preposition
// patterns are tried with cleanup. Returns false when nothing usable
// remains, and the caller substitutes the sentinel.
func ResolveLocation(text string, entities []domain.Entity) (string, bool) {
	for _, e := range entities {
		if e.IsLocation() {
			return e.Text, true
		}
	}

	for _, pattern := range locationPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if location := cleanLocation(m[1]); location != "" {
			return location, true
		}
	}
	return "", false
}

func cleanLocation(raw string) string {
	location := strings.TrimSpace(raw)
	for _, cleanup := range locationCleanups {
		location = cleanup.ReplaceAllString(location, "")
	}
	location = strings.TrimSpace(whitespaceRe.ReplaceAllString(location, " "))
	location = strings.TrimSpace(danglingConjunctionRe.ReplaceAllString(location, ""))
	return location
}
