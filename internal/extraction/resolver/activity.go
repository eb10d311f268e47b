package resolver

import (
	"strings"
	"unicode"
)

// DefaultActivity is the label used when no vocabulary word matches.
const DefaultActivity = "Meeting or appointment"

// The closed activity vocabulary, tested in order; the first whole-word
// match wins.
var activityVocabulary = []string{
	"call", "meet", "meeting", "appointment", "lunch", "dinner", "breakfast",
	"submit", "report", "presentation", "review", "interview", "discuss",
	"discussion", "check", "checkup", "exam", "examination", "attend",
	"event", "conference", "recital", "performance", "game", "match",
	"delivery",
}

// ClassifyActivity maps segment text to a normalized activity label.
func ClassifyActivity(text string) string {
	words := map[string]struct{}{}
	for _, w := range tokenize(text) {
		words[w] = struct{}{}
	}

	for _, activity := range activityVocabulary {
		if _, ok := words[activity]; ok {
			return capitalize(activity)
		}
	}
	return DefaultActivity
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
