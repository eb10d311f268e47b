// Package pipeline orchestrates commitment extraction: intent
// filtering, segmentation, per-segment entity recognition and
// resolution, and reminder scheduling.
package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

var firstPersonIndicators = []string{
	"i will", "i'll", "i'm going", "i am going", "i can",
	"i promise", "i commit", "i agree", "i plan", "i intend", "i shall",
}

var weIndicators = []string{
	"we can", "we will", "we'll", "we're going", "we are going",
}

var clauseConjunctions = []string{"and", "or", "then", "plus"}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)

// conjunctionSplitRes split a dual-indicator sentence at the
// conjunction that introduces the "we" clause.
var conjunctionSplitRes = buildConjunctionSplitRes()

func buildConjunctionSplitRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(clauseConjunctions))
	for _, conj := range clauseConjunctions {
		res = append(res, regexp.MustCompile(
			fmt.Sprintf(`(?i)\b%s\s+we(?:\s+(?:can|will|are going)|'ll|'re going)\b`, conj)))
	}
	return res
}

// Segment splits communication text into independently processed
// commitment-bearing units: sentences first, then clause splits where a
// first-person and a "we" indicator are joined by a conjunction.
func Segment(text string) []string {
	var segments []string
	for _, sentence := range splitSentences(text) {
		segments = append(segments, splitClauses(sentence)...)
	}
	return segments
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceRe.FindAllString(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func splitClauses(sentence string) []string {
	lower := strings.ToLower(sentence)
	if !containsAny(lower, firstPersonIndicators) || !containsAny(lower, weIndicators) {
		return []string{sentence}
	}

	for _, re := range conjunctionSplitRes {
		loc := re.FindStringIndex(sentence)
		if loc == nil {
			continue
		}

		first := strings.TrimSpace(sentence[:loc[0]])
		second := strings.TrimSpace(sentence[loc[0]:])

		var segments []string
		if containsAny(strings.ToLower(first), firstPersonIndicators) {
			segments = append(segments, first)
		}
		if second != "" {
			segments = append(segments, second)
		}
		if len(segments) > 0 {
			return segments
		}
	}
	return []string{sentence}
}

func containsAny(lower string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
