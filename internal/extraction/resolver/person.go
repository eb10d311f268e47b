// Package resolver turns recognizer entities and raw segment text into
// the who/what/where fields of a commitment and the time range derived
// from a resolved candidate.
package resolver

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
)

// Adjacent person spans this close together are fragments of one name.
const personMergeGap = 2

type personCandidate struct {
	text       string
	confidence float64
	end        int
}

// ResolvePerson picks the best full-name string from the recognizer's
// person spans. Adjacent fragments are merged, non-name-shaped merges
// filtered out, and the highest-confidence survivor wins.
func ResolvePerson(entities []domain.Entity) (string, bool) {
	var spans []domain.Entity
	for _, e := range entities {
		if e.IsPerson() {
			spans = append(spans, e)
		}
	}
	if len(spans) == 0 {
		return "", false
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var merged []personCandidate
	for _, e := range spans {
		if n := len(merged); n > 0 && e.Start-merged[n-1].end <= personMergeGap {
			merged[n-1].text += " " + e.Text
			merged[n-1].confidence = math.Min(merged[n-1].confidence, e.Score())
			merged[n-1].end = e.End
			continue
		}
		merged = append(merged, personCandidate{text: e.Text, confidence: e.Score(), end: e.End})
	}

	best := ""
	bestScore := -1.0
	for _, c := range merged {
		if !nameShaped(c.text) {
			continue
		}
		if c.confidence > bestScore {
			best, bestScore = c.text, c.confidence
		}
	}
	return best, best != ""
}

// nameShaped requires at least one uppercase character and at most
// three tokens.
func nameShaped(s string) bool {
	if len(strings.Fields(s)) > 3 {
		return false
	}
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
