// Package timeparse resolves natural-language time and date references
// in free text against a reference instant. An ordered ladder of
// pattern rules is scanned most-specific-first; every rule emits
// candidates with text offsets so callers can pick deterministically by
// position. A natural-language parser and a keyword scan act as a
// lower-confidence fallback when no pattern matches.
package timeparse

import (
	"sort"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Confidence assigned to candidates depending on how they were found.
const (
	patternConfidence  = 1.0
	fallbackConfidence = 0.9
)

// Candidate is one possible resolution of a time/date reference.
type Candidate struct {
	MatchedText string
	Start       int
	End         int
	Resolved    time.Time
	Confidence  float64

	// Period holds the time-of-day word (morning, evening, ...) when
	// the match named a broad period rather than a clock time.
	Period string
	// HasClockTime reports whether an explicit HH:MM was part of the
	// resolution.
	HasClockTime bool
	// BareWeekday reports whether the match named only a weekday with
	// no clock time or period.
	BareWeekday bool
}

// Resolver turns text into time/date candidates.
type Resolver struct {
	nl *when.Parser
}

// NewResolver creates a resolver with the natural-language fallback
// parser initialized.
func NewResolver() *Resolver {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Resolver{nl: w}
}

// Resolve scans text for time/date references anchored to ref and
// returns all candidates ordered by their position in the text. When no
// pattern matches, the fallback stages may still yield a single
// lower-confidence candidate.
func (r *Resolver) Resolve(text string, ref time.Time) []Candidate {
	if text == "" {
		return nil
	}

	var candidates []Candidate
	for _, rule := range rules {
		candidates = append(candidates, rule(text, ref)...)
	}
	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Start < candidates[j].Start
		})
		return candidates
	}

	return r.fallback(text, ref)
}

// Best returns the winning candidate under left-to-right priority: the
// candidate matched earliest in the text.
func Best(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[0], true
}

func (r *Resolver) fallback(text string, ref time.Time) []Candidate {
	// An invalid calendar date (Feb 30) is discarded, not reinterpreted,
	// so the natural-language parser must not get a second try at it.
	if !hasInvalidCalendarDate(text) {
		if res, err := r.nl.Parse(text, ref); err == nil && res != nil {
			if resolved, ok := futureward(res.Time, ref); ok {
				return []Candidate{{
					MatchedText: res.Text,
					Start:       res.Index,
					End:         res.Index + len(res.Text),
					Resolved:    resolved,
					Confidence:  fallbackConfidence,
				}}
			}
			// Still in the past after the bump, so the keyword scan
			// gets a shot at it instead.
		}
	}
	return keywordFallback(text, ref)
}

// futureward applies the future preference to a fallback resolution: a
// time that landed in the past is bumped forward one day, matching how
// a dateless clock time rolls over. A resolution still in the past
// after the bump carries a real past date and is rejected.
func futureward(resolved, ref time.Time) (time.Time, bool) {
	if resolved.Before(ref) {
		resolved = resolved.AddDate(0, 0, 1)
	}
	return resolved, !resolved.Before(ref)
}
