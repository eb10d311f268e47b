// Package recognizer provides the entity recognition backends: a local
// deterministic ruler, a remote NER inference client, and a Redis
// read-through cache decorator.
package recognizer

import (
	"context"
	"regexp"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
)

// Ruler is a deterministic lexicon/regex tagger. It is the local
// default backend and needs no external service.
type Ruler struct{}

func NewRuler() *Ruler {
	return &Ruler{}
}

var (
	rulerTimeRe = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?:\s*(?:am|pm))?\b|\b\d{1,2}\s*(?:am|pm)\b`)
	rulerDateRe = regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|today|tomorrow|tonight)\b|\b\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b|\b(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\s+\d{1,2}\b`)

	// A title followed by capitalized tokens marks a person name. Each
	// token is emitted as its own span so downstream merging applies.
	rulerPersonRe = regexp.MustCompile(`\b(?:Mrs|Ms|Mr|Dr|Professor|Prof|Manager|Coach)\.?\s+((?:[A-Z][a-z]+)(?:\s+[A-Z][a-z]+)*)`)
	rulerNameRe   = regexp.MustCompile(`[A-Z][a-z]+`)

	rulerLocationRe = regexp.MustCompile(`(?i)\b(?:office|cafe|restaurant|school|hospital|clinic|park|gym|library|station|airport|downtown)\b`)
)

// Recognize tags time, date, person and location spans. It never
// returns an error.
func (r *Ruler) Recognize(_ context.Context, text string) ([]domain.Entity, error) {
	var entities []domain.Entity

	for _, m := range rulerTimeRe.FindAllStringIndex(text, -1) {
		entities = append(entities, span(text, m[0], m[1], "TIME"))
	}
	for _, m := range rulerDateRe.FindAllStringIndex(text, -1) {
		entities = append(entities, span(text, m[0], m[1], "DATE"))
	}
	for _, m := range rulerPersonRe.FindAllStringSubmatchIndex(text, -1) {
		for _, n := range rulerNameRe.FindAllStringIndex(text[m[2]:m[3]], -1) {
			entities = append(entities, span(text, m[2]+n[0], m[2]+n[1], "PER"))
		}
	}
	for _, m := range rulerLocationRe.FindAllStringIndex(text, -1) {
		entities = append(entities, span(text, m[0], m[1], "LOC"))
	}

	return entities, nil
}

func span(text string, start, end int, label string) domain.Entity {
	return domain.Entity{
		Label:      label,
		Text:       text[start:end],
		Start:      start,
		End:        end,
		Confidence: 1.0,
	}
}
