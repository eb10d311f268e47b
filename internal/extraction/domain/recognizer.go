package domain

import "context"

// Entity is a single span tagged by a named-entity recognizer.
// Start and End are byte offsets into the recognized text.
type Entity struct {
	Label      string  `json:"label"`
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Score returns the entity confidence, treating an unset (zero) value
// as full confidence. Backends that do not score their output can omit
// the field entirely.
func (e Entity) Score() float64 {
	if e.Confidence == 0 {
		return 1.0
	}
	return e.Confidence
}

// Recognizer tags named entities in free text. Implementations may
// return zero entities, overlapping spans, or duplicates; callers are
// expected to tolerate all of these.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// Label sets used across recognizer backends. Different models emit
// different tag schemes (IOB prefixes, spaCy labels, OntoNotes labels),
// so matching is done against equivalence sets rather than exact tags.
var (
	personLabels = map[string]struct{}{
		"PER": {}, "B-PER": {}, "I-PER": {}, "PERSON": {},
	}
	locationLabels = map[string]struct{}{
		"LOC": {}, "B-LOC": {}, "I-LOC": {}, "LOCATION": {},
		"GPE": {}, "FAC": {}, "FACILITY": {},
	}
	timeLabels = map[string]struct{}{
		"TIME": {}, "B-TIME": {}, "I-TIME": {},
	}
	dateLabels = map[string]struct{}{
		"DATE": {}, "B-DATE": {}, "I-DATE": {},
	}
)

// IsPerson reports whether the entity carries a person label.
func (e Entity) IsPerson() bool {
	_, ok := personLabels[e.Label]
	return ok
}

// IsLocation reports whether the entity carries a location label.
func (e Entity) IsLocation() bool {
	_, ok := locationLabels[e.Label]
	return ok
}

// IsTime reports whether the entity carries a time label.
func (e Entity) IsTime() bool {
	_, ok := timeLabels[e.Label]
	return ok
}

// IsDate reports whether the entity carries a date label.
func (e Entity) IsDate() bool {
	_, ok := dateLabels[e.Label]
	return ok
}
