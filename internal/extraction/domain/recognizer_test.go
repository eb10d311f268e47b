package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
)

func TestEntity_Score(t *testing.T) {
	t.Run("zero confidence defaults to full", func(t *testing.T) {
		e := domain.Entity{Label: "PER", Text: "Anna"}
		assert.Equal(t, 1.0, e.Score())
	})

	t.Run("explicit confidence is preserved", func(t *testing.T) {
		e := domain.Entity{Label: "PER", Text: "Anna", Confidence: 0.42}
		assert.Equal(t, 0.42, e.Score())
	})
}

func TestEntity_LabelKinds(t *testing.T) {
	tests := []struct {
		label    string
		person   bool
		location bool
		time     bool
		date     bool
	}{
		{"PER", true, false, false, false},
		{"B-PER", true, false, false, false},
		{"I-PER", true, false, false, false},
		{"PERSON", true, false, false, false},
		{"LOC", false, true, false, false},
		{"GPE", false, true, false, false},
		{"FACILITY", false, true, false, false},
		{"TIME", false, false, true, false},
		{"I-TIME", false, false, true, false},
		{"DATE", false, false, false, true},
		{"B-DATE", false, false, false, true},
		{"ORG", false, false, false, false},
		{"", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			e := domain.Entity{Label: tt.label}
			assert.Equal(t, tt.person, e.IsPerson())
			assert.Equal(t, tt.location, e.IsLocation())
			assert.Equal(t, tt.time, e.IsTime())
			assert.Equal(t, tt.date, e.IsDate())
		})
	}
}
