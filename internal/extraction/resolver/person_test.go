package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
	"github.com/tacit-labs/tacit/internal/extraction/resolver"
)

func TestResolvePerson(t *testing.T) {
	t.Run("no person spans", func(t *testing.T) {
		entities := []domain.Entity{
			{Label: "LOC", Text: "Berlin", Start: 0, End: 6},
		}

		_, ok := resolver.ResolvePerson(entities)
		assert.False(t, ok)
	})

	t.Run("single person span", func(t *testing.T) {
		entities := []domain.Entity{
			{Label: "PER", Text: "Johnson", Start: 10, End: 17, Confidence: 0.95},
		}

		who, ok := resolver.ResolvePerson(entities)
		require.True(t, ok)
		assert.Equal(t, "Johnson", who)
	})

	t.Run("merges adjacent fragments into one name", func(t *testing.T) {
		entities := []domain.Entity{
			{Label: "B-PER", Text: "Maria", Start: 5, End: 10, Confidence: 0.98},
			{Label: "I-PER", Text: "Rodriguez", Start: 11, End: 20, Confidence: 0.91},
		}

		who, ok := resolver.ResolvePerson(entities)
		require.True(t, ok)
		assert.Equal(t, "Maria Rodriguez", who)
	})

	t.Run("does not merge distant spans", func(t *testing.T) {
		entities := []domain.Entity{
			{Label: "PER", Text: "Maria", Start: 0, End: 5, Confidence: 0.7},
			{Label: "PER", Text: "Johnson", Start: 30, End: 37, Confidence: 0.9},
		}

		who, ok := resolver.ResolvePerson(entities)
		require.True(t, ok)
		assert.Equal(t, "Johnson", who)
	})

	t.Run("merged confidence is the minimum of the parts", func(t *testing.T) {
		entities := []domain.Entity{
			{Label: "PER", Text: "Maria", Start: 0, End: 5, Confidence: 0.5},
			{Label: "PER", Text: "Rodriguez", Start: 6, End: 15, Confidence: 0.99},
			{Label: "PER", Text: "Bob", Start: 40, End: 43, Confidence: 0.8},
		}

		// "Maria Rodriguez" carries 0.5, so "Bob" at 0.8 wins.
		who, ok := resolver.ResolvePerson(entities)
		require.True(t, ok)
		assert.Equal(t, "Bob", who)
	})

	t.Run("filters merges without uppercase", func(t *testing.T) {
		entities := []domain.Entity{
			{Label: "PER", Text: "someone", Start: 0, End: 7, Confidence: 0.99},
		}

		_, ok := resolver.ResolvePerson(entities)
		assert.False(t, ok)
	})

	t.Run("filters merges longer than three tokens", func(t *testing.T) {
		entities := []domain.Entity{
			{Label: "PER", Text: "The Whole Committee Board", Start: 0, End: 25, Confidence: 0.99},
		}

		_, ok := resolver.ResolvePerson(entities)
		assert.False(t, ok)
	})

	t.Run("unsorted spans are ordered before merging", func(t *testing.T) {
		entities := []domain.Entity{
			{Label: "PER", Text: "Rodriguez", Start: 6, End: 15, Confidence: 0.9},
			{Label: "PER", Text: "Maria", Start: 0, End: 5, Confidence: 0.95},
		}

		who, ok := resolver.ResolvePerson(entities)
		require.True(t, ok)
		assert.Equal(t, "Maria Rodriguez", who)
	})

	t.Run("missing confidence counts as full", func(t *testing.T) {
		entities := []domain.Entity{
			{Label: "PER", Text: "Anna", Start: 0, End: 4},
			{Label: "PER", Text: "Johnson", Start: 20, End: 27, Confidence: 0.99},
		}

		who, ok := resolver.ResolvePerson(entities)
		require.True(t, ok)
		assert.Equal(t, "Anna", who)
	})
}
