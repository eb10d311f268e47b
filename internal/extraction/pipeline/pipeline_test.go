package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
	"github.com/tacit-labs/tacit/internal/extraction/pipeline"
	"github.com/tacit-labs/tacit/pkg/observability"
)

// Wednesday morning.
var ref = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

type fakeRecognizer struct {
	entities []domain.Entity
	err      error
	calls    int
}

func (f *fakeRecognizer) Recognize(_ context.Context, _ string) ([]domain.Entity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entities, nil
}

// failFirstRecognizer fails only its first call.
type failFirstRecognizer struct {
	calls int
}

func (f *failFirstRecognizer) Recognize(_ context.Context, _ string) ([]domain.Entity, error) {
	f.calls++
	if f.calls == 1 {
		return nil, errors.New("model unavailable")
	}
	return nil, nil
}

func newAssembler(rec domain.Recognizer) *pipeline.Assembler {
	logger := slog.New(slog.DiscardHandler)
	return pipeline.NewAssembler(rec, pipeline.DeparturePolicy{}, logger, observability.NewInMemoryMetrics())
}

func communication(t *testing.T, content string) domain.Communication {
	t.Helper()
	comm, err := domain.NewCommunication(content, "alice", "bob", ref)
	require.NoError(t, err)
	return comm
}

func TestAssembler_Extract(t *testing.T) {
	t.Run("clock time with relative day", func(t *testing.T) {
		rec := &fakeRecognizer{}
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, "I'll call you at 15:30 tomorrow."))

		require.Len(t, commitments, 1)
		c := commitments[0]
		assert.Equal(t, 15, c.StartTime().Hour())
		assert.Equal(t, 30, c.StartTime().Minute())
		assert.Equal(t, "Call", c.What())
		assert.Equal(t, domain.UnspecifiedLocation, c.Where())
		assert.Equal(t, "bob", c.Who())
	})

	t.Run("no intent phrase skips recognition", func(t *testing.T) {
		rec := &fakeRecognizer{}
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, "The weather is nice today."))

		assert.Empty(t, commitments)
		assert.Zero(t, rec.calls)
	})

	t.Run("empty content skips recognition", func(t *testing.T) {
		rec := &fakeRecognizer{}
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, ""))

		assert.Empty(t, commitments)
		assert.Zero(t, rec.calls)
	})

	t.Run("dual indicator sentence yields two commitments", func(t *testing.T) {
		rec := &fakeRecognizer{}
		content := "I'll call you tomorrow at 3:30 PM and we will meet on Friday at 10:00 AM."
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, content))

		require.Len(t, commitments, 2)
		assert.Contains(t, strings.ToLower(commitments[0].What()), "call")
		assert.Contains(t, strings.ToLower(commitments[1].What()), "meet")
		assert.True(t, commitments[0].StartTime().After(ref))
		assert.True(t, commitments[1].StartTime().After(ref))
		assert.Equal(t, 2, rec.calls)
	})

	t.Run("person entity becomes who", func(t *testing.T) {
		content := "I need to submit my report to Manager Johnson by Friday."
		rec := &fakeRecognizer{entities: []domain.Entity{
			{Label: "PER", Text: "Johnson", Start: 38, End: 45, Confidence: 0.97},
		}}
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, content))

		require.Len(t, commitments, 1)
		c := commitments[0]
		assert.Contains(t, c.Who(), "Johnson")
		assert.Contains(t, strings.ToLower(c.What()), "submit")

		daysAhead := c.StartTime().Sub(ref)
		assert.GreaterOrEqual(t, daysAhead, time.Duration(0))
		assert.LessOrEqual(t, daysAhead, 7*24*time.Hour)
	})

	t.Run("adjacent person fragments merge", func(t *testing.T) {
		content := "I'll meet Maria Rodriguez tomorrow at the cafe."
		rec := &fakeRecognizer{entities: []domain.Entity{
			{Label: "B-PER", Text: "Maria", Start: 10, End: 15, Confidence: 0.98},
			{Label: "I-PER", Text: "Rodriguez", Start: 16, End: 25, Confidence: 0.92},
		}}
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, content))

		require.Len(t, commitments, 1)
		assert.Equal(t, "Maria Rodriguez", commitments[0].Who())
	})

	t.Run("invalid calendar date yields nothing", func(t *testing.T) {
		rec := &fakeRecognizer{}
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, "I will attend the party on Feb 30"))

		assert.Empty(t, commitments)
	})

	t.Run("recognizer failure is contained to its segment", func(t *testing.T) {
		rec := &failFirstRecognizer{}
		content := "I'll call you tomorrow at 3:30 PM and we will meet on Friday at 10:00 AM."
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, content))

		require.Len(t, commitments, 1)
		assert.Contains(t, strings.ToLower(commitments[0].What()), "meet")
		assert.Equal(t, 2, rec.calls)
	})

	t.Run("recognizer failure on every segment yields empty result", func(t *testing.T) {
		rec := &fakeRecognizer{err: errors.New("model unavailable")}
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, "I'll call you at 15:30 tomorrow."))

		assert.Empty(t, commitments)
	})

	t.Run("time is mandatory", func(t *testing.T) {
		rec := &fakeRecognizer{}
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, "I'll meet you at the office"))

		assert.Empty(t, commitments)
		assert.Equal(t, 1, rec.calls)
	})

	t.Run("produced commitments satisfy invariants", func(t *testing.T) {
		rec := &fakeRecognizer{}
		content := "I'll call you tomorrow at 3:30 PM and we will meet on Friday at 10:00 AM."
		commitments := newAssembler(rec).Extract(context.Background(), communication(t, content))

		for _, c := range commitments {
			assert.False(t, c.EndTime().Before(c.StartTime()))
			assert.NotEmpty(t, c.Who())
			assert.NotEmpty(t, c.What())
			assert.NotEmpty(t, c.Where())
		}
	})

	t.Run("extraction is idempotent", func(t *testing.T) {
		content := "I'll call you tomorrow at 3:30 PM and we will meet on Friday at 10:00 AM."
		first := newAssembler(&fakeRecognizer{}).Extract(context.Background(), communication(t, content))
		second := newAssembler(&fakeRecognizer{}).Extract(context.Background(), communication(t, content))

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].StartTime(), second[i].StartTime())
			assert.Equal(t, first[i].EndTime(), second[i].EndTime())
			assert.Equal(t, first[i].Who(), second[i].Who())
			assert.Equal(t, first[i].What(), second[i].What())
			assert.Equal(t, first[i].Where(), second[i].Where())
		}
	})
}

func TestAssembler_Process(t *testing.T) {
	t.Run("one reminder per commitment, before its start", func(t *testing.T) {
		rec := &fakeRecognizer{}
		content := "I'll call you tomorrow at 3:30 PM and we will meet on Friday at 10:00 AM."
		reminders := newAssembler(rec).Process(context.Background(), communication(t, content))

		require.Len(t, reminders, 2)
		for _, r := range reminders {
			assert.True(t, r.When().Before(r.Commitment().StartTime()))
			assert.NotEmpty(t, r.Message())
			assert.False(t, r.Acknowledged())
		}
	})

	t.Run("no commitments means no reminders", func(t *testing.T) {
		rec := &fakeRecognizer{}
		reminders := newAssembler(rec).Process(context.Background(), communication(t, "The weather is nice today."))

		assert.Empty(t, reminders)
	})
}
