package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
)

func TestNewReminder(t *testing.T) {
	start := time.Date(2026, 5, 21, 15, 0, 0, 0, time.UTC)
	commitment := mustCommitment(t, start, start.Add(time.Hour))

	t.Run("creates reminder before commitment start", func(t *testing.T) {
		when := start.Add(-30 * time.Minute)

		r, err := domain.NewReminder(when, "Time to leave", commitment)

		require.NoError(t, err)
		assert.Equal(t, when, r.When())
		assert.Equal(t, "Time to leave", r.Message())
		assert.Same(t, commitment, r.Commitment())
		assert.False(t, r.Acknowledged())
	})

	t.Run("requires commitment", func(t *testing.T) {
		_, err := domain.NewReminder(start.Add(-time.Hour), "msg", nil)

		assert.ErrorIs(t, err, domain.ErrNilCommitment)
	})

	t.Run("rejects reminder at or after start", func(t *testing.T) {
		_, err := domain.NewReminder(start, "msg", commitment)
		assert.ErrorIs(t, err, domain.ErrReminderNotBefore)

		_, err = domain.NewReminder(start.Add(time.Minute), "msg", commitment)
		assert.ErrorIs(t, err, domain.ErrReminderNotBefore)
	})
}

func TestReminder_IsDue(t *testing.T) {
	start := time.Date(2026, 5, 21, 15, 0, 0, 0, time.UTC)
	commitment := mustCommitment(t, start, start.Add(time.Hour))
	when := start.Add(-30 * time.Minute)

	t.Run("not due before its time", func(t *testing.T) {
		r, err := domain.NewReminder(when, "msg", commitment)
		require.NoError(t, err)

		assert.False(t, r.IsDue(when.Add(-time.Minute)))
	})

	t.Run("due at and after its time", func(t *testing.T) {
		r, err := domain.NewReminder(when, "msg", commitment)
		require.NoError(t, err)

		assert.True(t, r.IsDue(when))
		assert.True(t, r.IsDue(when.Add(time.Hour)))
	})

	t.Run("acknowledged reminder is never due", func(t *testing.T) {
		r, err := domain.NewReminder(when, "msg", commitment)
		require.NoError(t, err)

		r.Acknowledge()

		assert.True(t, r.Acknowledged())
		assert.False(t, r.IsDue(when.Add(time.Hour)))
	})
}

func TestReminder_Snooze(t *testing.T) {
	start := time.Date(2026, 5, 21, 15, 0, 0, 0, time.UTC)
	commitment := mustCommitment(t, start, start.Add(time.Hour))
	when := start.Add(-30 * time.Minute)

	t.Run("advances the reminder time", func(t *testing.T) {
		r, err := domain.NewReminder(when, "msg", commitment)
		require.NoError(t, err)

		require.NoError(t, r.Snooze(10*time.Minute))

		assert.Equal(t, when.Add(10*time.Minute), r.When())
		assert.False(t, r.Acknowledged())
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		r, err := domain.NewReminder(when, "msg", commitment)
		require.NoError(t, err)

		assert.ErrorIs(t, r.Snooze(0), domain.ErrInvalidSnooze)
		assert.ErrorIs(t, r.Snooze(-time.Minute), domain.ErrInvalidSnooze)
	})
}

func TestReminder_String(t *testing.T) {
	start := time.Date(2026, 5, 21, 15, 0, 0, 0, time.UTC)
	commitment := mustCommitment(t, start, start.Add(time.Hour))

	r, err := domain.NewReminder(start.Add(-30*time.Minute), "Time to leave", commitment)
	require.NoError(t, err)

	assert.Equal(t, "Reminder at 2026-05-21 14:30: Time to leave [Not acknowledged]", r.String())

	r.Acknowledge()
	assert.Contains(t, r.String(), "[Acknowledged]")
}
