package timeparse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacit-labs/tacit/internal/extraction/timeparse"
)

// Wednesday morning.
var ref = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

func resolveBest(t *testing.T, text string) timeparse.Candidate {
	t.Helper()
	best, ok := timeparse.Best(timeparse.NewResolver().Resolve(text, ref))
	require.True(t, ok, "expected a candidate for %q", text)
	return best
}

func TestResolver_ClockTimes(t *testing.T) {
	t.Run("24-hour time with preposition and relative day", func(t *testing.T) {
		c := resolveBest(t, "I'll call you at 15:30 tomorrow.")

		assert.Equal(t, time.Date(2026, 5, 21, 15, 30, 0, 0, time.UTC), c.Resolved)
		assert.True(t, c.HasClockTime)
		assert.Equal(t, 1.0, c.Confidence)
	})

	t.Run("meridiem time without date resolves today", func(t *testing.T) {
		c := resolveBest(t, "Let's meet at 3:30 PM.")

		assert.Equal(t, time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC), c.Resolved)
		assert.True(t, c.HasClockTime)
	})

	t.Run("passed dateless time rolls to next day", func(t *testing.T) {
		c := resolveBest(t, "Let's meet at 8:00 AM.")

		assert.Equal(t, time.Date(2026, 5, 21, 8, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("noon meridiem conversion", func(t *testing.T) {
		c := resolveBest(t, "lunch at 12 pm tomorrow")
		assert.Equal(t, 12, c.Resolved.Hour())

		c = resolveBest(t, "flight at 12 am tomorrow")
		assert.Equal(t, 0, c.Resolved.Hour())
	})
}

func TestResolver_RelativeDays(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"tomorrow defaults to morning", "see you tomorrow", time.Date(2026, 5, 21, 9, 0, 0, 0, time.UTC)},
		{"tomorrow with period", "see you tomorrow evening", time.Date(2026, 5, 21, 18, 0, 0, 0, time.UTC)},
		{"tonight implies evening", "see you tonight", time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)},
		{"day after tomorrow", "see you the day after tomorrow", time.Date(2026, 5, 22, 9, 0, 0, 0, time.UTC)},
		{"tomorrow with clock time", "tomorrow at 3:30 PM works", time.Date(2026, 5, 21, 15, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := resolveBest(t, tt.text)
			assert.Equal(t, tt.want, c.Resolved)
		})
	}
}

func TestResolver_TimeOfDay(t *testing.T) {
	t.Run("future period resolves today", func(t *testing.T) {
		c := resolveBest(t, "meet me in the evening")

		assert.Equal(t, time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC), c.Resolved)
		assert.Equal(t, "evening", c.Period)
		assert.False(t, c.HasClockTime)
	})

	t.Run("passed period resolves next day", func(t *testing.T) {
		late := time.Date(2026, 5, 20, 19, 0, 0, 0, time.UTC)
		candidates := timeparse.NewResolver().Resolve("meet me in the evening", late)
		c, ok := timeparse.Best(candidates)
		require.True(t, ok)

		assert.Equal(t, time.Date(2026, 5, 21, 18, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("noon", func(t *testing.T) {
		c := resolveBest(t, "lunch around noon")
		assert.Equal(t, time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC), c.Resolved)
	})
}

func TestResolver_Weekdays(t *testing.T) {
	t.Run("bare weekday gets weekday default hour", func(t *testing.T) {
		c := resolveBest(t, "submit the report by Friday")

		assert.Equal(t, time.Date(2026, 5, 22, 9, 0, 0, 0, time.UTC), c.Resolved)
		assert.True(t, c.BareWeekday)
	})

	t.Run("weekend day gets weekend default hour", func(t *testing.T) {
		c := resolveBest(t, "brunch on Saturday")
		assert.Equal(t, time.Date(2026, 5, 23, 10, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("same weekday already passed wraps a week", func(t *testing.T) {
		// Reference is Wednesday 10:00; bare Wednesday defaults to 09:00.
		c := resolveBest(t, "see you Wednesday")
		assert.Equal(t, time.Date(2026, 5, 27, 9, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("next weekday skips a week", func(t *testing.T) {
		c := resolveBest(t, "catch up next Friday")
		assert.Equal(t, time.Date(2026, 5, 29, 9, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("weekend resolves to Saturday", func(t *testing.T) {
		c := resolveBest(t, "hike this weekend")
		assert.Equal(t, time.Date(2026, 5, 23, 10, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("qualified abbreviation", func(t *testing.T) {
		c := resolveBest(t, "standup next Mon")
		assert.Equal(t, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("weekday with clock time", func(t *testing.T) {
		c := resolveBest(t, "we will meet on Friday at 10:00 AM")

		assert.Equal(t, time.Date(2026, 5, 22, 10, 0, 0, 0, time.UTC), c.Resolved)
		assert.True(t, c.Resolved.After(ref))
	})
}

func TestResolver_CalendarDates(t *testing.T) {
	t.Run("numeric date", func(t *testing.T) {
		c := resolveBest(t, "dentist on 5/21")
		assert.Equal(t, time.Date(2026, 5, 21, 9, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("numeric date with 2-digit year", func(t *testing.T) {
		c := resolveBest(t, "renewal due 6/15/27")
		assert.Equal(t, 2027, c.Resolved.Year())
	})

	t.Run("month name date", func(t *testing.T) {
		c := resolveBest(t, "the recital is on May 21")
		assert.Equal(t, time.Date(2026, 5, 21, 9, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("ordinal month name date with year", func(t *testing.T) {
		c := resolveBest(t, "conference on March 3rd, 2027")
		assert.Equal(t, time.Date(2027, 3, 3, 9, 0, 0, 0, time.UTC), c.Resolved)
	})

	t.Run("month date with clock time", func(t *testing.T) {
		c := resolveBest(t, "recital on May 21 at 6 pm")
		assert.Equal(t, time.Date(2026, 5, 21, 18, 0, 0, 0, time.UTC), c.Resolved)
	})
}

func TestResolver_InvalidDates(t *testing.T) {
	t.Run("impossible month-name date is discarded", func(t *testing.T) {
		candidates := timeparse.NewResolver().Resolve("the party is on Feb 30", ref)
		assert.Empty(t, candidates)
	})

	t.Run("impossible numeric date is discarded", func(t *testing.T) {
		candidates := timeparse.NewResolver().Resolve("deadline is 2/30", ref)
		assert.Empty(t, candidates)
	})

	t.Run("valid expression survives an invalid one", func(t *testing.T) {
		c := resolveBest(t, "not 2/30, let's say tomorrow at 15:00")
		assert.Equal(t, time.Date(2026, 5, 21, 15, 0, 0, 0, time.UTC), c.Resolved)
	})
}

func TestResolver_Priority(t *testing.T) {
	t.Run("earliest match in text wins", func(t *testing.T) {
		candidates := timeparse.NewResolver().Resolve("at 15:30 tomorrow or Friday", ref)
		require.NotEmpty(t, candidates)

		best, _ := timeparse.Best(candidates)
		assert.Equal(t, 0, best.Start)
		assert.True(t, best.HasClockTime)
	})

	t.Run("candidates are ordered by position", func(t *testing.T) {
		candidates := timeparse.NewResolver().Resolve("tomorrow at 15:30", ref)
		require.True(t, len(candidates) >= 2)

		for i := 1; i < len(candidates); i++ {
			assert.LessOrEqual(t, candidates[i-1].Start, candidates[i].Start)
		}
	})
}

func TestResolver_NoMatch(t *testing.T) {
	candidates := timeparse.NewResolver().Resolve("the weather is nice", ref)
	assert.Empty(t, candidates)
}

func TestResolver_EmptyText(t *testing.T) {
	assert.Nil(t, timeparse.NewResolver().Resolve("", ref))
}
