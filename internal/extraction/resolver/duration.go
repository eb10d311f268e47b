package resolver

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tacit-labs/tacit/internal/extraction/timeparse"
)

const defaultDuration = time.Hour

// Durations per activity label. Activities not listed fall through to
// the period/weekday window rules or the default.
var activityDurations = map[string]time.Duration{
	"lunch":       90 * time.Minute,
	"dinner":      90 * time.Minute,
	"breakfast":   90 * time.Minute,
	"meet":        time.Hour,
	"meeting":     time.Hour,
	"discuss":     time.Hour,
	"discussion":  time.Hour,
	"call":        30 * time.Minute,
	"checkup":     45 * time.Minute,
	"appointment": 45 * time.Minute,
	"recital":     2 * time.Hour,
	"concert":     2 * time.Hour,
	"performance": 2 * time.Hour,
}

// Broad windows when the time expression names only a period of day.
var periodWindows = map[string]time.Duration{
	"morning":   3 * time.Hour,
	"afternoon": 4 * time.Hour,
	"evening":   3 * time.Hour,
}

var explicitDurationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)for\s+(\d+)\s+(minute|hour|day)s?`),
	regexp.MustCompile(`(?i)(\d+)\s+(minute|hour|day)s?\s+long`),
}

// Window computes the commitment time range for a resolved candidate.
// An explicit duration phrase in the text overrides the activity table;
// period and bare-weekday windows apply when no more specific rule does.
func Window(cand timeparse.Candidate, activity, text string) (time.Time, time.Time) {
	start := cand.Resolved

	if d, ok := explicitDuration(text); ok {
		return start, start.Add(d)
	}
	if d, ok := activityDurations[strings.ToLower(activity)]; ok {
		return start, start.Add(d)
	}
	if !cand.HasClockTime && cand.Period != "" {
		if d, ok := periodWindows[cand.Period]; ok {
			return start, start.Add(d)
		}
	}
	if cand.BareWeekday {
		switch start.Weekday() {
		case time.Saturday, time.Sunday:
			return start, start.Add(4 * time.Hour)
		default:
			return start, start.Add(8 * time.Hour)
		}
	}
	return start, start.Add(defaultDuration)
}

func explicitDuration(text string) (time.Duration, bool) {
	for _, pattern := range explicitDurationPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "minute":
			return time.Duration(amount) * time.Minute, true
		case "hour":
			return time.Duration(amount) * time.Hour, true
		case "day":
			return time.Duration(amount) * 24 * time.Hour, true
		}
	}
	return 0, false
}
