package pipeline

import (
	"fmt"
	"time"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
)

// DefaultLeadTime is the fixed-lead policy's offset before the
// commitment start.
const DefaultLeadTime = 30 * time.Minute

// SchedulePolicy converts a commitment into a reminder. The reference
// instant is the communication timestamp, used for message phrasing.
type SchedulePolicy interface {
	Schedule(commitment *domain.Commitment, ref time.Time) (*domain.Reminder, error)
}

// DeparturePolicy schedules reminders at the commitment's departure
// time: start minus estimated travel and preparation time. Travel and
// Prep override the built-in fallback estimates when positive;
// estimates carried by the commitment itself always win.
type DeparturePolicy struct {
	Travel time.Duration
	Prep   time.Duration
}

func (p DeparturePolicy) Schedule(commitment *domain.Commitment, _ time.Time) (*domain.Reminder, error) {
	message := fmt.Sprintf("Time to get ready: %s with %s at %s",
		commitment.What(), commitment.Who(), commitment.Where())
	return domain.NewReminder(commitment.DepartureTimeWithDefaults(p.Travel, p.Prep), message, commitment)
}

// FixedLeadPolicy schedules reminders a fixed duration before the
// commitment start. A zero Lead falls back to DefaultLeadTime.
type FixedLeadPolicy struct {
	Lead time.Duration
}

func (p FixedLeadPolicy) Schedule(commitment *domain.Commitment, ref time.Time) (*domain.Reminder, error) {
	lead := p.Lead
	if lead <= 0 {
		lead = DefaultLeadTime
	}

	start := commitment.StartTime()
	var message string
	if sameDate(start, ref) {
		message = fmt.Sprintf("Reminder: You have a commitment with %s at %s today.",
			commitment.Who(), start.Format("15:04"))
	} else {
		message = fmt.Sprintf("Reminder: You have a commitment with %s on %s.",
			commitment.Who(), start.Format("2006-01-02 at 15:04"))
	}

	return domain.NewReminder(start.Add(-lead), message, commitment)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
