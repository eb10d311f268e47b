package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNilCommitment     = errors.New("reminder requires a commitment")
	ErrReminderNotBefore = errors.New("reminder time must precede the commitment start time")
	ErrInvalidSnooze     = errors.New("snooze duration must be positive")
)

// Reminder is a scheduled notification for exactly one commitment. The
// reminder exclusively owns its commitment reference.
type Reminder struct {
	when         time.Time
	message      string
	commitment   *Commitment
	acknowledged bool
}

// NewReminder creates a reminder for a commitment. The reminder time
// must be strictly before the commitment's start time.
func NewReminder(when time.Time, message string, commitment *Commitment) (*Reminder, error) {
	if commitment == nil {
		return nil, ErrNilCommitment
	}
	if !when.Before(commitment.StartTime()) {
		return nil, ErrReminderNotBefore
	}

	return &Reminder{
		when:       when,
		message:    message,
		commitment: commitment,
	}, nil
}

func (r *Reminder) When() time.Time         { return r.when }
func (r *Reminder) Message() string         { return r.message }
func (r *Reminder) Commitment() *Commitment { return r.commitment }
func (r *Reminder) Acknowledged() bool      { return r.acknowledged }

// Acknowledge marks the reminder as seen by the user.
func (r *Reminder) Acknowledge() {
	r.acknowledged = true
}

// Snooze postpones the reminder without touching its acknowledged state.
func (r *Reminder) Snooze(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidSnooze
	}
	r.when = r.when.Add(d)
	return nil
}

// IsDue reports whether the reminder should fire: its scheduled time
// has passed and it has not been acknowledged.
func (r *Reminder) IsDue(now time.Time) bool {
	return !now.Before(r.when) && !r.acknowledged
}

func (r *Reminder) String() string {
	status := "Not acknowledged"
	if r.acknowledged {
		status = "Acknowledged"
	}
	return fmt.Sprintf("Reminder at %s: %s [%s]",
		r.when.Format("2006-01-02 15:04"), r.message, status)
}
