package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("commitment end time must not precede start time")
	ErrMissingWho       = errors.New("commitment who is required")
	ErrMissingWhat      = errors.New("commitment what is required")
	ErrMissingWhere     = errors.New("commitment where is required")
)

// Default estimates applied when a commitment carries no explicit
// travel or preparation time.
const (
	DefaultTravelTime = 15 * time.Minute
	DefaultPrepTime   = 5 * time.Minute
)

// UnspecifiedLocation is the sentinel used when no location could be
// resolved from the text.
const UnspecifiedLocation = "unspecified location"

// Commitment represents an obligation extracted from a communication:
// who has to do what, where, over which time range.
type Commitment struct {
	startTime time.Time
	endTime   time.Time
	who       string
	what      string
	where     string

	// Zero values mean "not estimated"; defaults apply.
	estimatedTravelTime time.Duration
	estimatedPrepTime   time.Duration
}

// NewCommitment creates a commitment. The who/what/where fields must be
// non-empty; callers substitute sentinels before construction when
// extraction was inconclusive.
func NewCommitment(startTime, endTime time.Time, who, what, where string) (*Commitment, error) {
	if endTime.Before(startTime) {
		return nil, ErrInvalidTimeRange
	}
	if who == "" {
		return nil, ErrMissingWho
	}
	if what == "" {
		return nil, ErrMissingWhat
	}
	if where == "" {
		return nil, ErrMissingWhere
	}

	return &Commitment{
		startTime: startTime,
		endTime:   endTime,
		who:       who,
		what:      what,
		where:     where,
	}, nil
}

func (c *Commitment) StartTime() time.Time { return c.startTime }
func (c *Commitment) EndTime() time.Time   { return c.endTime }
func (c *Commitment) Who() string          { return c.who }
func (c *Commitment) What() string         { return c.what }
func (c *Commitment) Where() string        { return c.where }

// EstimatedTravelTime returns the travel estimate, falling back to the
// default when none was set.
func (c *Commitment) EstimatedTravelTime() time.Duration {
	if c.estimatedTravelTime > 0 {
		return c.estimatedTravelTime
	}
	return DefaultTravelTime
}

// EstimatedPrepTime returns the preparation estimate, falling back to
// the default when none was set.
func (c *Commitment) EstimatedPrepTime() time.Duration {
	if c.estimatedPrepTime > 0 {
		return c.estimatedPrepTime
	}
	return DefaultPrepTime
}

// SetEstimates overrides the travel and preparation estimates.
// Non-positive values leave the defaults in place.
func (c *Commitment) SetEstimates(travel, prep time.Duration) {
	if travel > 0 {
		c.estimatedTravelTime = travel
	}
	if prep > 0 {
		c.estimatedPrepTime = prep
	}
}

// Duration returns the length of the commitment's time range.
func (c *Commitment) Duration() time.Duration {
	return c.endTime.Sub(c.startTime)
}

// DepartureTime calculates when the user needs to start preparing to
// make the commitment: start time minus travel and preparation time.
func (c *Commitment) DepartureTime() time.Time {
	return c.startTime.Add(-c.EstimatedTravelTime()).Add(-c.EstimatedPrepTime())
}

// DepartureTimeWithDefaults is DepartureTime with configurable
// fallbacks. Estimates set on the commitment win; non-positive
// fallbacks fall through to the package defaults.
func (c *Commitment) DepartureTimeWithDefaults(travel, prep time.Duration) time.Time {
	t := c.estimatedTravelTime
	if t <= 0 {
		t = travel
	}
	if t <= 0 {
		t = DefaultTravelTime
	}

	p := c.estimatedPrepTime
	if p <= 0 {
		p = prep
	}
	if p <= 0 {
		p = DefaultPrepTime
	}

	return c.startTime.Add(-t).Add(-p)
}

func (c *Commitment) String() string {
	return fmt.Sprintf("Commitment to %s with %s at %s on %s",
		c.what, c.who, c.where, c.startTime.Format("2006-01-02 15:04"))
}
