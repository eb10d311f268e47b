// Package domain contains the entities of the commitment extraction
// context: inbound communications, the commitments extracted from them,
// and the reminders scheduled for those commitments.
package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingSender    = errors.New("communication sender is required")
	ErrMissingRecipient = errors.New("communication recipient is required")
)

// Communication represents a message exchanged between two parties.
// Content may be empty; an empty communication simply yields no
// commitments downstream.
type Communication struct {
	content   string
	sender    string
	recipient string
	timestamp time.Time
}

// NewCommunication creates a communication. A zero timestamp defaults
// to the current time.
func NewCommunication(content, sender, recipient string, timestamp time.Time) (Communication, error) {
	if sender == "" {
		return Communication{}, ErrMissingSender
	}
	if recipient == "" {
		return Communication{}, ErrMissingRecipient
	}
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return Communication{
		content:   content,
		sender:    sender,
		recipient: recipient,
		timestamp: timestamp,
	}, nil
}

func (c Communication) Content() string      { return c.content }
func (c Communication) Sender() string       { return c.sender }
func (c Communication) Recipient() string    { return c.recipient }
func (c Communication) Timestamp() time.Time { return c.timestamp }

// IsEmpty reports whether the communication carries no text.
func (c Communication) IsEmpty() bool {
	return c.content == ""
}

func (c Communication) String() string {
	return fmt.Sprintf("From %s to %s at %s: %s",
		c.sender, c.recipient, c.timestamp.Format("2006-01-02 15:04"), c.content)
}
