package domain

import (
	"github.com/google/uuid"

	shared "github.com/tacit-labs/tacit/internal/shared/domain"
)

// Routing keys for extraction events.
const (
	CommunicationProcessedKey = "communication.processed"
)

// CommunicationProcessed is emitted after a communication has been run
// through the extraction pipeline, whether or not it yielded reminders.
type CommunicationProcessed struct {
	shared.BaseEvent
	Sender        string
	Recipient     string
	ReminderCount int
}

// NewCommunicationProcessed creates the result event for a processed
// communication.
func NewCommunicationProcessed(sender, recipient string, reminderCount int) *CommunicationProcessed {
	return &CommunicationProcessed{
		BaseEvent:     shared.NewBaseEvent(uuid.New(), "Communication", CommunicationProcessedKey),
		Sender:        sender,
		Recipient:     recipient,
		ReminderCount: reminderCount,
	}
}
