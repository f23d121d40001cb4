package entities

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the content of one meeting-summary email
type Notification struct {
	RecordID     string
	MeetingName  string
	Summary      string
	ActionItems  string
	KeyQuestions string
	RecordURL    string
}

// Email is a rendered message ready for the mail transport
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

// DeliveryOutcome is the result of a single delivery attempt
type DeliveryOutcome string

const (
	DeliverySucceeded DeliveryOutcome = "success"
	DeliveryFailed    DeliveryOutcome = "failure"
)

// DeliveryAttempt records one try at sending a Notification. It is not
// persisted; a successful attempt shows up only as the record's Sent flag.
type DeliveryAttempt struct {
	ID        uuid.UUID       `json:"id"`
	RecordID  string          `json:"record_id,omitempty"`
	Attempt   int             `json:"attempt"`
	Subject   string          `json:"subject"`
	Outcome   DeliveryOutcome `json:"outcome"`
	Reason    string          `json:"reason,omitempty"`
	MessageID string          `json:"message_id,omitempty"`
	At        time.Time       `json:"at"`
}

// NewDeliveryAttempt starts an attempt record for n
func NewDeliveryAttempt(n Notification, attempt int, subject string) *DeliveryAttempt {
	return &DeliveryAttempt{
		ID:       uuid.New(),
		RecordID: n.RecordID,
		Attempt:  attempt,
		Subject:  subject,
		At:       time.Now().UTC(),
	}
}

// DeliveryResult summarises all attempts for one notification
type DeliveryResult struct {
	Sent     bool
	Message  string
	Attempts []DeliveryAttempt
}
