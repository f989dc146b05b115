// Package events publishes transaction lifecycle events for downstream
// collaborators such as chat and notifications.
package events

import (
	"context"
	"time"

	"matehub/models"
)

// Event types.
const (
	TransactionPaid      = "transaction.paid"
	TransactionConfirmed = "transaction.confirmed"
	TransactionRefunded  = "transaction.refunded"
	TransactionEnded     = "transaction.ended"
	TransactionReviewed  = "transaction.reviewed"
)

// QueueName is the durable queue lifecycle events are routed to.
const QueueName = "booking.events"

// Event is the JSON body of a lifecycle message.
type Event struct {
	Type          string                   `json:"type"`
	TransactionID string                   `json:"transactionId"`
	MateID        string                   `json:"mateId"`
	RenterID      string                   `json:"renterId"`
	Status        models.TransactionStatus `json:"status"`
	CanceledBy    models.CanceledBy        `json:"canceledBy,omitempty"`
	OccurredAt    time.Time                `json:"occurredAt"`
}

// NewEvent describes txn after it reached its current status.
func NewEvent(eventType string, txn *models.Transaction, at time.Time) Event {
	return Event{
		Type:          eventType,
		TransactionID: txn.ID,
		MateID:        txn.MateID,
		RenterID:      txn.RenterID,
		Status:        txn.Status,
		CanceledBy:    txn.CanceledBy,
		OccurredAt:    at.UTC(),
	}
}

// Publisher delivers lifecycle events. Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
