package models

import "time"

// TransactionStatus is the lifecycle state of a confirmed booking.
type TransactionStatus string

const (
	StatusPaid      TransactionStatus = "paid"
	StatusConfirmed TransactionStatus = "confirmed"
	StatusEnd       TransactionStatus = "end"
	StatusReviewed  TransactionStatus = "reviewed"
	StatusRefunded  TransactionStatus = "refunded"
)

var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	StatusPaid:      {StatusConfirmed, StatusRefunded},
	StatusConfirmed: {StatusEnd},
	StatusEnd:       {StatusReviewed},
	StatusReviewed:  {},
	StatusRefunded:  {},
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	for _, t := range transactionTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s TransactionStatus) String() string {
	return string(s)
}

// CanceledBy records who moved a transaction to refunded.
type CanceledBy string

const (
	CanceledByNone   CanceledBy = ""
	CanceledByMate   CanceledBy = "mate"
	CanceledByRenter CanceledBy = "renter"
	CanceledBySystem CanceledBy = "system"
)

// Transaction is a confirmed booking progressing through payment and fulfilment.
type Transaction struct {
	ID                    string            `bson:"id" json:"id"`
	MateID                string            `bson:"mateId" json:"mateId"`
	RenterID              string            `bson:"renterId" json:"renterId"`
	StartTime             time.Time         `bson:"startTime" json:"startTime"`
	EndTime               time.Time         `bson:"endTime" json:"endTime"`
	Place                 string            `bson:"place" json:"place"`
	Purpose               string            `bson:"purpose" json:"purpose"`
	Others                string            `bson:"others,omitempty" json:"others,omitempty"`
	Amount                float64           `bson:"amount" json:"amount"`
	StripePaymentIntentID string            `bson:"stripePaymentIntentId,omitempty" json:"-"`
	Status                TransactionStatus `bson:"status" json:"status"`
	CanceledBy            CanceledBy        `bson:"canceledBy,omitempty" json:"canceledBy,omitempty"`
	PaidToMate            bool              `bson:"paidToMate" json:"paidToMate"`
	ReviewID              string            `bson:"reviewId,omitempty" json:"reviewId,omitempty"`
	CreatedAt             time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Interval returns the transaction's booked interval.
func (t *Transaction) Interval() Interval {
	return Interval{Start: t.StartTime, End: t.EndTime}
}

// NewTransactionFromHold copies a hold's booking fields into a fresh paid transaction.
func NewTransactionFromHold(id string, h *Hold, now time.Time) *Transaction {
	return &Transaction{
		ID:                    id,
		MateID:                h.MateID,
		RenterID:              h.RenterID,
		StartTime:             h.StartTime,
		EndTime:               h.EndTime,
		Place:                 h.Place,
		Purpose:               h.Purpose,
		Others:                h.Others,
		Amount:                h.Amount,
		StripePaymentIntentID: h.StripePaymentIntentID,
		Status:                StatusPaid,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// TransactionUpdate describes a conditional status change. Only non-nil fields are written.
type TransactionUpdate struct {
	From       TransactionStatus
	To         TransactionStatus
	CanceledBy *CanceledBy
	PaidToMate *bool
	ReviewID   *string
	UpdatedAt  time.Time
}
