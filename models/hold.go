package models

import "time"

// MaxNoteLength bounds the free-text "others" field on holds and transactions.
const MaxNoteLength = 30

// Hold is a time-boxed reservation of a mate's slot pending payment confirmation.
// Documents are reaped by a TTL index on createdAt; readers must still check age.
type Hold struct {
	ID                    string    `bson:"id" json:"id"`
	MateID                string    `bson:"mateId" json:"mateId"`
	RenterID              string    `bson:"renterId" json:"renterId"`
	StartTime             time.Time `bson:"startTime" json:"startTime"`
	EndTime               time.Time `bson:"endTime" json:"endTime"`
	Place                 string    `bson:"place" json:"place"`
	Purpose               string    `bson:"purpose" json:"purpose"`
	Others                string    `bson:"others,omitempty" json:"others,omitempty"`
	Amount                float64   `bson:"amount" json:"amount"`
	StripePaymentIntentID string    `bson:"stripePaymentIntentId,omitempty" json:"-"`
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`
}

// Interval returns the hold's booked interval.
func (h *Hold) Interval() Interval {
	return Interval{Start: h.StartTime, End: h.EndTime}
}

// ExpiredAt reports whether the hold is older than ttl at now.
func (h *Hold) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(h.CreatedAt) > ttl
}
