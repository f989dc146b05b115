package models

import "time"

// Review is a renter's rating of a mate for one booking.
type Review struct {
	ID           string    `bson:"id" json:"id"`
	Booking      string    `bson:"booking" json:"booking"`
	Reviewer     string    `bson:"reviewer" json:"reviewer"`
	ReviewedUser string    `bson:"reviewedUser" json:"reviewedUser"`
	Rating       int       `bson:"rating" json:"rating"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

const (
	MinRating = 1
	MaxRating = 5
)
