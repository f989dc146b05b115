package models

import "time"

// Renter is the profile of a user who books mates.
type Renter struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	SurName        string    `bson:"surName" json:"surName"`
	Nickname       string    `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"passwordHash" json:"-"`
	Role           string    `bson:"role" json:"role"`
	TransactionIDs []string  `bson:"transactionIds" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
