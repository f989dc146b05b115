package models

// PaymentIntentStatusSucceeded is the only gateway status that counts as captured.
const PaymentIntentStatusSucceeded = "succeeded"

// PaymentIntent is the gateway's view of a charge attempt.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
}

// Succeeded reports whether the funds were captured.
func (p *PaymentIntent) Succeeded() bool {
	return p != nil && p.Status == PaymentIntentStatusSucceeded
}

// Refund is the gateway's receipt for a refund request.
type Refund struct {
	ID              string
	PaymentIntentID string
	Status          string
}

// ToMinorUnits converts a decimal amount into the gateway's smallest currency unit.
func ToMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
