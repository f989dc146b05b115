package payment

import (
	"context"

	"matehub/models"
)

// Disabled is the gateway used when no Stripe key is configured. Every call
// fails with ErrNotConfigured.
type Disabled struct{}

func (Disabled) CreateIntent(context.Context, int64, string, map[string]string) (*models.PaymentIntent, error) {
	return nil, ErrNotConfigured
}

func (Disabled) RetrieveIntent(context.Context, string) (*models.PaymentIntent, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Refund(context.Context, string) (*models.Refund, error) {
	return nil, ErrNotConfigured
}
