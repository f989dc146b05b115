// Package payment bridges booking operations to the card payment gateway.
package payment

import (
	"context"
	"errors"
	"time"

	"matehub/models"
)

// ErrNotConfigured is returned when no gateway key was supplied.
var ErrNotConfigured = errors.New("payment gateway is not configured")

// callTimeout bounds every round trip to the gateway.
const callTimeout = 30 * time.Second

// Gateway creates, inspects and refunds payment intents.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*models.PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error)
	Refund(ctx context.Context, intentID string) (*models.Refund, error)
}
