package payment

import (
	"context"
	"fmt"

	"matehub/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeGateway implements Gateway with the Stripe PaymentIntents and Refunds APIs.
type StripeGateway struct {
	sc     *client.API
	logger *zap.Logger
}

// NewStripeGateway builds a gateway bound to secretKey.
func NewStripeGateway(secretKey string, logger *zap.Logger) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, ErrNotConfigured
	}
	return NewStripeGatewayWithBackends(secretKey, nil, logger), nil
}

// NewStripeGatewayWithBackends builds a gateway against explicit Stripe
// backends; nil selects the public API.
func NewStripeGatewayWithBackends(secretKey string, backends *stripe.Backends, logger *zap.Logger) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &StripeGateway{sc: sc, logger: logger}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*models.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	g.logger.Info("Payment intent created",
		zap.String("paymentIntentId", pi.ID),
		zap.Int64("amount", amountMinor),
		zap.String("currency", currency))
	return toIntent(pi), nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.sc.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve payment intent %s: %w", id, err)
	}
	return toIntent(pi), nil
}

// Refund returns the full amount of intentID. The idempotency key makes a
// retried refund of the same intent a no-op on Stripe's side.
func (g *StripeGateway) Refund(ctx context.Context, intentID string) (*models.Refund, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.RefundParams{PaymentIntent: stripe.String(intentID)}
	params.Context = ctx
	params.SetIdempotencyKey("refund-" + intentID)

	r, err := g.sc.Refunds.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: refund payment intent %s: %w", intentID, err)
	}
	g.logger.Info("Payment refunded", zap.String("paymentIntentId", intentID), zap.String("refundId", r.ID))
	return &models.Refund{ID: r.ID, PaymentIntentID: intentID, Status: string(r.Status)}, nil
}

func toIntent(pi *stripe.PaymentIntent) *models.PaymentIntent {
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}
