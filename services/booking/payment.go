package booking

import (
	"context"
	"fmt"

	"matehub/models"

	"go.uber.org/zap"
)

// PaymentIntentResult carries what the client needs to complete card payment.
type PaymentIntentResult struct {
	ClientSecret    string  `json:"clientSecret"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// CreatePaymentIntent opens a gateway charge for the hold's stored amount and
// records the intent on the hold.
func (s *DefaultBookingService) CreatePaymentIntent(ctx context.Context, who models.Identity, holdID string) (*PaymentIntentResult, error) {
	hold, err := s.loadOwnHold(ctx, who, holdID)
	if err != nil {
		return nil, err
	}
	if hold.ExpiredAt(s.now(), s.HoldTTL) {
		if _, err := s.Holds.DeleteHold(ctx, hold.ID); err != nil {
			s.Logger.Warn("failed to delete expired hold", zap.String("holdId", hold.ID), zap.Error(err))
		}
		return nil, newError(ErrExpired, "Booking hold has expired", nil)
	}
	if hold.Amount <= 0 {
		return nil, invalid("Invalid amount")
	}

	// A renter retrying payment on the same hold gets the existing intent back.
	if hold.StripePaymentIntentID != "" {
		pi, err := s.Payments.RetrieveIntent(ctx, hold.StripePaymentIntentID)
		if err != nil {
			return nil, dependency("Payment provider unavailable", err)
		}
		return s.intentResult(hold, pi), nil
	}

	pi, err := s.Payments.CreateIntent(ctx, models.ToMinorUnits(hold.Amount), s.Currency, map[string]string{
		"holdId":   hold.ID,
		"mateId":   hold.MateID,
		"renterId": hold.RenterID,
	})
	if err != nil {
		return nil, dependency("Payment provider unavailable", err)
	}
	if err := s.Holds.SetHoldPaymentIntent(ctx, hold.ID, pi.ID); err != nil {
		return nil, fmt.Errorf("attach payment intent: %w", err)
	}

	s.Logger.Info("Payment intent attached to hold",
		zap.String("holdId", hold.ID),
		zap.String("paymentIntentId", pi.ID))
	return s.intentResult(hold, pi), nil
}

func (s *DefaultBookingService) intentResult(hold *models.Hold, pi *models.PaymentIntent) *PaymentIntentResult {
	return &PaymentIntentResult{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
		Amount:          hold.Amount,
		Currency:        s.Currency,
	}
}

// refundIfCaptured returns a captured payment whose booking will not proceed.
// Failures are logged; the caller's outcome does not change.
func (s *DefaultBookingService) refundIfCaptured(ctx context.Context, intentID, reason string) {
	if intentID == "" {
		return
	}
	log := s.Logger.With(zap.String("paymentIntentId", intentID), zap.String("reason", reason))

	pi, err := s.Payments.RetrieveIntent(ctx, intentID)
	if err != nil {
		log.Error("failed to inspect payment intent for refund", zap.Error(err))
		return
	}
	if !pi.Succeeded() {
		return
	}
	if _, err := s.Payments.Refund(ctx, intentID); err != nil {
		log.Error("failed to refund orphaned payment", zap.Error(err))
		return
	}
	log.Info("Orphaned payment refunded")
}
