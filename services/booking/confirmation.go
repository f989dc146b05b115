package booking

import (
	"context"
	"errors"
	"fmt"

	"matehub/database/repository"
	"matehub/models"
	"matehub/services/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confirm re-validates a paid hold and promotes it to a transaction.
// An expired or conflicting hold is destroyed and any captured payment is
// refunded before the failure is returned.
func (s *DefaultBookingService) Confirm(ctx context.Context, who models.Identity, holdID string) (*models.Transaction, error) {
	hold, err := s.loadOwnHold(ctx, who, holdID)
	if err != nil {
		return nil, err
	}
	log := s.Logger.With(zap.String("holdId", hold.ID), zap.String("mateId", hold.MateID))

	now := s.now()
	if hold.ExpiredAt(now, s.HoldTTL) {
		s.discardHold(ctx, hold, "hold expired")
		log.Info("Confirmation rejected: hold expired")
		return nil, newError(ErrExpired, "Booking hold has expired", nil)
	}

	mate, err := s.Mates.GetMate(ctx, hold.MateID)
	if err != nil {
		return nil, s.lookupError(err, "Mate not found")
	}
	if !mate.IsBookingReady() {
		return nil, invalid("Mate profile is incomplete")
	}

	if hold.StripePaymentIntentID == "" {
		return nil, newError(ErrPaymentIncomplete, "Payment not completed", nil)
	}
	pi, err := s.Payments.RetrieveIntent(ctx, hold.StripePaymentIntentID)
	if err != nil {
		return nil, dependency("Payment provider unavailable", err)
	}
	if !pi.Succeeded() {
		return nil, newError(ErrPaymentIncomplete, "Payment not completed", nil)
	}

	if err := s.evaluateAvailability(mate, hold.Interval()); err != nil {
		return nil, err
	}

	overlap, err := s.hasOverlap(ctx, hold.MateID, hold.Interval(), hold.ID)
	if err != nil {
		return nil, err
	}
	if overlap {
		if txn := s.promotedFrom(ctx, hold); txn != nil {
			log.Info("Confirmation repeated; returning existing transaction", zap.String("transactionId", txn.ID))
			return txn, nil
		}
		s.discardHold(ctx, hold, "slot taken before confirmation")
		log.Info("Confirmation rejected: slot already booked")
		return nil, newError(ErrConflict, "This time slot has already been booked", nil)
	}

	txn := models.NewTransactionFromHold(uuid.New().String(), hold, now)
	if err := s.Transactions.Promote(ctx, txn, hold.ID); err != nil {
		if !errors.Is(err, repository.ErrHoldClaimed) {
			return nil, fmt.Errorf("promote hold %s: %w", hold.ID, err)
		}
		if existing := s.promotedFrom(ctx, hold); existing != nil {
			log.Info("Confirmation repeated; returning existing transaction", zap.String("transactionId", existing.ID))
			return existing, nil
		}
		log.Info("Confirmation rejected: hold claimed concurrently")
		return nil, newError(ErrConflict, "Booking hold is no longer available", err)
	}

	log.Info("Booking confirmed",
		zap.String("transactionId", txn.ID),
		zap.String("renterId", txn.RenterID),
		zap.Float64("amount", txn.Amount))
	s.publish(ctx, events.TransactionPaid, txn)
	return txn, nil
}

// promotedFrom finds the transaction a concurrent confirmation already created
// from hold, matched by payment intent.
func (s *DefaultBookingService) promotedFrom(ctx context.Context, hold *models.Hold) *models.Transaction {
	if hold.StripePaymentIntentID == "" {
		return nil
	}
	txns, err := s.Transactions.ListOverlappingTransactions(ctx, hold.MateID, hold.Interval())
	if err != nil {
		s.Logger.Warn("failed to look up promoted hold", zap.String("holdId", hold.ID), zap.Error(err))
		return nil
	}
	for i := range txns {
		if txns[i].StripePaymentIntentID == hold.StripePaymentIntentID && txns[i].RenterID == hold.RenterID {
			return &txns[i]
		}
	}
	return nil
}

// discardHold deletes a hold that can no longer be confirmed. The payment is
// refunded only by the caller whose delete removed the hold.
func (s *DefaultBookingService) discardHold(ctx context.Context, hold *models.Hold, reason string) {
	deleted, err := s.Holds.DeleteHold(ctx, hold.ID)
	if err != nil {
		s.Logger.Warn("failed to delete hold", zap.String("holdId", hold.ID), zap.Error(err))
		return
	}
	if !deleted {
		s.Logger.Info("hold already removed; leaving payment alone",
			zap.String("holdId", hold.ID),
			zap.String("paymentIntentId", hold.StripePaymentIntentID))
		return
	}
	s.refundIfCaptured(ctx, hold.StripePaymentIntentID, reason)
}
