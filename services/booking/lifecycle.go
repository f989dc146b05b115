package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"matehub/database/repository"
	"matehub/models"
	"matehub/services/events"

	"go.uber.org/zap"
)

// loadForActor fetches a transaction and checks that who is its party in role.
func (s *DefaultBookingService) loadForActor(ctx context.Context, who models.Identity, txnID string, role models.Role) (*models.Transaction, error) {
	if who.Role != role {
		return nil, forbidden("Unauthorized")
	}
	if strings.TrimSpace(txnID) == "" {
		return nil, invalid("Missing transaction id")
	}
	txn, err := s.Transactions.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, s.lookupError(err, "Transaction not found")
	}

	owner := txn.RenterID
	if role == models.RoleMate {
		owner = txn.MateID
	}
	if owner != who.ID {
		return nil, forbidden("Unauthorized")
	}
	return txn, nil
}

// advance applies upd as a conditional write and mirrors it onto txn.
func (s *DefaultBookingService) advance(ctx context.Context, txn *models.Transaction, upd models.TransactionUpdate) error {
	if txn.Status != upd.From {
		return invalid(fmt.Sprintf("Transaction is %s, expected %s", txn.Status, upd.From))
	}
	if !upd.From.CanTransitionTo(upd.To) {
		return invalid(fmt.Sprintf("Transaction cannot move from %s to %s", upd.From, upd.To))
	}

	upd.UpdatedAt = s.now()
	if err := s.Transactions.UpdateStatus(ctx, txn.ID, upd); err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return invalid("Transaction status has already changed")
		}
		return fmt.Errorf("update transaction %s: %w", txn.ID, err)
	}

	txn.Status = upd.To
	txn.UpdatedAt = upd.UpdatedAt
	if upd.CanceledBy != nil {
		txn.CanceledBy = *upd.CanceledBy
	}
	if upd.PaidToMate != nil {
		txn.PaidToMate = *upd.PaidToMate
	}
	if upd.ReviewID != nil {
		txn.ReviewID = *upd.ReviewID
	}
	return nil
}

// refundAndCancel refunds a paid transaction and marks it refunded. A failed
// refund leaves the transaction paid.
func (s *DefaultBookingService) refundAndCancel(ctx context.Context, txn *models.Transaction, by models.CanceledBy) error {
	if txn.Status != models.StatusPaid {
		return invalid(fmt.Sprintf("Transaction is %s, expected %s", txn.Status, models.StatusPaid))
	}
	if txn.StripePaymentIntentID == "" {
		return invalid("No payment found for this transaction")
	}

	if _, err := s.Payments.Refund(ctx, txn.StripePaymentIntentID); err != nil {
		return dependency("Refund failed", err)
	}

	if err := s.advance(ctx, txn, models.TransactionUpdate{
		From:       models.StatusPaid,
		To:         models.StatusRefunded,
		CanceledBy: &by,
	}); err != nil {
		// The money is back with the renter but the ledger still says otherwise.
		s.Logger.Error("Refund issued but transaction was not marked refunded",
			zap.String("transactionId", txn.ID),
			zap.String("paymentIntentId", txn.StripePaymentIntentID),
			zap.String("canceledBy", string(by)),
			zap.Error(err))
		return err
	}

	s.Logger.Info("Transaction refunded",
		zap.String("transactionId", txn.ID),
		zap.String("canceledBy", string(by)))
	s.publish(ctx, events.TransactionRefunded, txn)
	return nil
}

// Accept confirms a paid booking request on the mate's side.
func (s *DefaultBookingService) Accept(ctx context.Context, who models.Identity, txnID string) (*models.Transaction, error) {
	txn, err := s.loadForActor(ctx, who, txnID, models.RoleMate)
	if err != nil {
		return nil, err
	}
	if err := s.advance(ctx, txn, models.TransactionUpdate{From: models.StatusPaid, To: models.StatusConfirmed}); err != nil {
		return nil, err
	}
	s.Logger.Info("Transaction accepted", zap.String("transactionId", txn.ID))
	s.publish(ctx, events.TransactionConfirmed, txn)
	return txn, nil
}

// Reject declines a paid booking request and refunds the renter.
func (s *DefaultBookingService) Reject(ctx context.Context, who models.Identity, txnID string) (*models.Transaction, error) {
	txn, err := s.loadForActor(ctx, who, txnID, models.RoleMate)
	if err != nil {
		return nil, err
	}
	if err := s.refundAndCancel(ctx, txn, models.CanceledByMate); err != nil {
		return nil, err
	}
	return txn, nil
}

// Cancel withdraws a renter's paid booking before the mate accepts it.
func (s *DefaultBookingService) Cancel(ctx context.Context, who models.Identity, txnID string) (*models.Transaction, error) {
	txn, err := s.loadForActor(ctx, who, txnID, models.RoleRenter)
	if err != nil {
		return nil, err
	}
	if err := s.refundAndCancel(ctx, txn, models.CanceledByRenter); err != nil {
		return nil, err
	}
	return txn, nil
}

// End closes a confirmed booking and marks the mate as paid.
func (s *DefaultBookingService) End(ctx context.Context, who models.Identity, txnID string) (*models.Transaction, error) {
	txn, err := s.loadForActor(ctx, who, txnID, models.RoleMate)
	if err != nil {
		return nil, err
	}
	paid := true
	if err := s.advance(ctx, txn, models.TransactionUpdate{
		From:       models.StatusConfirmed,
		To:         models.StatusEnd,
		PaidToMate: &paid,
	}); err != nil {
		return nil, err
	}
	s.Logger.Info("Transaction ended", zap.String("transactionId", txn.ID))
	s.publish(ctx, events.TransactionEnded, txn)
	return txn, nil
}

// autoCancel refunds a paid transaction on the system's behalf.
func (s *DefaultBookingService) autoCancel(ctx context.Context, txn *models.Transaction) error {
	return s.refundAndCancel(ctx, txn, models.CanceledBySystem)
}
