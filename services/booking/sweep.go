package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SweepReport summarizes one expiry sweep.
type SweepReport struct {
	Found    int `json:"found"`
	Refunded int `json:"refunded"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// SweepExpired refunds up to SweepBatch paid transactions whose end time has
// passed. Each item is handled independently; failures stay paid for the
// next run.
func (s *DefaultBookingService) SweepExpired(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	now := s.now()

	txns, err := s.Transactions.FindExpiredPaid(ctx, now, s.SweepBatch)
	if err != nil {
		return report, fmt.Errorf("find expired transactions: %w", err)
	}
	report.Found = len(txns)
	if report.Found == 0 {
		s.Logger.Debug("No expired transactions", zap.Time("at", now))
		return report, nil
	}

	for i := range txns {
		if ctx.Err() != nil {
			break
		}
		txn := &txns[i]
		log := s.Logger.With(zap.String("transactionId", txn.ID))

		if txn.StripePaymentIntentID == "" {
			log.Warn("Auto-cancel skipped: no payment intent")
			report.Skipped++
			continue
		}
		if err := s.autoCancel(ctx, txn); err != nil {
			log.Error("Auto-cancel failed", zap.Error(err))
			report.Failed++
			continue
		}
		report.Refunded++
	}

	s.Logger.Info("Expiry sweep finished",
		zap.Int("found", report.Found),
		zap.Int("refunded", report.Refunded),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, ctx.Err()
}
