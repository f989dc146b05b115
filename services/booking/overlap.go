package booking

import (
	"context"
	"fmt"

	"matehub/models"
)

// hasOverlap reports whether interval intersects any of the mate's holds
// (other than excludeHoldID) or non-refunded transactions.
func (s *DefaultBookingService) hasOverlap(ctx context.Context, mateID string, interval models.Interval, excludeHoldID string) (bool, error) {
	holds, err := s.Holds.CountOverlappingHolds(ctx, mateID, interval, excludeHoldID)
	if err != nil {
		return false, fmt.Errorf("overlap check on holds: %w", err)
	}
	if holds > 0 {
		return true, nil
	}

	txns, err := s.Transactions.CountOverlappingTransactions(ctx, mateID, interval)
	if err != nil {
		return false, fmt.Errorf("overlap check on transactions: %w", err)
	}
	return txns > 0, nil
}
