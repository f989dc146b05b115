package bookingRepo

import (
	"context"
	"errors"
	"time"

	"matehub/models"
)

// ErrStatusChanged is returned by a conditional status update when the
// transaction is no longer in the expected prior status.
var ErrStatusChanged = errors.New("transaction status changed")

// ErrHoldClaimed is returned by Promote when another caller already deleted the hold.
var ErrHoldClaimed = errors.New("hold already claimed")

// HoldRepository defines data access for pending holds.
type HoldRepository interface {
	CreateHold(ctx context.Context, hold *models.Hold) error
	// GetHold returns database.ErrNotFound when the hold is absent or already reaped.
	GetHold(ctx context.Context, id string) (*models.Hold, error)
	// DeleteHold reports whether this call removed the hold.
	DeleteHold(ctx context.Context, id string) (bool, error)
	SetHoldPaymentIntent(ctx context.Context, id, intentID string) error
	// CountOverlappingHolds counts the mate's holds intersecting interval, skipping excludeID.
	CountOverlappingHolds(ctx context.Context, mateID string, interval models.Interval, excludeID string) (int64, error)
	ListOverlappingHolds(ctx context.Context, mateID string, interval models.Interval) ([]models.Hold, error)
}

// TransactionFilter narrows a paginated transaction listing.
type TransactionFilter struct {
	MateID     string
	RenterID   string
	Statuses   []models.TransactionStatus
	StartAfter *time.Time
}

// TransactionRepository defines data access for the transaction ledger.
type TransactionRepository interface {
	// Promote deletes the hold, then inserts txn and links it to the mate and
	// renter. ErrHoldClaimed means the hold was already gone and nothing was written.
	Promote(ctx context.Context, txn *models.Transaction, holdID string) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	// CountOverlappingTransactions counts the mate's non-refunded transactions intersecting interval.
	CountOverlappingTransactions(ctx context.Context, mateID string, interval models.Interval) (int64, error)
	ListOverlappingTransactions(ctx context.Context, mateID string, interval models.Interval) ([]models.Transaction, error)
	// UpdateStatus applies upd only if the stored status equals upd.From; ErrStatusChanged otherwise.
	UpdateStatus(ctx context.Context, id string, upd models.TransactionUpdate) error
	// FindExpiredPaid returns up to limit paid transactions whose end time is before now.
	FindExpiredPaid(ctx context.Context, now time.Time, limit int) ([]models.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter, page models.PageRequest) ([]models.Transaction, int64, error)
}

// ReviewRepository defines data access for reviews.
type ReviewRepository interface {
	// CreateReview returns database.ErrDuplicate when the reviewer already reviewed the booking.
	CreateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id string) error
	// AverageRating returns the mean rating and count for reviewedUser.
	AverageRating(ctx context.Context, reviewedUser string) (float64, int64, error)
}
