package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"matehub/database"
	"matehub/models"
	"matehub/services/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Review records the renter's rating of an ended booking and refreshes the
// mate's mean rating. Each booking can be reviewed once.
func (s *DefaultBookingService) Review(ctx context.Context, who models.Identity, txnID string, rating int) (*models.Review, error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, invalid(fmt.Sprintf("Rating must be between %d and %d", models.MinRating, models.MaxRating))
	}
	txn, err := s.loadForActor(ctx, who, txnID, models.RoleRenter)
	if err != nil {
		return nil, err
	}
	if txn.Status != models.StatusEnd {
		return nil, invalid("Booking cannot be reviewed yet")
	}

	review := &models.Review{
		ID:           uuid.New().String(),
		Booking:      txn.ID,
		Reviewer:     who.ID,
		ReviewedUser: txn.MateID,
		Rating:       rating,
		CreatedAt:    s.now(),
	}
	if err := s.Reviews.CreateReview(ctx, review); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, invalid("You have already reviewed this booking")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.advance(ctx, txn, models.TransactionUpdate{
		From:     models.StatusEnd,
		To:       models.StatusReviewed,
		ReviewID: &review.ID,
	}); err != nil {
		if derr := s.Reviews.DeleteReview(ctx, review.ID); derr != nil {
			s.Logger.Error("failed to roll back review", zap.String("reviewId", review.ID), zap.Error(derr))
		}
		return nil, err
	}

	s.refreshReviewRate(ctx, txn.MateID)
	s.publish(ctx, events.TransactionReviewed, txn)
	return review, nil
}

// refreshReviewRate recomputes the mate's mean rating from all reviews. A
// failure leaves the previous mean until the next review.
func (s *DefaultBookingService) refreshReviewRate(ctx context.Context, mateID string) {
	log := s.Logger.With(zap.String("mateId", mateID))

	avg, count, err := s.Reviews.AverageRating(ctx, mateID)
	if err != nil {
		log.Error("failed to aggregate ratings", zap.Error(err))
		return
	}
	rate := math.Round(avg*100) / 100
	if err := s.Mates.SetReviewRate(ctx, mateID, rate); err != nil {
		log.Error("failed to store review rate", zap.Error(err))
		return
	}
	s.Profiles.Invalidate(ctx, mateID)
	log.Info("Review rate updated", zap.Float64("reviewRate", rate), zap.Int64("reviews", count))
}
