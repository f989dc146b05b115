package booking

import (
	"context"
	"testing"

	"matehub/database"
	"matehub/database/repository"
	"matehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReview_RecordsRatingAndRefreshesMean(t *testing.T) {
	h := newHarness(t)
	h.txns.On("GetTransaction", mock.Anything, "t1").Return(paidTxn(models.StatusEnd), nil)
	h.reviews.On("CreateReview", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.Rating == 4 && r.Booking == "t1" && r.Reviewer == "r1" && r.ReviewedUser == "m1"
	})).Return(nil)
	h.txns.On("UpdateStatus", mock.Anything, "t1", mock.MatchedBy(func(upd models.TransactionUpdate) bool {
		return upd.From == models.StatusEnd && upd.To == models.StatusReviewed && upd.ReviewID != nil
	})).Return(nil)
	h.reviews.On("AverageRating", mock.Anything, "m1").Return(4.5, int64(2), nil)
	h.mates.On("SetReviewRate", mock.Anything, "m1", 4.5).Return(nil)

	review, err := h.svc.Review(context.Background(), renter, "t1", 4)

	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, []string{"m1"}, h.cache.invalidated)
}

func TestReview_DuplicateLeavesMeanUnchanged(t *testing.T) {
	h := newHarness(t)
	h.txns.On("GetTransaction", mock.Anything, "t1").Return(paidTxn(models.StatusEnd), nil)
	h.reviews.On("CreateReview", mock.Anything, mock.Anything).Return(database.ErrDuplicate)

	_, err := h.svc.Review(context.Background(), renter, "t1", 5)

	assert.ErrorIs(t, err, ErrInvalidRequest)
	h.mates.AssertNotCalled(t, "SetReviewRate", mock.Anything, mock.Anything, mock.Anything)
	h.txns.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestReview_LostRaceRollsBackReview(t *testing.T) {
	h := newHarness(t)
	h.txns.On("GetTransaction", mock.Anything, "t1").Return(paidTxn(models.StatusEnd), nil)
	h.reviews.On("CreateReview", mock.Anything, mock.Anything).Return(nil)
	h.txns.On("UpdateStatus", mock.Anything, "t1", mock.Anything).Return(repository.ErrStatusChanged)
	h.reviews.On("DeleteReview", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := h.svc.Review(context.Background(), renter, "t1", 3)

	assert.ErrorIs(t, err, ErrInvalidRequest)
	h.reviews.AssertNotCalled(t, "AverageRating", mock.Anything, mock.Anything)
}

func TestReview_Preconditions(t *testing.T) {
	t.Run("rating out of range", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Review(context.Background(), renter, "t1", 6)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("not ended", func(t *testing.T) {
		h := newHarness(t)
		h.txns.On("GetTransaction", mock.Anything, "t1").Return(paidTxn(models.StatusConfirmed), nil)
		_, err := h.svc.Review(context.Background(), renter, "t1", 4)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("not the renter", func(t *testing.T) {
		h := newHarness(t)
		h.txns.On("GetTransaction", mock.Anything, "t1").Return(paidTxn(models.StatusEnd), nil)
		_, err := h.svc.Review(context.Background(), otherRenter, "t1", 4)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
