package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"matehub/database"
	"matehub/database/repository"
	"matehub/models"
	"matehub/services/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func succeeded(id string) *models.PaymentIntent {
	return &models.PaymentIntent{ID: id, Status: models.PaymentIntentStatusSucceeded}
}

func TestConfirm_PromotesPaidHold(t *testing.T) {
	h := newHarness(t)
	hold := heldBooking(5*time.Minute, "pi_1")

	h.holds.On("GetHold", mock.Anything, "h1").Return(hold, nil)
	h.mates.On("GetMate", mock.Anything, "m1").Return(readyMate(), nil)
	h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").Return(succeeded("pi_1"), nil)
	h.holds.On("CountOverlappingHolds", mock.Anything, "m1", mock.Anything, "h1").Return(int64(0), nil)
	h.txns.On("CountOverlappingTransactions", mock.Anything, "m1", mock.Anything).Return(int64(0), nil)
	h.txns.On("Promote", mock.Anything, mock.MatchedBy(func(txn *models.Transaction) bool {
		return txn.Status == models.StatusPaid &&
			txn.Amount == 200 &&
			txn.StripePaymentIntentID == "pi_1" &&
			txn.StartTime.Equal(bookedStart)
	}), "h1").Return(nil)

	txn, err := h.svc.Confirm(context.Background(), renter, "h1")

	require.NoError(t, err)
	assert.NotEmpty(t, txn.ID)
	assert.Equal(t, models.StatusPaid, txn.Status)
	assert.Equal(t, 200.0, txn.Amount)
	assert.Equal(t, []string{events.TransactionPaid}, h.published.types())
}

func TestConfirm_ExpiredHoldIsRefundedAndGone(t *testing.T) {
	h := newHarness(t)
	hold := heldBooking(11*time.Minute, "pi_1")

	h.holds.On("GetHold", mock.Anything, "h1").Return(hold, nil)
	h.holds.On("DeleteHold", mock.Anything, "h1").Return(true, nil)
	h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").Return(succeeded("pi_1"), nil)
	h.gateway.On("Refund", mock.Anything, "pi_1").Return(&models.Refund{ID: "re_1"}, nil)

	txn, err := h.svc.Confirm(context.Background(), renter, "h1")

	assert.Nil(t, txn)
	assert.ErrorIs(t, err, ErrExpired)
	status, _ := HTTPStatus(err)
	assert.Equal(t, 410, status)
	h.txns.AssertNotCalled(t, "Promote", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirm_ExpiredUnpaidHold(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(10*time.Minute+time.Second, ""), nil)
	h.holds.On("DeleteHold", mock.Anything, "h1").Return(true, nil)

	_, err := h.svc.Confirm(context.Background(), renter, "h1")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestConfirm_MissingHoldIsNotFound(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(nil, database.ErrNotFound)

	_, err := h.svc.Confirm(context.Background(), renter, "h1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirm_OtherRentersHoldIsNotFound(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil)

	_, err := h.svc.Confirm(context.Background(), otherRenter, "h1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirm_PaymentIncomplete(t *testing.T) {
	t.Run("no intent", func(t *testing.T) {
		h := newHarness(t)
		h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, ""), nil)
		h.mates.On("GetMate", mock.Anything, "m1").Return(readyMate(), nil)

		_, err := h.svc.Confirm(context.Background(), renter, "h1")
		assert.ErrorIs(t, err, ErrPaymentIncomplete)
	})

	t.Run("intent not captured", func(t *testing.T) {
		h := newHarness(t)
		h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil)
		h.mates.On("GetMate", mock.Anything, "m1").Return(readyMate(), nil)
		h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").
			Return(&models.PaymentIntent{ID: "pi_1", Status: "requires_payment_method"}, nil)

		_, err := h.svc.Confirm(context.Background(), renter, "h1")
		assert.ErrorIs(t, err, ErrPaymentIncomplete)
		status, _ := HTTPStatus(err)
		assert.Equal(t, 402, status)
	})
}

func TestConfirm_GatewayFailureIsDependency(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil)
	h.mates.On("GetMate", mock.Anything, "m1").Return(readyMate(), nil)
	h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").Return(nil, errors.New("timeout"))

	_, err := h.svc.Confirm(context.Background(), renter, "h1")
	assert.ErrorIs(t, err, ErrDependency)
}

func TestConfirm_IncompleteMate(t *testing.T) {
	h := newHarness(t)
	mate := readyMate()
	mate.City = ""
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil)
	h.mates.On("GetMate", mock.Anything, "m1").Return(mate, nil)

	_, err := h.svc.Confirm(context.Background(), renter, "h1")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestConfirm_ConflictDiscardsHoldAndRefunds(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil)
	h.mates.On("GetMate", mock.Anything, "m1").Return(readyMate(), nil)
	h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").Return(succeeded("pi_1"), nil)
	h.holds.On("CountOverlappingHolds", mock.Anything, "m1", mock.Anything, "h1").Return(int64(0), nil)
	h.txns.On("CountOverlappingTransactions", mock.Anything, "m1", mock.Anything).Return(int64(1), nil)
	other := paidTxn(models.StatusPaid)
	other.ID, other.RenterID, other.StripePaymentIntentID = "t9", "r2", "pi_9"
	h.txns.On("ListOverlappingTransactions", mock.Anything, "m1", mock.Anything).
		Return([]models.Transaction{*other}, nil)
	h.holds.On("DeleteHold", mock.Anything, "h1").Return(true, nil)
	h.gateway.On("Refund", mock.Anything, "pi_1").Return(&models.Refund{ID: "re_1"}, nil)

	_, err := h.svc.Confirm(context.Background(), renter, "h1")

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, h.published.events)
}

// Two confirmations of one hold race: the second reads the hold before the
// first promotes it, then sees the first's transaction in its overlap check.
func TestConfirm_RepeatedConfirmReturnsExistingTransaction(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil)
	h.mates.On("GetMate", mock.Anything, "m1").Return(readyMate(), nil)
	h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").Return(succeeded("pi_1"), nil).Once()
	h.holds.On("CountOverlappingHolds", mock.Anything, "m1", mock.Anything, "h1").Return(int64(0), nil)
	h.txns.On("CountOverlappingTransactions", mock.Anything, "m1", mock.Anything).Return(int64(1), nil)
	first := paidTxn(models.StatusPaid)
	first.ID = "t-A"
	h.txns.On("ListOverlappingTransactions", mock.Anything, "m1", mock.Anything).
		Return([]models.Transaction{*first}, nil)

	txn, err := h.svc.Confirm(context.Background(), renter, "h1")

	require.NoError(t, err)
	assert.Equal(t, "t-A", txn.ID)
	assert.Equal(t, models.StatusPaid, txn.Status)
	h.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	h.holds.AssertNotCalled(t, "DeleteHold", mock.Anything, mock.Anything)
	assert.Empty(t, h.published.events)
}

func TestConfirm_ConflictLeavesPaymentWhenHoldAlreadyRemoved(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil)
	h.mates.On("GetMate", mock.Anything, "m1").Return(readyMate(), nil)
	h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").Return(succeeded("pi_1"), nil).Once()
	h.holds.On("CountOverlappingHolds", mock.Anything, "m1", mock.Anything, "h1").Return(int64(1), nil)
	h.txns.On("ListOverlappingTransactions", mock.Anything, "m1", mock.Anything).
		Return([]models.Transaction{}, nil)
	h.holds.On("DeleteHold", mock.Anything, "h1").Return(false, nil)

	_, err := h.svc.Confirm(context.Background(), renter, "h1")

	assert.ErrorIs(t, err, ErrConflict)
	h.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestConfirm_PromotionLosesHoldClaim(t *testing.T) {
	setup := func(t *testing.T) *harness {
		h := newHarness(t)
		h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil)
		h.mates.On("GetMate", mock.Anything, "m1").Return(readyMate(), nil)
		h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").Return(succeeded("pi_1"), nil)
		h.holds.On("CountOverlappingHolds", mock.Anything, "m1", mock.Anything, "h1").Return(int64(0), nil)
		h.txns.On("CountOverlappingTransactions", mock.Anything, "m1", mock.Anything).Return(int64(0), nil)
		h.txns.On("Promote", mock.Anything, mock.Anything, "h1").Return(repository.ErrHoldClaimed)
		return h
	}

	t.Run("concurrent promotion", func(t *testing.T) {
		h := setup(t)
		first := paidTxn(models.StatusPaid)
		first.ID = "t-A"
		h.txns.On("ListOverlappingTransactions", mock.Anything, "m1", mock.Anything).
			Return([]models.Transaction{*first}, nil)

		txn, err := h.svc.Confirm(context.Background(), renter, "h1")

		require.NoError(t, err)
		assert.Equal(t, "t-A", txn.ID)
		assert.Empty(t, h.published.events)
	})

	t.Run("hold discarded elsewhere", func(t *testing.T) {
		h := setup(t)
		h.txns.On("ListOverlappingTransactions", mock.Anything, "m1", mock.Anything).
			Return([]models.Transaction{}, nil)

		_, err := h.svc.Confirm(context.Background(), renter, "h1")

		assert.ErrorIs(t, err, ErrConflict)
		h.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	})
}

func TestConfirm_SecondConfirmAfterPromotion(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil).Once()
	h.mates.On("GetMate", mock.Anything, "m1").Return(readyMate(), nil)
	h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").Return(succeeded("pi_1"), nil)
	h.holds.On("CountOverlappingHolds", mock.Anything, "m1", mock.Anything, "h1").Return(int64(0), nil)
	h.txns.On("CountOverlappingTransactions", mock.Anything, "m1", mock.Anything).Return(int64(0), nil)
	h.txns.On("Promote", mock.Anything, mock.Anything, "h1").Return(nil)
	h.holds.On("GetHold", mock.Anything, "h1").Return(nil, database.ErrNotFound).Once()

	_, err := h.svc.Confirm(context.Background(), renter, "h1")
	require.NoError(t, err)

	_, err = h.svc.Confirm(context.Background(), renter, "h1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePaymentIntent_UsesHoldAmount(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, ""), nil)
	h.gateway.On("CreateIntent", mock.Anything, int64(20000), "thb", map[string]string{
		"holdId":   "h1",
		"mateId":   "m1",
		"renterId": "r1",
	}).Return(&models.PaymentIntent{ID: "pi_1", ClientSecret: "secret"}, nil)
	h.holds.On("SetHoldPaymentIntent", mock.Anything, "h1", "pi_1").Return(nil)

	res, err := h.svc.CreatePaymentIntent(context.Background(), renter, "h1")

	require.NoError(t, err)
	assert.Equal(t, "secret", res.ClientSecret)
	assert.Equal(t, 200.0, res.Amount)
	assert.Equal(t, "thb", res.Currency)
}

func TestCreatePaymentIntent_ReusesExistingIntent(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(time.Minute, "pi_1"), nil)
	h.gateway.On("RetrieveIntent", mock.Anything, "pi_1").
		Return(&models.PaymentIntent{ID: "pi_1", ClientSecret: "secret"}, nil)

	res, err := h.svc.CreatePaymentIntent(context.Background(), renter, "h1")

	require.NoError(t, err)
	assert.Equal(t, "pi_1", res.PaymentIntentID)
	h.gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePaymentIntent_ExpiredHold(t *testing.T) {
	h := newHarness(t)
	h.holds.On("GetHold", mock.Anything, "h1").Return(heldBooking(20*time.Minute, ""), nil)
	h.holds.On("DeleteHold", mock.Anything, "h1").Return(true, nil)

	_, err := h.svc.CreatePaymentIntent(context.Background(), renter, "h1")
	assert.ErrorIs(t, err, ErrExpired)
}
