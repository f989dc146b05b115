package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"matehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweepExpired_IsolatesEachTransaction(t *testing.T) {
	h := newHarness(t)

	refundable := *paidTxn(models.StatusPaid)
	unpaid := *paidTxn(models.StatusPaid)
	unpaid.ID, unpaid.StripePaymentIntentID = "t2", ""
	failing := *paidTxn(models.StatusPaid)
	failing.ID, failing.StripePaymentIntentID = "t3", "pi_3"

	h.txns.On("FindExpiredPaid", mock.Anything, mock.Anything, 50).
		Return([]models.Transaction{refundable, unpaid, failing}, nil)
	h.gateway.On("Refund", mock.Anything, "pi_1").Return(&models.Refund{ID: "re_1"}, nil)
	h.txns.On("UpdateStatus", mock.Anything, "t1", mock.MatchedBy(func(upd models.TransactionUpdate) bool {
		return upd.To == models.StatusRefunded && *upd.CanceledBy == models.CanceledBySystem
	})).Return(nil)
	h.gateway.On("Refund", mock.Anything, "pi_3").Return(nil, errors.New("stripe down"))

	report, err := h.svc.SweepExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SweepReport{Found: 3, Refunded: 1, Skipped: 1, Failed: 1}, report)
	require.Len(t, h.published.events, 1)
	assert.Equal(t, models.CanceledBySystem, h.published.events[0].CanceledBy)
	h.txns.AssertNotCalled(t, "UpdateStatus", mock.Anything, "t3", mock.Anything)
}

func TestSweepExpired_Empty(t *testing.T) {
	h := newHarness(t)
	h.txns.On("FindExpiredPaid", mock.Anything, mock.Anything, 50).Return([]models.Transaction{}, nil)

	report, err := h.svc.SweepExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SweepReport{}, report)
}

func TestSweepExpired_QueryFailure(t *testing.T) {
	h := newHarness(t)
	h.txns.On("FindExpiredPaid", mock.Anything, mock.Anything, 50).Return(nil, errors.New("mongo down"))

	_, err := h.svc.SweepExpired(context.Background())
	assert.Error(t, err)
}

func TestSweepExpired_UsesPassedNow(t *testing.T) {
	h := newHarness(t)
	h.txns.On("FindExpiredPaid", mock.Anything, mock.MatchedBy(func(now time.Time) bool {
		return now.Equal(fixedNow)
	}), 50).Return([]models.Transaction{}, nil)

	_, err := h.svc.SweepExpired(context.Background())
	require.NoError(t, err)
}
