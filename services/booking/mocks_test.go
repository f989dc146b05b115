package booking

import (
	"context"
	"testing"
	"time"

	"matehub/database/repository"
	"matehub/models"
	"matehub/services/events"

	"github.com/stretchr/testify/mock"
)

type mockHoldRepo struct{ mock.Mock }

func newMockHoldRepo(t *testing.T) *mockHoldRepo {
	m := &mockHoldRepo{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockHoldRepo) CreateHold(ctx context.Context, hold *models.Hold) error {
	return m.Called(ctx, hold).Error(0)
}

func (m *mockHoldRepo) GetHold(ctx context.Context, id string) (*models.Hold, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*models.Hold)
	return h, args.Error(1)
}

func (m *mockHoldRepo) DeleteHold(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockHoldRepo) SetHoldPaymentIntent(ctx context.Context, id, intentID string) error {
	return m.Called(ctx, id, intentID).Error(0)
}

func (m *mockHoldRepo) CountOverlappingHolds(ctx context.Context, mateID string, interval models.Interval, excludeID string) (int64, error) {
	args := m.Called(ctx, mateID, interval, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockHoldRepo) ListOverlappingHolds(ctx context.Context, mateID string, interval models.Interval) ([]models.Hold, error) {
	args := m.Called(ctx, mateID, interval)
	h, _ := args.Get(0).([]models.Hold)
	return h, args.Error(1)
}

type mockTxnRepo struct{ mock.Mock }

func newMockTxnRepo(t *testing.T) *mockTxnRepo {
	m := &mockTxnRepo{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockTxnRepo) Promote(ctx context.Context, txn *models.Transaction, holdID string) error {
	return m.Called(ctx, txn, holdID).Error(0)
}

func (m *mockTxnRepo) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	txn, _ := args.Get(0).(*models.Transaction)
	return txn, args.Error(1)
}

func (m *mockTxnRepo) CountOverlappingTransactions(ctx context.Context, mateID string, interval models.Interval) (int64, error) {
	args := m.Called(ctx, mateID, interval)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTxnRepo) ListOverlappingTransactions(ctx context.Context, mateID string, interval models.Interval) ([]models.Transaction, error) {
	args := m.Called(ctx, mateID, interval)
	txns, _ := args.Get(0).([]models.Transaction)
	return txns, args.Error(1)
}

func (m *mockTxnRepo) UpdateStatus(ctx context.Context, id string, upd models.TransactionUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockTxnRepo) FindExpiredPaid(ctx context.Context, now time.Time, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, now, limit)
	txns, _ := args.Get(0).([]models.Transaction)
	return txns, args.Error(1)
}

func (m *mockTxnRepo) ListTransactions(ctx context.Context, f repository.TransactionFilter, page models.PageRequest) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, f, page)
	txns, _ := args.Get(0).([]models.Transaction)
	return txns, args.Get(1).(int64), args.Error(2)
}

type mockReviewRepo struct{ mock.Mock }

func newMockReviewRepo(t *testing.T) *mockReviewRepo {
	m := &mockReviewRepo{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockReviewRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) DeleteReview(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepo) AverageRating(ctx context.Context, reviewedUser string) (float64, int64, error) {
	args := m.Called(ctx, reviewedUser)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

type mockMateRepo struct{ mock.Mock }

func newMockMateRepo(t *testing.T) *mockMateRepo {
	m := &mockMateRepo{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockMateRepo) GetMate(ctx context.Context, id string) (*models.Mate, error) {
	args := m.Called(ctx, id)
	mate, _ := args.Get(0).(*models.Mate)
	return mate, args.Error(1)
}

func (m *mockMateRepo) GetMatesByIDs(ctx context.Context, ids []string) (map[string]*models.Mate, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[string]*models.Mate)
	return out, args.Error(1)
}

func (m *mockMateRepo) CreateMate(ctx context.Context, mate *models.Mate) error {
	return m.Called(ctx, mate).Error(0)
}

func (m *mockMateRepo) UpdateMateProfile(ctx context.Context, id string, mate *models.Mate) error {
	return m.Called(ctx, id, mate).Error(0)
}

func (m *mockMateRepo) SetReviewRate(ctx context.Context, id string, rate float64) error {
	return m.Called(ctx, id, rate).Error(0)
}

type mockRenterRepo struct{ mock.Mock }

func newMockRenterRepo(t *testing.T) *mockRenterRepo {
	m := &mockRenterRepo{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockRenterRepo) GetRenter(ctx context.Context, id string) (*models.Renter, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Renter)
	return r, args.Error(1)
}

func (m *mockRenterRepo) GetRentersByIDs(ctx context.Context, ids []string) (map[string]*models.Renter, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[string]*models.Renter)
	return out, args.Error(1)
}

func (m *mockRenterRepo) CreateRenter(ctx context.Context, renter *models.Renter) error {
	return m.Called(ctx, renter).Error(0)
}

type mockGateway struct{ mock.Mock }

func newMockGateway(t *testing.T) *mockGateway {
	m := &mockGateway{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*models.PaymentIntent, error) {
	args := m.Called(ctx, amountMinor, currency, metadata)
	pi, _ := args.Get(0).(*models.PaymentIntent)
	return pi, args.Error(1)
}

func (m *mockGateway) RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	args := m.Called(ctx, id)
	pi, _ := args.Get(0).(*models.PaymentIntent)
	return pi, args.Error(1)
}

func (m *mockGateway) Refund(ctx context.Context, intentID string) (*models.Refund, error) {
	args := m.Called(ctx, intentID)
	r, _ := args.Get(0).(*models.Refund)
	return r, args.Error(1)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
