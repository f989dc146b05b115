// Package booking implements holds, payment confirmation and the transaction
// lifecycle between renters and mates.
package booking

import (
	"context"
	"time"

	"matehub/database/repository"
	"matehub/models"
	"matehub/services/events"
	"matehub/services/payment"

	"go.uber.org/zap"
)

const (
	defaultHoldTTL    = 10 * time.Minute
	defaultSweepBatch = 50
	defaultCurrency   = "thb"
)

// BookingService is the renter- and mate-facing booking surface.
type BookingService interface {
	CreateHold(ctx context.Context, who models.Identity, req CreateHoldRequest) (*HoldResult, error)
	CreatePaymentIntent(ctx context.Context, who models.Identity, holdID string) (*PaymentIntentResult, error)
	Confirm(ctx context.Context, who models.Identity, holdID string) (*models.Transaction, error)

	GetHoldSummary(ctx context.Context, who models.Identity, holdID string) (*models.HoldSummary, error)
	GetMateProfile(ctx context.Context, mateID string) (*models.MateProfile, error)
	UnavailableSlots(ctx context.Context, mateID, date string) ([]models.Interval, error)

	ListRequests(ctx context.Context, who models.Identity, page models.PageRequest) (*models.TransactionPage, error)
	ListRenterTransactions(ctx context.Context, who models.Identity, page models.PageRequest) (*models.TransactionPage, error)
	ListMateTransactions(ctx context.Context, who models.Identity, page models.PageRequest) (*models.TransactionPage, error)

	Accept(ctx context.Context, who models.Identity, txnID string) (*models.Transaction, error)
	Reject(ctx context.Context, who models.Identity, txnID string) (*models.Transaction, error)
	Cancel(ctx context.Context, who models.Identity, txnID string) (*models.Transaction, error)
	End(ctx context.Context, who models.Identity, txnID string) (*models.Transaction, error)
	Review(ctx context.Context, who models.Identity, txnID string, rating int) (*models.Review, error)
}

// Sweeper auto-cancels paid transactions whose interval already ended.
type Sweeper interface {
	SweepExpired(ctx context.Context) (SweepReport, error)
}

// ProfileCache caches public mate profiles.
type ProfileCache interface {
	Get(ctx context.Context, mateID string) (*models.MateProfile, bool)
	Set(ctx context.Context, profile *models.MateProfile)
	Invalidate(ctx context.Context, mateID string)
}

// DefaultBookingService implements BookingService and Sweeper.
type DefaultBookingService struct {
	Holds        repository.HoldRepository
	Transactions repository.TransactionRepository
	Reviews      repository.ReviewRepository
	Mates        repository.MateRepository
	Renters      repository.RenterRepository
	Payments     payment.Gateway
	Events       events.Publisher
	Profiles     ProfileCache
	Logger       *zap.Logger

	// Location is the civil timezone availability windows are written in.
	Location   *time.Location
	HoldTTL    time.Duration
	Currency   string
	SweepBatch int
	Now        func() time.Time
}

// Option customizes a DefaultBookingService.
type Option func(*DefaultBookingService)

func WithLocation(loc *time.Location) Option {
	return func(s *DefaultBookingService) { s.Location = loc }
}

func WithHoldTTL(ttl time.Duration) Option {
	return func(s *DefaultBookingService) { s.HoldTTL = ttl }
}

func WithCurrency(currency string) Option {
	return func(s *DefaultBookingService) { s.Currency = currency }
}

func WithSweepBatch(n int) Option {
	return func(s *DefaultBookingService) { s.SweepBatch = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *DefaultBookingService) { s.Now = now }
}

func WithProfileCache(c ProfileCache) Option {
	return func(s *DefaultBookingService) { s.Profiles = c }
}

// Store groups the repositories the service reads and writes.
type Store struct {
	Holds        repository.HoldRepository
	Transactions repository.TransactionRepository
	Reviews      repository.ReviewRepository
	Mates        repository.MateRepository
	Renters      repository.RenterRepository
}

// NewBookingService wires a DefaultBookingService with defaults for anything
// not set by opts.
func NewBookingService(store Store, gateway payment.Gateway, publisher events.Publisher, logger *zap.Logger, opts ...Option) *DefaultBookingService {
	s := &DefaultBookingService{
		Holds:        store.Holds,
		Transactions: store.Transactions,
		Reviews:      store.Reviews,
		Mates:        store.Mates,
		Renters:      store.Renters,
		Payments:     gateway,
		Events:       publisher,
		Profiles:     noopProfileCache{},
		Logger:       logger,
		Location:     time.UTC,
		HoldTTL:      defaultHoldTTL,
		Currency:     defaultCurrency,
		SweepBatch:   defaultSweepBatch,
		Now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Profiles == nil {
		s.Profiles = noopProfileCache{}
	}
	if s.Events == nil {
		s.Events = events.NoopPublisher{}
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	return s
}

func (s *DefaultBookingService) now() time.Time {
	return s.Now().UTC()
}

// publish emits a lifecycle event; delivery failures are logged only.
func (s *DefaultBookingService) publish(ctx context.Context, eventType string, txn *models.Transaction) {
	if err := s.Events.Publish(ctx, events.NewEvent(eventType, txn, s.now())); err != nil {
		s.Logger.Warn("failed to publish lifecycle event",
			zap.String("type", eventType),
			zap.String("transactionId", txn.ID),
			zap.Error(err))
	}
}

type noopProfileCache struct{}

func (noopProfileCache) Get(context.Context, string) (*models.MateProfile, bool) { return nil, false }
func (noopProfileCache) Set(context.Context, *models.MateProfile)                {}
func (noopProfileCache) Invalidate(context.Context, string)                      {}
