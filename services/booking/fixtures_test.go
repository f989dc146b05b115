package booking

import (
	"context"
	"testing"
	"time"

	"matehub/models"

	"go.uber.org/zap/zaptest"
)

var ict = time.FixedZone("ICT", 7*3600)

// Monday 2025-03-10 08:00 ICT.
var fixedNow = time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC)

type harness struct {
	holds     *mockHoldRepo
	txns      *mockTxnRepo
	reviews   *mockReviewRepo
	mates     *mockMateRepo
	renters   *mockRenterRepo
	gateway   *mockGateway
	published *recordingPublisher
	cache     *fakeProfileCache
	svc       *DefaultBookingService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		holds:     newMockHoldRepo(t),
		txns:      newMockTxnRepo(t),
		reviews:   newMockReviewRepo(t),
		mates:     newMockMateRepo(t),
		renters:   newMockRenterRepo(t),
		gateway:   newMockGateway(t),
		published: &recordingPublisher{},
		cache:     newFakeProfileCache(),
	}
	h.svc = NewBookingService(Store{
		Holds:        h.holds,
		Transactions: h.txns,
		Reviews:      h.reviews,
		Mates:        h.mates,
		Renters:      h.renters,
	}, h.gateway, h.published, zaptest.NewLogger(t),
		WithLocation(ict),
		WithClock(func() time.Time { return fixedNow }),
		WithProfileCache(h.cache),
	)
	return h
}

var (
	renter      = models.Identity{ID: "r1", Role: models.RoleRenter}
	otherRenter = models.Identity{ID: "r2", Role: models.RoleRenter}
	mateID      = models.Identity{ID: "m1", Role: models.RoleMate}
	otherMate   = models.Identity{ID: "m2", Role: models.RoleMate}
)

func readyMate() *models.Mate {
	return &models.Mate{
		ID:            "m1",
		Name:          "Somchai",
		SurName:       "Jaidee",
		PriceRate:     100,
		Interest:      []string{"music"},
		Skill:         []string{"guitar"},
		Introduce:     "hello",
		City:          "Bangkok",
		AvailableDays: models.AvailableWeekdays,
		AvailableTime: []string{"09:00", "17:00"},
	}
}

// Wednesday 2025-03-12 10:00-12:00 ICT.
var (
	bookedStart = time.Date(2025, time.March, 12, 3, 0, 0, 0, time.UTC)
	bookedEnd   = time.Date(2025, time.March, 12, 5, 0, 0, 0, time.UTC)
)

func heldBooking(age time.Duration, intentID string) *models.Hold {
	return &models.Hold{
		ID:                    "h1",
		MateID:                "m1",
		RenterID:              "r1",
		StartTime:             bookedStart,
		EndTime:               bookedEnd,
		Place:                 "Siam",
		Purpose:               "concert",
		Amount:                200,
		StripePaymentIntentID: intentID,
		CreatedAt:             fixedNow.Add(-age),
	}
}

func paidTxn(status models.TransactionStatus) *models.Transaction {
	return &models.Transaction{
		ID:                    "t1",
		MateID:                "m1",
		RenterID:              "r1",
		StartTime:             bookedStart,
		EndTime:               bookedEnd,
		Amount:                200,
		StripePaymentIntentID: "pi_1",
		Status:                status,
	}
}

func sameInterval(start, end time.Time) func(models.Interval) bool {
	return func(iv models.Interval) bool {
		return iv.Start.Equal(start) && iv.End.Equal(end)
	}
}

type fakeProfileCache struct {
	entries     map[string]*models.MateProfile
	invalidated []string
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{entries: map[string]*models.MateProfile{}}
}

func (c *fakeProfileCache) Get(_ context.Context, id string) (*models.MateProfile, bool) {
	p, ok := c.entries[id]
	return p, ok
}

func (c *fakeProfileCache) Set(_ context.Context, p *models.MateProfile) {
	c.entries[p.ID] = p
}

func (c *fakeProfileCache) Invalidate(_ context.Context, id string) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}
