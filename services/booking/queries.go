package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"matehub/database/repository"
	"matehub/models"
)

// GetHoldSummary returns the renter's held booking with the mate's name.
func (s *DefaultBookingService) GetHoldSummary(ctx context.Context, who models.Identity, holdID string) (*models.HoldSummary, error) {
	hold, err := s.loadOwnHold(ctx, who, holdID)
	if err != nil {
		return nil, err
	}
	mate, err := s.Mates.GetMate(ctx, hold.MateID)
	if err != nil {
		return nil, s.lookupError(err, "Mate not found")
	}
	return &models.HoldSummary{
		MateName:    mate.Name,
		MateSurName: mate.SurName,
		StartTime:   hold.StartTime,
		EndTime:     hold.EndTime,
		Place:       hold.Place,
		Purpose:     hold.Purpose,
		Others:      hold.Others,
		Amount:      hold.Amount,
	}, nil
}

// GetMateProfile returns the public profile of a booking-ready mate.
func (s *DefaultBookingService) GetMateProfile(ctx context.Context, mateID string) (*models.MateProfile, error) {
	if strings.TrimSpace(mateID) == "" {
		return nil, invalid("Missing mateId")
	}
	if p, ok := s.Profiles.Get(ctx, mateID); ok {
		return p, nil
	}

	mate, err := s.Mates.GetMate(ctx, mateID)
	if err != nil {
		return nil, s.lookupError(err, "Mate not found")
	}
	if !mate.IsBookingReady() {
		return nil, invalid("Mate profile is incomplete")
	}
	profile := mate.PublicProfile()
	s.Profiles.Set(ctx, &profile)
	return &profile, nil
}

// UnavailableSlots lists the held or booked intervals of a mate on a civil date (YYYY-MM-DD).
func (s *DefaultBookingService) UnavailableSlots(ctx context.Context, mateID, date string) ([]models.Interval, error) {
	if strings.TrimSpace(mateID) == "" || strings.TrimSpace(date) == "" {
		return nil, invalid("Missing mateId or date")
	}
	day, err := time.ParseInLocation("2006-01-02", date, s.Location)
	if err != nil {
		return nil, newError(ErrInvalidRequest, "Invalid date", err)
	}
	window := models.Interval{Start: day.UTC(), End: day.AddDate(0, 0, 1).UTC()}

	holds, err := s.Holds.ListOverlappingHolds(ctx, mateID, window)
	if err != nil {
		return nil, fmt.Errorf("list holds: %w", err)
	}
	txns, err := s.Transactions.ListOverlappingTransactions(ctx, mateID, window)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	slots := make([]models.Interval, 0, len(holds)+len(txns))
	for i := range holds {
		if iv := holds[i].Interval(); iv.Overlaps(window) {
			slots = append(slots, iv)
		}
	}
	for i := range txns {
		if iv := txns[i].Interval(); iv.Overlaps(window) {
			slots = append(slots, iv)
		}
	}
	return slots, nil
}

// ListRequests lists the mate's paid bookings that have not started yet.
func (s *DefaultBookingService) ListRequests(ctx context.Context, who models.Identity, page models.PageRequest) (*models.TransactionPage, error) {
	if who.Role != models.RoleMate {
		return nil, forbidden("Unauthorized")
	}
	now := s.now()
	page = page.Normalize()
	txns, total, err := s.Transactions.ListTransactions(ctx, repository.TransactionFilter{
		MateID:     who.ID,
		Statuses:   []models.TransactionStatus{models.StatusPaid},
		StartAfter: &now,
	}, page)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	renters, err := s.Renters.GetRentersByIDs(ctx, renterIDs(txns))
	if err != nil {
		return nil, fmt.Errorf("load renters: %w", err)
	}

	views := make([]models.TransactionView, 0, len(txns))
	for i := range txns {
		v := baseView(&txns[i])
		v.Renter = renterSummary(renters[txns[i].RenterID])
		views = append(views, v)
	}
	return &models.TransactionPage{Data: views, Pagination: models.NewPagination(total, page.Page, page.PageSize)}, nil
}

// ListRenterTransactions lists the renter's bookings with the actions open to them.
func (s *DefaultBookingService) ListRenterTransactions(ctx context.Context, who models.Identity, page models.PageRequest) (*models.TransactionPage, error) {
	if who.Role != models.RoleRenter {
		return nil, forbidden("Unauthorized")
	}
	page = page.Normalize()
	txns, total, err := s.Transactions.ListTransactions(ctx, repository.TransactionFilter{RenterID: who.ID}, page)
	if err != nil {
		return nil, fmt.Errorf("list renter transactions: %w", err)
	}

	ids := make([]string, 0, len(txns))
	for i := range txns {
		ids = append(ids, txns[i].MateID)
	}
	mates, err := s.Mates.GetMatesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load mates: %w", err)
	}

	views := make([]models.TransactionView, 0, len(txns))
	for i := range txns {
		txn := &txns[i]
		v := baseView(txn)
		v.Mate = mateSummary(mates[txn.MateID])
		canCancel := txn.Status == models.StatusPaid
		canReview := txn.Status == models.StatusEnd
		v.CanCancel = &canCancel
		v.CanReview = &canReview
		views = append(views, v)
	}
	return &models.TransactionPage{Data: views, Pagination: models.NewPagination(total, page.Page, page.PageSize)}, nil
}

// ListMateTransactions lists the mate's bookings; finished confirmed ones can be ended.
func (s *DefaultBookingService) ListMateTransactions(ctx context.Context, who models.Identity, page models.PageRequest) (*models.TransactionPage, error) {
	if who.Role != models.RoleMate {
		return nil, forbidden("Unauthorized")
	}
	now := s.now()
	page = page.Normalize()
	txns, total, err := s.Transactions.ListTransactions(ctx, repository.TransactionFilter{MateID: who.ID}, page)
	if err != nil {
		return nil, fmt.Errorf("list mate transactions: %w", err)
	}

	renters, err := s.Renters.GetRentersByIDs(ctx, renterIDs(txns))
	if err != nil {
		return nil, fmt.Errorf("load renters: %w", err)
	}

	views := make([]models.TransactionView, 0, len(txns))
	for i := range txns {
		txn := &txns[i]
		v := baseView(txn)
		v.Renter = renterSummary(renters[txn.RenterID])
		canEnd := txn.Status == models.StatusConfirmed && txn.EndTime.Before(now)
		v.CanEnd = &canEnd
		views = append(views, v)
	}
	return &models.TransactionPage{Data: views, Pagination: models.NewPagination(total, page.Page, page.PageSize)}, nil
}

func baseView(txn *models.Transaction) models.TransactionView {
	return models.TransactionView{
		ID:         txn.ID,
		Amount:     txn.Amount,
		StartTime:  txn.StartTime,
		EndTime:    txn.EndTime,
		Place:      txn.Place,
		Purpose:    txn.Purpose,
		Others:     txn.Others,
		Status:     txn.Status,
		CanceledBy: txn.CanceledBy,
	}
}

func renterIDs(txns []models.Transaction) []string {
	ids := make([]string, 0, len(txns))
	for i := range txns {
		ids = append(ids, txns[i].RenterID)
	}
	return ids
}

func renterSummary(r *models.Renter) *models.PartySummary {
	if r == nil {
		return nil
	}
	return &models.PartySummary{ID: r.ID, Name: r.Name, SurName: r.SurName, Nickname: r.Nickname}
}

func mateSummary(m *models.Mate) *models.PartySummary {
	if m == nil {
		return nil
	}
	return &models.PartySummary{ID: m.ID, Name: m.Name, SurName: m.SurName, Nickname: m.Nickname, City: m.City}
}
