package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"matehub/database"
	"matehub/models"
	"matehub/services/availability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// civilLayouts are the wall-clock formats accepted for start and end times.
var civilLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04"}

// CreateHoldRequest is a renter's request to reserve a mate's time.
type CreateHoldRequest struct {
	MateID    string `json:"mateId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Place     string `json:"place"`
	Purpose   string `json:"purpose"`
	Others    string `json:"others"`
}

// HoldResult is returned after a hold is persisted.
type HoldResult struct {
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Message   string  `json:"message"`
}

// parseBookingTime accepts RFC 3339 instants or civil wall-clock times in loc.
func parseBookingTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range civilLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", value)
}

// evaluateAvailability checks interval against the mate's policy in the civil timezone.
func (s *DefaultBookingService) evaluateAvailability(mate *models.Mate, interval models.Interval) error {
	err := availability.Evaluate(availability.PolicyFor(mate),
		interval.Start.In(s.Location), interval.End.In(s.Location))
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, availability.ErrWrongDay):
		return newError(ErrInvalidRequest, "Mate is not available on this day", err)
	case errors.Is(err, availability.ErrOutsideHours):
		return newError(ErrInvalidRequest, "Booking time is outside the mate's available hours", err)
	default:
		return newError(ErrInvalidRequest, "Mate availability is not set correctly", err)
	}
}

func (s *DefaultBookingService) CreateHold(ctx context.Context, who models.Identity, req CreateHoldRequest) (*HoldResult, error) {
	if who.Role != models.RoleRenter {
		return nil, forbidden("Only renters can book")
	}

	req.MateID = strings.TrimSpace(req.MateID)
	req.Place = strings.TrimSpace(req.Place)
	req.Purpose = strings.TrimSpace(req.Purpose)
	if req.MateID == "" || req.StartTime == "" || req.EndTime == "" || req.Place == "" || req.Purpose == "" {
		return nil, invalid("Missing required fields")
	}
	if len([]rune(req.Others)) > models.MaxNoteLength {
		return nil, invalid(fmt.Sprintf("Others must be at most %d characters", models.MaxNoteLength))
	}

	start, err := parseBookingTime(req.StartTime, s.Location)
	if err != nil {
		return nil, newError(ErrInvalidRequest, "Invalid start time", err)
	}
	end, err := parseBookingTime(req.EndTime, s.Location)
	if err != nil {
		return nil, newError(ErrInvalidRequest, "Invalid end time", err)
	}
	interval := models.Interval{Start: start, End: end}
	if !interval.Valid() {
		return nil, invalid("End time must be after start time")
	}
	now := s.now()
	if !start.After(now) {
		return nil, invalid("Start time must be in the future")
	}

	mate, err := s.Mates.GetMate(ctx, req.MateID)
	if err != nil {
		return nil, s.lookupError(err, "Mate not found")
	}
	if !mate.IsBookingReady() {
		return nil, invalid("Mate profile is incomplete")
	}
	if _, err := s.Renters.GetRenter(ctx, who.ID); err != nil {
		return nil, s.lookupError(err, "Renter not found")
	}

	if err := s.evaluateAvailability(mate, interval); err != nil {
		return nil, err
	}

	overlap, err := s.hasOverlap(ctx, mate.ID, interval, "")
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, newError(ErrConflict, "This time slot is already booked", nil)
	}

	hold := &models.Hold{
		ID:        uuid.New().String(),
		MateID:    mate.ID,
		RenterID:  who.ID,
		StartTime: start,
		EndTime:   end,
		Place:     req.Place,
		Purpose:   req.Purpose,
		Others:    strings.TrimSpace(req.Others),
		Amount:    interval.PriceFor(mate.PriceRate),
		CreatedAt: now,
	}
	if err := s.Holds.CreateHold(ctx, hold); err != nil {
		return nil, fmt.Errorf("create hold: %w", err)
	}

	s.Logger.Info("Booking held",
		zap.String("holdId", hold.ID),
		zap.String("mateId", hold.MateID),
		zap.String("renterId", hold.RenterID),
		zap.Float64("amount", hold.Amount))

	return &HoldResult{
		BookingID: hold.ID,
		Amount:    hold.Amount,
		Message:   fmt.Sprintf("Booking is held for %d minutes. Please confirm.", int(s.HoldTTL.Minutes())),
	}, nil
}

// loadOwnHold fetches a hold the renter owns; other renters see NotFound.
func (s *DefaultBookingService) loadOwnHold(ctx context.Context, who models.Identity, holdID string) (*models.Hold, error) {
	if who.Role != models.RoleRenter {
		return nil, forbidden("Only renters can access bookings on hold")
	}
	if strings.TrimSpace(holdID) == "" {
		return nil, invalid("Missing bookingId")
	}
	hold, err := s.Holds.GetHold(ctx, holdID)
	if err != nil {
		return nil, s.lookupError(err, "Booking not found or expired")
	}
	if hold.RenterID != who.ID {
		return nil, notFound("Booking not found or expired")
	}
	return hold, nil
}

// lookupError classifies a repository read failure.
func (s *DefaultBookingService) lookupError(err error, message string) error {
	if errors.Is(err, database.ErrNotFound) {
		return notFound(message)
	}
	return err
}
