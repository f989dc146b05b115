// Package mate lets mates read and edit their own profile.
package mate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"matehub/database"
	"matehub/database/repository"
	"matehub/models"
	"matehub/services/availability"
	"matehub/services/booking"

	"go.uber.org/zap"
)

// ProfileInvalidator drops cached public profiles after an edit.
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, mateID string)
}

// MateService is the mate's own-profile surface.
type MateService interface {
	GetOwnProfile(ctx context.Context, who models.Identity) (*models.Mate, error)
	UpdateOwnProfile(ctx context.Context, who models.Identity, req models.MateProfileUpdate) (*models.Mate, error)
}

// DefaultMateService implements MateService.
type DefaultMateService struct {
	Repo   repository.MateRepository
	Cache  ProfileInvalidator
	Logger *zap.Logger
}

// NewMateService builds a DefaultMateService; cache may be nil.
func NewMateService(repo repository.MateRepository, cache ProfileInvalidator, logger *zap.Logger) *DefaultMateService {
	return &DefaultMateService{Repo: repo, Cache: cache, Logger: logger}
}

func (s *DefaultMateService) GetOwnProfile(ctx context.Context, who models.Identity) (*models.Mate, error) {
	if who.Role != models.RoleMate {
		return nil, booking.NewError(booking.ErrForbidden, "Unauthorized", nil)
	}
	mate, err := s.Repo.GetMate(ctx, who.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, booking.NewError(booking.ErrNotFound, "Mate not found", nil)
		}
		return nil, err
	}
	return mate, nil
}

func (s *DefaultMateService) UpdateOwnProfile(ctx context.Context, who models.Identity, req models.MateProfileUpdate) (*models.Mate, error) {
	mate, err := s.GetOwnProfile(ctx, who)
	if err != nil {
		return nil, err
	}
	if err := validateUpdate(req); err != nil {
		return nil, booking.NewError(booking.ErrInvalidRequest, err.Error(), nil)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		mate.Name = name
	}
	if surName := strings.TrimSpace(req.SurName); surName != "" {
		mate.SurName = surName
	}
	mate.Nickname = strings.TrimSpace(req.Nickname)
	mate.Introduce = strings.TrimSpace(req.Introduce)
	mate.Skill = splitList(req.Skill)
	mate.Interest = splitList(req.Interest)
	mate.City = strings.TrimSpace(req.City)
	mate.AvailableDays = req.AvailableDays
	mate.AvailableTime = []string{strings.TrimSpace(req.AvailableTime[0]), strings.TrimSpace(req.AvailableTime[1])}
	mate.PriceRate = float64(req.PriceRate)

	if err := s.Repo.UpdateMateProfile(ctx, mate.ID, mate); err != nil {
		return nil, fmt.Errorf("update mate profile: %w", err)
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, mate.ID)
	}

	s.Logger.Info("Mate profile updated", zap.String("mateId", mate.ID))
	return mate, nil
}

// validateUpdate enforces the profile rules renters rely on when booking.
func validateUpdate(req models.MateProfileUpdate) error {
	switch {
	case strings.TrimSpace(req.Introduce) == "":
		return errors.New("Introduce is required")
	case len(splitList(req.Skill)) == 0:
		return errors.New("At least one skill is required")
	case len(splitList(req.Interest)) == 0:
		return errors.New("At least one interest is required")
	case strings.TrimSpace(req.City) == "":
		return errors.New("City is required")
	case !req.AvailableDays.IsValid():
		return errors.New("Available days must be all, weekdays or weekends")
	case req.PriceRate <= 0:
		return errors.New("Price rate must be a positive integer")
	}

	if len(req.AvailableTime) != 2 {
		return errors.New("Available time must have a start and an end")
	}
	if _, _, declared, err := availability.ParseWindow(req.AvailableTime); err != nil || !declared {
		return errors.New("Available time must be two HH:MM values with start before end")
	}
	return nil
}

// splitList turns a comma-separated field into trimmed, non-empty items.
func splitList(value string) []string {
	items := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}
