package userRepo

import (
	"context"

	"matehub/models"
)

// MateRepository defines data access for mate profiles.
type MateRepository interface {
	// GetMate retrieves a mate by id; database.ErrNotFound when absent.
	GetMate(ctx context.Context, id string) (*models.Mate, error)
	// GetMatesByIDs retrieves the mates with the given ids, keyed by id.
	GetMatesByIDs(ctx context.Context, ids []string) (map[string]*models.Mate, error)
	// CreateMate inserts a new mate.
	CreateMate(ctx context.Context, mate *models.Mate) error
	// UpdateMateProfile overwrites the editable profile fields of a mate.
	UpdateMateProfile(ctx context.Context, id string, mate *models.Mate) error
	// SetReviewRate stores the recomputed mean rating.
	SetReviewRate(ctx context.Context, id string, rate float64) error
}

// RenterRepository defines data access for renter profiles.
type RenterRepository interface {
	GetRenter(ctx context.Context, id string) (*models.Renter, error)
	GetRentersByIDs(ctx context.Context, ids []string) (map[string]*models.Renter, error)
	CreateRenter(ctx context.Context, renter *models.Renter) error
}

// CredentialRepository resolves a login email against both profile kinds.
type CredentialRepository interface {
	GetMateByEmail(ctx context.Context, email string) (*models.Mate, error)
	GetRenterByEmail(ctx context.Context, email string) (*models.Renter, error)
}
