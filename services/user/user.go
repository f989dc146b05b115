// Package user signs mates and renters in with a single email/password login.
package user

import (
	"context"
	"time"

	"matehub/database/repository"
	"matehub/models"

	"go.uber.org/zap"
)

const defaultTokenTTL = 24 * time.Hour

// AuthResponse is returned after a successful sign-in.
type AuthResponse struct {
	ID    string      `json:"id"`
	Role  models.Role `json:"role"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Token string      `json:"token"`
}

// UserService authenticates either kind of profile.
type UserService interface {
	AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo     repository.CredentialRepository
	Logger   *zap.Logger
	TokenTTL time.Duration
}

func NewUserService(repo repository.CredentialRepository, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Logger: logger, TokenTTL: defaultTokenTTL}
}
