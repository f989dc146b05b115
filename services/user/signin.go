package user

import (
	"context"
	"errors"
	"strings"

	"matehub/database"
	"matehub/models"
	"matehub/services/booking"
	"matehub/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = booking.NewError(booking.ErrUnauthorized, "Invalid email or password", nil)

// credential is the part of a profile sign-in needs.
type credential struct {
	id, name, email, hash string
	role                  models.Role
}

// AuthenticateUser looks the email up among mates first, then renters, and
// issues a token carrying the matching role.
func (s *DefaultUserService) AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, booking.NewError(booking.ErrInvalidRequest, "Email and password are required", nil)
	}

	cred, err := s.lookup(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		s.Logger.Error("AuthenticateUser: failed to fetch profile", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.hash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	token, err := utils.GenerateToken(cred.id, string(cred.role), ttl)
	if err != nil {
		s.Logger.Error("AuthenticateUser: failed to generate token", zap.Error(err))
		return nil, err
	}

	return &AuthResponse{
		ID:    cred.id,
		Role:  cred.role,
		Name:  cred.name,
		Email: cred.email,
		Token: token,
	}, nil
}

func (s *DefaultUserService) lookup(ctx context.Context, email string) (*credential, error) {
	m, err := s.Repo.GetMateByEmail(ctx, email)
	if err == nil {
		return &credential{id: m.ID, name: m.Name, email: m.Email, hash: m.PasswordHash, role: models.RoleMate}, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	r, err := s.Repo.GetRenterByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &credential{id: r.ID, name: r.Name, email: r.Email, hash: r.PasswordHash, role: models.RoleRenter}, nil
}
