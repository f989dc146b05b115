// Command seed inserts mock mates and renters into the configured database
// and prints a development token for each of them.
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"matehub/config"
	"matehub/database"
	"matehub/database/repository"
	"matehub/models"
	"matehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	mockPassword = "password123"
	tokenTTL     = 7 * 24 * time.Hour
)

type mockMate struct {
	name, surName, nickname, city string
	skills, interests             []string
	days                          models.AvailableDays
	window                        []string
	rate                          float64
}

var mockMates = []mockMate{
	{"Ploy", "Srisuk", "ploy", "Bangkok", []string{"photography", "cooking"}, []string{"cafes", "art"}, models.AvailableAll, []string{"09:00", "17:00"}, 300},
	{"Nat", "Chaiyo", "nat", "Chiang Mai", []string{"hiking"}, []string{"nature", "coffee"}, models.AvailableWeekends, []string{"08:00", "18:00"}, 250},
	{"Mew", "Kittisak", "mew", "Bangkok", []string{"gaming", "karaoke"}, []string{"music"}, models.AvailableWeekdays, []string{"18:00", "23:00"}, 400},
}

var mockRenters = []struct{ name, surName string }{
	{"Alex", "Turner"},
	{"Bee", "Wong"},
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func buildMates(now time.Time, hash string) []*models.Mate {
	out := make([]*models.Mate, 0, len(mockMates))
	for _, m := range mockMates {
		out = append(out, &models.Mate{
			ID:            uuid.New().String(),
			Name:          m.name,
			SurName:       m.surName,
			Nickname:      m.nickname,
			Email:         strings.ToLower(m.nickname) + "@mate.example",
			PasswordHash:  hash,
			Role:          string(models.RoleMate),
			PriceRate:     m.rate,
			Interest:      m.interests,
			Skill:         m.skills,
			Introduce:     fmt.Sprintf("Hi, I'm %s from %s.", m.name, m.city),
			City:          m.city,
			AvailableDays: m.days,
			AvailableTime: m.window,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return out
}

func buildRenters(now time.Time, hash string) []*models.Renter {
	out := make([]*models.Renter, 0, len(mockRenters))
	for _, r := range mockRenters {
		out = append(out, &models.Renter{
			ID:           uuid.New().String(),
			Name:         r.name,
			SurName:      r.surName,
			Email:        strings.ToLower(r.name) + "@renter.example",
			PasswordHash: hash,
			Role:         string(models.RoleRenter),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return out
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	database.InitDB()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Disconnect(ctx)
	}()

	hash, err := hashPassword(mockPassword)
	if err != nil {
		logger.Fatal("seed: hashing failed", zap.Error(err))
	}

	repo := repository.NewMongoUserRepo(database.DB(), logger)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, m := range buildMates(now, hash) {
		if err := repo.CreateMate(ctx, m); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				logger.Info("seed: mate already exists", zap.String("email", m.Email))
				continue
			}
			logger.Fatal("seed: insert mate", zap.String("email", m.Email), zap.Error(err))
		}
		printToken(logger, m.Email, m.ID, utils.RoleMate)
	}

	for _, r := range buildRenters(now, hash) {
		if err := repo.CreateRenter(ctx, r); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				logger.Info("seed: renter already exists", zap.String("email", r.Email))
				continue
			}
			logger.Fatal("seed: insert renter", zap.String("email", r.Email), zap.Error(err))
		}
		printToken(logger, r.Email, r.ID, utils.RoleRenter)
	}
}

func printToken(logger *zap.Logger, email, id, role string) {
	token, err := utils.GenerateToken(id, role, tokenTTL)
	if err != nil {
		logger.Error("seed: token generation failed", zap.String("email", email), zap.Error(err))
		return
	}
	fmt.Printf("%-8s %-24s %s\n", role, email, token)
}
