package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matehub/database"
	"matehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const opTimeout = 5 * time.Second

// MongoUserRepo implements MateRepository and RenterRepository using MongoDB.
type MongoUserRepo struct {
	mateColl   *mongo.Collection
	renterColl *mongo.Collection
}

// NewMongoUserRepo creates the mates/renters repository on db.
func NewMongoUserRepo(db *mongo.Database, logger *zap.Logger) *MongoUserRepo {
	repo := &MongoUserRepo{
		mateColl:   db.Collection("mates"),
		renterColl: db.Collection("renters"),
	}
	for _, coll := range []*mongo.Collection{repo.mateColl, repo.renterColl} {
		if err := ensureIndexes(coll); err != nil {
			logger.Warn("failed to create indexes", zap.Error(err))
		}
	}
	return repo
}

// newContext derives a per-call timeout from the caller's context.
func newContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

func (r *MongoUserRepo) GetMate(ctx context.Context, id string) (*models.Mate, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	var mate models.Mate
	if err := r.mateColl.FindOne(ctx, bson.M{"id": id}).Decode(&mate); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch mate with id %s: %w", id, err)
	}
	return &mate, nil
}

func (r *MongoUserRepo) GetMatesByIDs(ctx context.Context, ids []string) (map[string]*models.Mate, error) {
	out := make(map[string]*models.Mate, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ctx, cancel := newContext(ctx)
	defer cancel()

	cursor, err := r.mateColl.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve mates: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var m models.Mate
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode mate: %w", err)
		}
		out[m.ID] = &m
	}
	return out, cursor.Err()
}

func (r *MongoUserRepo) CreateMate(ctx context.Context, mate *models.Mate) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	mate.CreatedAt = now
	mate.UpdatedAt = now
	if mate.TransactionIDs == nil {
		mate.TransactionIDs = []string{}
	}
	if _, err := r.mateColl.InsertOne(ctx, mate); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create mate: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) UpdateMateProfile(ctx context.Context, id string, mate *models.Mate) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":          mate.Name,
		"surName":       mate.SurName,
		"nickname":      mate.Nickname,
		"introduce":     mate.Introduce,
		"skill":         mate.Skill,
		"interest":      mate.Interest,
		"city":          mate.City,
		"availableDays": mate.AvailableDays,
		"availableTime": mate.AvailableTime,
		"priceRate":     mate.PriceRate,
		"updatedAt":     time.Now().UTC(),
	}}
	result, err := r.mateColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update mate with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) SetReviewRate(ctx context.Context, id string, rate float64) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	result, err := r.mateColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"reviewRate": rate}})
	if err != nil {
		return fmt.Errorf("failed to set review rate for mate %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) GetRenter(ctx context.Context, id string) (*models.Renter, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	var renter models.Renter
	if err := r.renterColl.FindOne(ctx, bson.M{"id": id}).Decode(&renter); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch renter with id %s: %w", id, err)
	}
	return &renter, nil
}

func (r *MongoUserRepo) GetRentersByIDs(ctx context.Context, ids []string) (map[string]*models.Renter, error) {
	out := make(map[string]*models.Renter, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ctx, cancel := newContext(ctx)
	defer cancel()

	cursor, err := r.renterColl.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve renters: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var rn models.Renter
		if err := cursor.Decode(&rn); err != nil {
			return nil, fmt.Errorf("failed to decode renter: %w", err)
		}
		out[rn.ID] = &rn
	}
	return out, cursor.Err()
}

func (r *MongoUserRepo) CreateRenter(ctx context.Context, renter *models.Renter) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	renter.CreatedAt = now
	renter.UpdatedAt = now
	if renter.TransactionIDs == nil {
		renter.TransactionIDs = []string{}
	}
	if _, err := r.renterColl.InsertOne(ctx, renter); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create renter: %w", err)
	}
	return nil
}
