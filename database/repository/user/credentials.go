package userRepo

import (
	"context"
	"errors"
	"fmt"

	"matehub/database"
	"matehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoUserRepo) GetMateByEmail(ctx context.Context, email string) (*models.Mate, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	var mate models.Mate
	if err := r.mateColl.FindOne(ctx, bson.M{"email": email}).Decode(&mate); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch mate by email: %w", err)
	}
	return &mate, nil
}

func (r *MongoUserRepo) GetRenterByEmail(ctx context.Context, email string) (*models.Renter, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	var renter models.Renter
	if err := r.renterColl.FindOne(ctx, bson.M{"email": email}).Decode(&renter); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch renter by email: %w", err)
	}
	return &renter, nil
}
