package bookingRepo

import (
	"context"
	"fmt"

	"matehub/database"
	"matehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoBookingRepo) CreateReview(ctx context.Context, review *models.Review) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	if _, err := r.reviewColl.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) DeleteReview(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	if _, err := r.reviewColl.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return nil
}

func (r *MongoBookingRepo) AverageRating(ctx context.Context, reviewedUser string) (float64, int64, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"reviewedUser": reviewedUser}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$reviewedUser"},
			{Key: "avg", Value: bson.M{"$avg": "$rating"}},
			{Key: "count", Value: bson.M{"$sum": 1}},
		}}},
	}

	cursor, err := r.reviewColl.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, 0, fmt.Errorf("failed to decode rating aggregate: %w", err)
	}
	if len(out) == 0 {
		return 0, 0, nil
	}
	return out[0].Avg, out[0].Count, nil
}
