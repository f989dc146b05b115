package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"matehub/database"
	"matehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) CreateHold(ctx context.Context, hold *models.Hold) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	if _, err := r.holdColl.InsertOne(ctx, hold); err != nil {
		return fmt.Errorf("failed to create hold: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetHold(ctx context.Context, id string) (*models.Hold, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	var hold models.Hold
	if err := r.holdColl.FindOne(ctx, bson.M{"id": id}).Decode(&hold); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch hold %s: %w", id, err)
	}
	return &hold, nil
}

func (r *MongoBookingRepo) DeleteHold(ctx context.Context, id string) (bool, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	res, err := r.holdColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete hold %s: %w", id, err)
	}
	return res.DeletedCount == 1, nil
}

func (r *MongoBookingRepo) SetHoldPaymentIntent(ctx context.Context, id, intentID string) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	res, err := r.holdColl.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"stripePaymentIntentId": intentID}})
	if err != nil {
		return fmt.Errorf("failed to attach payment intent to hold %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// overlapFilter matches documents whose [startTime, endTime) intersects interval.
func overlapFilter(mateID string, interval models.Interval) bson.M {
	return bson.M{
		"mateId":    mateID,
		"startTime": bson.M{"$lt": interval.End},
		"endTime":   bson.M{"$gt": interval.Start},
	}
}

func (r *MongoBookingRepo) CountOverlappingHolds(ctx context.Context, mateID string, interval models.Interval, excludeID string) (int64, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	filter := overlapFilter(mateID, interval)
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.holdColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping holds: %w", err)
	}
	return n, nil
}

func (r *MongoBookingRepo) ListOverlappingHolds(ctx context.Context, mateID string, interval models.Interval) ([]models.Hold, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.holdColl.Find(ctx, overlapFilter(mateID, interval), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping holds: %w", err)
	}
	defer cursor.Close(ctx)

	holds := []models.Hold{}
	if err := cursor.All(ctx, &holds); err != nil {
		return nil, fmt.Errorf("failed to decode holds: %w", err)
	}
	return holds, nil
}
