package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the hold TTL index, the review uniqueness index and
// the lookup indexes used by overlap checks and listings.
func (r *MongoBookingRepo) ensureIndexes(holdTTL time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	holdIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(holdTTL.Seconds())),
		},
		{Keys: bson.D{{Key: "mateId", Value: 1}, {Key: "startTime", Value: 1}}},
	}
	if _, err := r.holdColl.Indexes().CreateMany(ctx, holdIdx); err != nil {
		return fmt.Errorf("failed to create hold indexes: %w", err)
	}

	txnIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mateId", Value: 1}, {Key: "startTime", Value: 1}}},
		{Keys: bson.D{{Key: "renterId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "endTime", Value: 1}}},
	}
	if _, err := r.txnColl.Indexes().CreateMany(ctx, txnIdx); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	reviewIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking", Value: 1}, {Key: "reviewer", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "reviewedUser", Value: 1}}},
	}
	if _, err := r.reviewColl.Indexes().CreateMany(ctx, reviewIdx); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}
