package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matehub/database"
	"matehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	var txn models.Transaction
	if err := r.txnColl.FindOne(ctx, bson.M{"id": id}).Decode(&txn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", id, err)
	}
	return &txn, nil
}

func activeOverlapFilter(mateID string, interval models.Interval) bson.M {
	filter := overlapFilter(mateID, interval)
	filter["status"] = bson.M{"$ne": models.StatusRefunded}
	return filter
}

func (r *MongoBookingRepo) CountOverlappingTransactions(ctx context.Context, mateID string, interval models.Interval) (int64, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	n, err := r.txnColl.CountDocuments(ctx, activeOverlapFilter(mateID, interval))
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping transactions: %w", err)
	}
	return n, nil
}

func (r *MongoBookingRepo) ListOverlappingTransactions(ctx context.Context, mateID string, interval models.Interval) ([]models.Transaction, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.txnColl.Find(ctx, activeOverlapFilter(mateID, interval), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping transactions: %w", err)
	}
	defer cursor.Close(ctx)

	txns := []models.Transaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txns, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, upd models.TransactionUpdate) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	set := bson.M{"status": upd.To, "updatedAt": upd.UpdatedAt}
	if upd.CanceledBy != nil {
		set["canceledBy"] = *upd.CanceledBy
	}
	if upd.PaidToMate != nil {
		set["paidToMate"] = *upd.PaidToMate
	}
	if upd.ReviewID != nil {
		set["reviewId"] = *upd.ReviewID
	}

	res, err := r.txnColl.UpdateOne(ctx, bson.M{"id": id, "status": upd.From}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *MongoBookingRepo) FindExpiredPaid(ctx context.Context, now time.Time, limit int) ([]models.Transaction, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	filter := bson.M{"status": models.StatusPaid, "endTime": bson.M{"$lt": now}}
	opts := options.Find().
		SetSort(bson.D{{Key: "endTime", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.txnColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find expired transactions: %w", err)
	}
	defer cursor.Close(ctx)

	txns := []models.Transaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("failed to decode expired transactions: %w", err)
	}
	return txns, nil
}

func (r *MongoBookingRepo) ListTransactions(ctx context.Context, f TransactionFilter, page models.PageRequest) ([]models.Transaction, int64, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	filter := bson.M{}
	if f.MateID != "" {
		filter["mateId"] = f.MateID
	}
	if f.RenterID != "" {
		filter["renterId"] = f.RenterID
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	if f.StartAfter != nil {
		filter["startTime"] = bson.M{"$gt": *f.StartAfter}
	}

	total, err := r.txnColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	page = page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(page.PageSize)

	cursor, err := r.txnColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	txns := []models.Transaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, 0, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txns, total, nil
}
