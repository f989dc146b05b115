package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const opTimeout = 5 * time.Second

// MongoBookingRepo implements HoldRepository, TransactionRepository and
// ReviewRepository on one database so promotion can span collections.
type MongoBookingRepo struct {
	holdColl     *mongo.Collection
	txnColl      *mongo.Collection
	reviewColl   *mongo.Collection
	mateColl     *mongo.Collection
	renterColl   *mongo.Collection
	transactions bool
	logger       *zap.Logger
}

// Options configures the booking repository.
type Options struct {
	HoldTTL time.Duration
	// UseTransactions runs promotion in a multi-document transaction (replica set required).
	UseTransactions bool
}

// NewMongoBookingRepo creates the booking repository on db and ensures its indexes.
func NewMongoBookingRepo(db *mongo.Database, opts Options, logger *zap.Logger) *MongoBookingRepo {
	repo := &MongoBookingRepo{
		holdColl:     db.Collection("holdings"),
		txnColl:      db.Collection("transactions"),
		reviewColl:   db.Collection("reviews"),
		mateColl:     db.Collection("mates"),
		renterColl:   db.Collection("renters"),
		transactions: opts.UseTransactions,
		logger:       logger,
	}
	if opts.HoldTTL <= 0 {
		opts.HoldTTL = 10 * time.Minute
	}
	if err := repo.ensureIndexes(opts.HoldTTL); err != nil {
		logger.Warn("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func newContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}
