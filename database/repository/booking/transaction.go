package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"matehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Promote turns a hold into a transaction. Deleting the hold comes first and
// decides which of two concurrent promotions wins. With transactions enabled
// the delete, the insert and the two profile links commit together.
func (r *MongoBookingRepo) Promote(ctx context.Context, txn *models.Transaction, holdID string) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	if !r.transactions {
		return r.promote(ctx, txn, holdID)
	}

	client := r.txnColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := r.promote(sc, txn, holdID); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if errors.Is(err, ErrHoldClaimed) {
		return err
	}
	if err != nil {
		return fmt.Errorf("promotion transaction failed: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) promote(ctx context.Context, txn *models.Transaction, holdID string) error {
	res, err := r.holdColl.DeleteOne(ctx, bson.M{"id": holdID})
	if err != nil {
		return fmt.Errorf("delete hold failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrHoldClaimed
	}

	if _, err := r.txnColl.InsertOne(ctx, txn); err != nil {
		if !r.transactions {
			// Outside a transaction the hold is already gone: the payment needs manual reconciliation.
			r.logger.Error("hold deleted but transaction insert failed",
				zap.String("holdId", holdID),
				zap.String("transactionId", txn.ID),
				zap.String("paymentIntentId", txn.StripePaymentIntentID),
				zap.Error(err))
		}
		return fmt.Errorf("insert transaction failed: %w", err)
	}

	link := bson.M{"$addToSet": bson.M{"transactionIds": txn.ID}}
	if _, err := r.mateColl.UpdateOne(ctx, bson.M{"id": txn.MateID}, link); err != nil {
		return fmt.Errorf("link transaction to mate failed: %w", err)
	}
	if _, err := r.renterColl.UpdateOne(ctx, bson.M{"id": txn.RenterID}, link); err != nil {
		return fmt.Errorf("link transaction to renter failed: %w", err)
	}
	return nil
}
