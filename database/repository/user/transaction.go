package userRepo

import (
	"context"
	"fmt"
	"time"

	"drivewell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateStaffWithBranch inserts the staff account and registers it on the
// branch's staff list in one multi-document transaction: both writes succeed
// or both roll back.
func (r *MongoUserRepo) CreateStaffWithBranch(user *models.User, branchName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, user); err != nil {
			return fmt.Errorf("insert staff failed: %w", err)
		}

		filter := bson.M{"branchName": branchName}
		update := bson.M{"$push": bson.M{"staffs": user.ID}}
		res, err := r.branchColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("register staff on branch failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("branch %s not found", branchName)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("staff creation transaction failed: %w", err)
	}

	return nil
}
