// File: database/repository/booking/events.go
package bookingRepo

import (
	"fmt"
	"time"

	"drivewell/database"
	"drivewell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentEventRepo implements PaymentEventRepository using MongoDB. The
// unique index on eventId makes the insert the deduplication step itself.
type MongoPaymentEventRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentEventRepo creates a new PaymentEventRepository using MongoDB.
func NewMongoPaymentEventRepo() PaymentEventRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("payment_events")
	repo := &MongoPaymentEventRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create payment event index: %v\n", err)
	}
	return repo
}

// Claim upserts the event as pending. The filter excludes applied records, so
// an already-applied event misses the filter, collides with the unique index
// on insert and is reported as false. A pending record left by a settlement
// that failed before MarkApplied matches the filter and is claimed again.
func (r *MongoPaymentEventRepo) Claim(event models.ProcessedEvent) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"eventId": event.EventID,
		"status":  bson.M{"$ne": models.EventStatusApplied},
	}
	update := bson.M{"$set": bson.M{
		"eventType":   event.EventType,
		"intentKind":  event.IntentKind,
		"status":      models.EventStatusPending,
		"received_at": time.Now(),
	}}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to claim payment event %s: %w", event.EventID, err)
	}
	return true, nil
}

// MarkApplied flips the claimed event to applied.
func (r *MongoPaymentEventRepo) MarkApplied(eventID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":    models.EventStatusApplied,
		"appliedAt": time.Now(),
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"eventId": eventID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark payment event %s applied: %w", eventID, err)
	}
	return nil
}
