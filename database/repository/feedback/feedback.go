package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"drivewell/database"
	"drivewell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedbackRepository defines persistence operations for customer feedback.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	Update(feedback *models.Feedback) error
	Delete(id string) error
	GetByID(id string) (*models.Feedback, error)
	GetByUser(userID string) ([]models.Feedback, error)
	GetAll() ([]models.Feedback, error)
	GetPublished() ([]models.Feedback, error)
	CountByUser(userID string) (int64, error)
	TogglePublished(id string) error
}

// MongoFeedbackRepo implements FeedbackRepository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo creates a new instance of FeedbackRepository using MongoDB.
func NewMongoFeedbackRepo() FeedbackRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("feedback")
	repo := &MongoFeedbackRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		fmt.Printf("failed to create feedback indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new feedback document.
func (r *MongoFeedbackRepo) Create(feedback *models.Feedback) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, feedback)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// Update modifies an existing feedback document.
func (r *MongoFeedbackRepo) Update(feedback *models.Feedback) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	feedback.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": feedback.ID}, bson.M{"$set": feedback})
	if err != nil {
		return fmt.Errorf("failed to update feedback with id %s: %w", feedback.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("feedback with id %s not found", feedback.ID)
	}
	return nil
}

// Delete removes a feedback document by its ID.
func (r *MongoFeedbackRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete feedback with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("feedback with id %s not found", id)
	}
	return nil
}

// GetByID retrieves feedback by its unique ID.
func (r *MongoFeedbackRepo) GetByID(id string) (*models.Feedback, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var feedback models.Feedback
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&feedback); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch feedback with id %s: %w", id, err)
	}
	return &feedback, nil
}

func (r *MongoFeedbackRepo) findAll(filter bson.M) ([]models.Feedback, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}
	return feedbacks, nil
}

// GetByUser returns all feedback written by the given user.
func (r *MongoFeedbackRepo) GetByUser(userID string) ([]models.Feedback, error) {
	return r.findAll(bson.M{"user": userID})
}

// GetAll returns every feedback record.
func (r *MongoFeedbackRepo) GetAll() ([]models.Feedback, error) {
	return r.findAll(bson.M{})
}

// GetPublished returns feedback visible to unauthenticated visitors.
func (r *MongoFeedbackRepo) GetPublished() ([]models.Feedback, error) {
	return r.findAll(bson.M{"published": true})
}

// CountByUser counts feedback written by the given user.
func (r *MongoFeedbackRepo) CountByUser(userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return count, nil
}

// TogglePublished flips the published flag with a pipeline update.
func (r *MongoFeedbackRepo) TogglePublished(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "published", Value: bson.D{{Key: "$not", Value: "$published"}}},
		}}},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, pipeline)
	if err != nil {
		return fmt.Errorf("failed to toggle feedback %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("feedback with id %s not found", id)
	}
	return nil
}
