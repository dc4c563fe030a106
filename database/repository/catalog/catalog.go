package catalogRepo

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

// CatalogRepository defines persistence operations for the service catalog.
type CatalogRepository interface {
	Create(offering *models.ServiceOffering) error
	Update(offering *models.ServiceOffering) error
	Delete(id string) (*models.ServiceOffering, error)
	GetByID(id string) (*models.ServiceOffering, error)
	GetByName(name string) (*models.ServiceOffering, error)
	GetAll() ([]models.ServiceOffering, error)
	ExistsByName(name string) (bool, error)
	CountAll() (int64, error)
}

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("services")
	repo := &MongoCatalogRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create catalog index: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new service offering.
func (r *MongoCatalogRepo) Create(offering *models.ServiceOffering) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	offering.CreatedAt = now
	offering.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, offering)
	if err != nil {
		return fmt.Errorf("failed to create service offering: %w", err)
	}
	return nil
}

// Update modifies an existing service offering.
func (r *MongoCatalogRepo) Update(offering *models.ServiceOffering) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	offering.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": offering.ID}, bson.M{"$set": offering})
	if err != nil {
		return fmt.Errorf("failed to update service offering with id %s: %w", offering.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service offering with id %s not found", offering.ID)
	}
	return nil
}

// Delete removes a service offering and returns the removed record so callers
// can release its stored image.
func (r *MongoCatalogRepo) Delete(id string) (*models.ServiceOffering, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var offering models.ServiceOffering
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&offering); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete service offering with id %s: %w", id, err)
	}
	return &offering, nil
}

func (r *MongoCatalogRepo) findOne(filter bson.M) (*models.ServiceOffering, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var offering models.ServiceOffering
	if err := r.coll.FindOne(ctx, filter).Decode(&offering); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service offering: %w", err)
	}
	return &offering, nil
}

// GetByID retrieves a service offering by its unique ID.
func (r *MongoCatalogRepo) GetByID(id string) (*models.ServiceOffering, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByName retrieves a service offering by name, case-insensitively.
func (r *MongoCatalogRepo) GetByName(name string) (*models.ServiceOffering, error) {
	return r.findOne(bson.M{"serviceName": bson.M{
		"$regex":   fmt.Sprintf("^%s$", name),
		"$options": "i",
	}})
}

// GetAll returns every catalog entry.
func (r *MongoCatalogRepo) GetAll() ([]models.ServiceOffering, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query service offerings: %w", err)
	}
	defer cursor.Close(ctx)

	var offerings []models.ServiceOffering
	if err := cursor.All(ctx, &offerings); err != nil {
		return nil, fmt.Errorf("failed to decode service offerings: %w", err)
	}
	return offerings, nil
}

// ExistsByName reports whether a catalog entry with the given name exists.
func (r *MongoCatalogRepo) ExistsByName(name string) (bool, error) {
	offering, err := r.GetByName(name)
	if err != nil {
		return false, err
	}
	return offering != nil, nil
}

// CountAll returns the number of catalog entries.
func (r *MongoCatalogRepo) CountAll() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count service offerings: %w", err)
	}
	return count, nil
}
