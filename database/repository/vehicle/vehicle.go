package vehicleRepo

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

// VehicleRepository defines persistence operations for customer vehicles.
type VehicleRepository interface {
	Create(vehicle *models.Vehicle) error
	Update(vehicle *models.Vehicle) error
	Delete(id string) (*models.Vehicle, error)
	GetByID(id string) (*models.Vehicle, error)
	GetByOwner(ownerID string) ([]models.Vehicle, error)
	ExistsByPlate(plate string) (bool, error)
	ExistsOwned(id, ownerID string) (bool, error)
	CountAll() (int64, error)
}

// MongoVehicleRepo implements VehicleRepository using MongoDB.
type MongoVehicleRepo struct {
	coll *mongo.Collection
}

// NewMongoVehicleRepo creates a new instance of VehicleRepository using MongoDB.
func NewMongoVehicleRepo() VehicleRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("vehicles")
	repo := &MongoVehicleRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "plate", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		fmt.Printf("failed to create vehicle indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new vehicle document.
func (r *MongoVehicleRepo) Create(vehicle *models.Vehicle) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, vehicle)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// Update modifies an existing vehicle document, scoped to its owner.
func (r *MongoVehicleRepo) Update(vehicle *models.Vehicle) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	vehicle.UpdatedAt = time.Now()
	filter := bson.M{"id": vehicle.ID, "owner_id": vehicle.OwnerID}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": vehicle})
	if err != nil {
		return fmt.Errorf("failed to update vehicle with id %s: %w", vehicle.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle with id %s not found", vehicle.ID)
	}
	return nil
}

// Delete removes a vehicle document and returns the removed record.
func (r *MongoVehicleRepo) Delete(id string) (*models.Vehicle, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var vehicle models.Vehicle
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&vehicle); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete vehicle with id %s: %w", id, err)
	}
	return &vehicle, nil
}

// GetByID retrieves a vehicle by its unique ID.
func (r *MongoVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var vehicle models.Vehicle
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&vehicle); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch vehicle with id %s: %w", id, err)
	}
	return &vehicle, nil
}

// GetByOwner returns all vehicles owned by the given customer.
func (r *MongoVehicleRepo) GetByOwner(ownerID string) ([]models.Vehicle, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, nil
}

// ExistsByPlate reports whether a vehicle with the given plate is registered.
func (r *MongoVehicleRepo) ExistsByPlate(plate string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"plate": plate})
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle plate: %w", err)
	}
	return count > 0, nil
}

// ExistsOwned reports whether the vehicle exists and belongs to the owner.
func (r *MongoVehicleRepo) ExistsOwned(id, ownerID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"id": id, "owner_id": ownerID})
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle ownership: %w", err)
	}
	return count > 0, nil
}

// CountAll returns the number of registered vehicles.
func (r *MongoVehicleRepo) CountAll() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return count, nil
}
