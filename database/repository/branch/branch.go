package branchRepo

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

// BranchRepository defines persistence operations for garage branches.
type BranchRepository interface {
	Create(branch *models.Branch) error
	Update(branch *models.Branch) error
	Delete(id string) (*models.Branch, error)
	GetByID(id string) (*models.Branch, error)
	GetByName(name string) (*models.Branch, error)
	GetAll() ([]models.Branch, error)
	ExistsByName(name string) (bool, error)
	CountAll() (int64, error)
}

// MongoBranchRepo implements BranchRepository using MongoDB.
type MongoBranchRepo struct {
	coll *mongo.Collection
}

// NewMongoBranchRepo creates a new instance of BranchRepository using MongoDB.
func NewMongoBranchRepo() BranchRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("branches")
	repo := &MongoBranchRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create branch index: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new branch document.
func (r *MongoBranchRepo) Create(branch *models.Branch) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	branch.CreatedAt = now
	branch.UpdatedAt = now
	if branch.StaffIDs == nil {
		branch.StaffIDs = []string{}
	}

	_, err := r.coll.InsertOne(ctx, branch)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

// Update modifies an existing branch document.
func (r *MongoBranchRepo) Update(branch *models.Branch) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	branch.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": branch.ID}, bson.M{"$set": branch})
	if err != nil {
		return fmt.Errorf("failed to update branch with id %s: %w", branch.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("branch with id %s not found", branch.ID)
	}
	return nil
}

// Delete removes a branch document and returns the removed record so callers
// can release its stored image.
func (r *MongoBranchRepo) Delete(id string) (*models.Branch, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var branch models.Branch
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&branch); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete branch with id %s: %w", id, err)
	}
	return &branch, nil
}

func (r *MongoBranchRepo) findOne(filter bson.M) (*models.Branch, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var branch models.Branch
	if err := r.coll.FindOne(ctx, filter).Decode(&branch); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch branch: %w", err)
	}
	return &branch, nil
}

// GetByID retrieves a branch by its unique ID.
func (r *MongoBranchRepo) GetByID(id string) (*models.Branch, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByName retrieves a branch by name, case-insensitively.
func (r *MongoBranchRepo) GetByName(name string) (*models.Branch, error) {
	return r.findOne(bson.M{"branchName": bson.M{
		"$regex":   fmt.Sprintf("^%s$", name),
		"$options": "i",
	}})
}

// GetAll returns every branch.
func (r *MongoBranchRepo) GetAll() ([]models.Branch, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer cursor.Close(ctx)

	var branches []models.Branch
	if err := cursor.All(ctx, &branches); err != nil {
		return nil, fmt.Errorf("failed to decode branches: %w", err)
	}
	return branches, nil
}

// ExistsByName reports whether a branch with the given name exists.
func (r *MongoBranchRepo) ExistsByName(name string) (bool, error) {
	branch, err := r.GetByName(name)
	if err != nil {
		return false, err
	}
	return branch != nil, nil
}

// CountAll returns the number of branches.
func (r *MongoBranchRepo) CountAll() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count branches: %w", err)
	}
	return count, nil
}
