package userRepo

import (
	"drivewell/models"
)

// UserRepository defines persistence operations for customer and staff
// accounts.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByRefreshTokenHash(hash string) (*models.User, error)
	CountByRole(roles ...string) (int64, error)

	// CreateStaffWithBranch inserts the staff account and pushes its id onto
	// the branch's staff list atomically.
	CreateStaffWithBranch(user *models.User, branchName string) error
}
