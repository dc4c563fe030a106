package user

import (
	branchRepo "drivewell/database/repository/branch"
	userRepo "drivewell/database/repository/user"
	"drivewell/models"
	"drivewell/services/notification"
	"drivewell/services/storage"
)

// RegisterInput is the payload for customer self-registration.
type RegisterInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
}

// StaffInput is the payload managers use to onboard branch staff. The account
// receives a generated temporary password by mail.
type StaffInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Branch   string `json:"branch" binding:"required"`
	Role     string `json:"role"`
}

// ProfileUpdate carries the editable profile fields. Nil image means keep the
// current one.
type ProfileUpdate struct {
	FullName string
	Phone    string
	Address  string
	Image    *models.Image
}

// AuthResult bundles the signed-in account with its token pair.
type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// UserService manages accounts and credentials.
type UserService interface {
	Register(input RegisterInput) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	Refresh(refreshToken string) (*AuthResult, error)
	Logout(refreshToken string) error
	ForgotPassword(email string) error
	ChangePassword(userID, currentPassword, newPassword string) error

	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, update ProfileUpdate) (*models.User, error)

	RegisterStaff(input StaffInput) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Branches branchRepo.BranchRepository
	Storage  storage.StorageService
	Notifier notification.NotificationService
}

func NewUserService(repo userRepo.UserRepository, branches branchRepo.BranchRepository, store storage.StorageService, notifier notification.NotificationService) UserService {
	return &DefaultUserService{Repo: repo, Branches: branches, Storage: store, Notifier: notifier}
}
