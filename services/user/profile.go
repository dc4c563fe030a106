package user

import (
	"context"
	"strings"
	"time"

	"drivewell/models"
	"drivewell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultUserService) GetProfile(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile applies the editable fields. When a new image arrives the
// replaced upload is removed from storage.
func (s *DefaultUserService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if name := strings.TrimSpace(update.FullName); name != "" {
		u.FullName = name
	}
	if update.Phone != "" {
		u.Phone = update.Phone
	}
	if update.Address != "" {
		u.Address = update.Address
	}
	if update.Image != nil {
		if old := u.Image.Filename; old != "" && s.Storage != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := s.Storage.DeleteImage(ctx, old); err != nil {
				utils.GetLogger().Warn("failed to delete replaced profile image",
					zap.String("userId", userID), zap.Error(err))
			}
			cancel()
		}
		u.Image = *update.Image
	}

	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// RegisterStaff onboards a staff or manager account tied to a branch. The
// account gets a generated temporary password by mail, and the branch's staff
// list is updated in the same transaction as the insert.
func (s *DefaultUserService) RegisterStaff(input StaffInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	role := input.Role
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleStaff && role != models.RoleManager {
		return nil, utils.ValidationError("Role must be Staff or Manager.")
	}

	exists, err := s.Branches.ExistsByName(input.Branch)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, utils.NotFoundError("Branch not found.")
	}

	temp, err := temporaryPassword()
	if err != nil {
		return nil, err
	}
	hashed, err := hashPassword(temp)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:        uuid.New().String(),
		FullName:  strings.TrimSpace(input.FullName),
		Email:     email,
		Password:  hashed,
		Role:      role,
		Phone:     input.Phone,
		Branch:    input.Branch,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Repo.CreateStaffWithBranch(u, input.Branch); err != nil {
		return nil, err
	}

	if err := s.Notifier.SendTemporaryPassword(u.Email, temp); err != nil {
		utils.GetLogger().Error("failed to send staff onboarding mail",
			zap.String("userId", u.ID), zap.Error(err))
	}
	return u, nil
}
