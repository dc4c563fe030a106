package user

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"drivewell/models"
	"drivewell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = utils.UnauthorizedError("Invalid email or password.")
	ErrInvalidRefresh     = utils.UnauthorizedError("Invalid or expired session.")
	ErrEmailTaken         = utils.ConflictError("An account with this email already exists.")
	ErrUserNotFound       = utils.NotFoundError("User not found.")
)

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// issueTokens signs a token pair for the user and persists the hashed refresh
// token so a stolen database copy cannot be replayed as a cookie.
func (s *DefaultUserService) issueTokens(u *models.User) (*AuthResult, error) {
	access, err := utils.GenerateAccessToken(utils.TokenPayload{
		UserID:   u.ID,
		UserName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Branch:   u.Branch,
	})
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(u.Email)
	if err != nil {
		return nil, err
	}

	u.RefreshToken = utils.HashToken(refresh)
	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	return &AuthResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *DefaultUserService) Register(input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:        uuid.New().String(),
		FullName:  strings.TrimSpace(input.FullName),
		Email:     email,
		Password:  hashed,
		Role:      models.RoleCustomer,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	if err := s.Notifier.SendWelcome(u.Email, u.FullName); err != nil {
		utils.GetLogger().Warn("failed to send welcome mail",
			zap.String("userId", u.ID), zap.Error(err))
	}

	return s.issueTokens(u)
}

func (s *DefaultUserService) Login(email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(u)
}

// Refresh validates the refresh token against the persisted hash and rotates
// the pair.
func (s *DefaultUserService) Refresh(refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefresh
	}
	if _, err := utils.ValidateRefreshToken(refreshToken); err != nil {
		return nil, ErrInvalidRefresh
	}

	u, err := s.Repo.GetByRefreshTokenHash(utils.HashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidRefresh
	}
	return s.issueTokens(u)
}

// Logout drops the stored refresh token. An unknown token is not an error;
// the session is gone either way.
func (s *DefaultUserService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	u, err := s.Repo.GetByRefreshTokenHash(utils.HashToken(refreshToken))
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	u.RefreshToken = ""
	u.UpdatedAt = time.Now()
	return s.Repo.Update(u)
}

// ForgotPassword replaces the password with a generated temporary one and
// mails it. The response never reveals whether the email exists.
func (s *DefaultUserService) ForgotPassword(email string) error {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if u == nil {
		utils.GetLogger().Info("password reset requested for unknown email")
		return nil
	}

	temp, err := temporaryPassword()
	if err != nil {
		return err
	}
	hashed, err := hashPassword(temp)
	if err != nil {
		return err
	}

	u.Password = hashed
	u.RefreshToken = ""
	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(u); err != nil {
		return err
	}

	if err := s.Notifier.SendTemporaryPassword(u.Email, temp); err != nil {
		utils.GetLogger().Error("failed to send temporary password mail",
			zap.String("userId", u.ID), zap.Error(err))
	}
	return nil
}

func (s *DefaultUserService) ChangePassword(userID, currentPassword, newPassword string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return utils.UnauthorizedError("Current password is incorrect.")
	}
	if len(newPassword) < 8 {
		return utils.ValidationError("New password must be at least 8 characters.")
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.UpdatedAt = time.Now()
	return s.Repo.Update(u)
}

// temporaryPassword returns a random 12-hex-character password.
func temporaryPassword() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
