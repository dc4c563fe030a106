package user

import (
	"errors"
	"sync"
	"testing"

	"drivewell/config"
	"drivewell/models"
	"drivewell/services/notification"
	"drivewell/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestSecrets() {
	config.AppConfig.AccessTokenSecret = "access-secret-for-tests"
	config.AppConfig.RefreshTokenSecret = "refresh-secret-for-tests"
}

// memUserRepo is an in-memory UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Update(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return errors.New("not found")
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByRefreshTokenHash(hash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.RefreshToken != "" && u.RefreshToken == hash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) CountByRole(roles ...string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *memUserRepo) CreateStaffWithBranch(u *models.User, branchName string) error {
	return r.Create(u)
}

// stubNotifier embeds the interface; only the mails the auth flows send are
// implemented.
type stubNotifier struct {
	notification.NotificationService
	welcomeErr error
	welcomes   int
	tempMails  int
}

func (n *stubNotifier) SendWelcome(string, string) error {
	n.welcomes++
	return n.welcomeErr
}

func (n *stubNotifier) SendTemporaryPassword(string, string) error {
	n.tempMails++
	return nil
}

func registerInput() RegisterInput {
	return RegisterInput{
		FullName: "Jane Wanjiku",
		Email:    "jane@example.com",
		Password: "correct horse",
		Phone:    "+254700000000",
	}
}

func TestRegisterIssuesTokensAndWelcomeMail(t *testing.T) {
	setTestSecrets()
	repo := newMemUserRepo()
	notifier := &stubNotifier{}
	svc := &DefaultUserService{Repo: repo, Notifier: notifier}

	res, err := svc.Register(registerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, models.RoleCustomer, res.User.Role)
	assert.Equal(t, 1, notifier.welcomes)

	stored, _ := repo.GetByEmail("jane@example.com")
	require.NotNil(t, stored)
	assert.Equal(t, utils.HashToken(res.RefreshToken), stored.RefreshToken)
}

func TestRegisterSurvivesWelcomeMailFailure(t *testing.T) {
	setTestSecrets()
	repo := newMemUserRepo()
	notifier := &stubNotifier{welcomeErr: errors.New("smtp unavailable")}
	svc := &DefaultUserService{Repo: repo, Notifier: notifier}

	res, err := svc.Register(registerInput())
	require.NoError(t, err, "a failed welcome mail must not fail registration")
	assert.NotEmpty(t, res.AccessToken)

	stored, _ := repo.GetByEmail("jane@example.com")
	assert.NotNil(t, stored, "the account must persist even when the mail does not send")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setTestSecrets()
	repo := newMemUserRepo()
	svc := &DefaultUserService{Repo: repo, Notifier: &stubNotifier{}}

	_, err := svc.Register(registerInput())
	require.NoError(t, err)

	input := registerInput()
	input.Email = "JANE@example.com"
	_, err = svc.Register(input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	setTestSecrets()
	repo := newMemUserRepo()
	svc := &DefaultUserService{Repo: repo, Notifier: &stubNotifier{}}

	_, err := svc.Register(registerInput())
	require.NoError(t, err)

	_, err = svc.Login("jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := svc.Login("jane@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", res.User.Email)
}

func TestRefreshAfterLogoutRejected(t *testing.T) {
	setTestSecrets()
	repo := newMemUserRepo()
	svc := &DefaultUserService{Repo: repo, Notifier: &stubNotifier{}}

	res, err := svc.Register(registerInput())
	require.NoError(t, err)

	renewed, err := svc.Refresh(res.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	require.NoError(t, svc.Logout(renewed.RefreshToken))
	_, err = svc.Refresh(renewed.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}
