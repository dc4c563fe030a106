package feedback

import (
	"sync"
	"testing"

	branchRepo "drivewell/database/repository/branch"
	catalogRepo "drivewell/database/repository/catalog"
	"drivewell/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFeedbackRepo struct {
	mu    sync.Mutex
	items map[string]*models.Feedback
}

func newMemFeedbackRepo() *memFeedbackRepo {
	return &memFeedbackRepo{items: make(map[string]*models.Feedback)}
}

func (r *memFeedbackRepo) Create(f *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.items[f.ID] = &cp
	return nil
}

func (r *memFeedbackRepo) Update(f *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.items[f.ID] = &cp
	return nil
}

func (r *memFeedbackRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memFeedbackRepo) GetByID(id string) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *memFeedbackRepo) GetByUser(userID string) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Feedback
	for _, f := range r.items {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *memFeedbackRepo) GetAll() ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Feedback
	for _, f := range r.items {
		out = append(out, *f)
	}
	return out, nil
}

func (r *memFeedbackRepo) GetPublished() ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Feedback
	for _, f := range r.items {
		if f.Published {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *memFeedbackRepo) CountByUser(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, f := range r.items {
		if f.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memFeedbackRepo) TogglePublished(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if ok {
		f.Published = !f.Published
	}
	return nil
}

type stubBranchRepo struct {
	branchRepo.BranchRepository
	exists bool
}

func (r *stubBranchRepo) ExistsByName(string) (bool, error) { return r.exists, nil }

type stubCatalogRepo struct {
	catalogRepo.CatalogRepository
	exists bool
}

func (r *stubCatalogRepo) ExistsByName(string) (bool, error) { return r.exists, nil }

func newTestService(repo *memFeedbackRepo) FeedbackService {
	return NewFeedbackService(repo, &stubBranchRepo{exists: true}, &stubCatalogRepo{exists: true})
}

func validInput() FeedbackInput {
	return FeedbackInput{Rating: 5, Review: "Quick and honest work", Branch: "Westlands", Service: "Oil Change"}
}

func TestCreateEnforcesQuota(t *testing.T) {
	repo := newMemFeedbackRepo()
	svc := newTestService(repo)

	for i := 0; i < MaxPerUser; i++ {
		_, err := svc.Create("cust-1", "Jane Wanjiku", validInput())
		require.NoError(t, err)
	}

	_, err := svc.Create("cust-1", "Jane Wanjiku", validInput())
	assert.ErrorIs(t, err, ErrQuotaReached)

	// The quota is per user.
	_, err = svc.Create("cust-2", "Omar Ali", validInput())
	assert.NoError(t, err)
}

func TestCreateValidatesTargets(t *testing.T) {
	repo := newMemFeedbackRepo()

	svc := NewFeedbackService(repo, &stubBranchRepo{exists: false}, &stubCatalogRepo{exists: true})
	_, err := svc.Create("cust-1", "Jane Wanjiku", validInput())
	assert.ErrorIs(t, err, ErrBranchNotFound)

	svc = NewFeedbackService(repo, &stubBranchRepo{exists: true}, &stubCatalogRepo{exists: false})
	_, err = svc.Create("cust-1", "Jane Wanjiku", validInput())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDeleteOwnership(t *testing.T) {
	repo := newMemFeedbackRepo()
	svc := newTestService(repo)

	f, err := svc.Create("cust-1", "Jane Wanjiku", validInput())
	require.NoError(t, err)

	// Another customer cannot delete it, a manager can.
	assert.ErrorIs(t, svc.Delete(f.ID, "cust-2", models.RoleCustomer), ErrFeedbackNotFound)
	assert.NoError(t, svc.Delete(f.ID, "mgr-1", models.RoleManager))
}

func TestTogglePublished(t *testing.T) {
	repo := newMemFeedbackRepo()
	svc := newTestService(repo)

	f, err := svc.Create("cust-1", "Jane Wanjiku", validInput())
	require.NoError(t, err)

	published, _ := svc.ListPublished()
	assert.Empty(t, published)

	require.NoError(t, svc.TogglePublished(f.ID))
	published, _ = svc.ListPublished()
	assert.Len(t, published, 1)
}
