// Package feedback manages customer reviews and their publication state.
package feedback

import (
	"strings"
	"time"

	branchRepo "drivewell/database/repository/branch"
	catalogRepo "drivewell/database/repository/catalog"
	feedbackRepo "drivewell/database/repository/feedback"
	"drivewell/models"
	"drivewell/utils"

	"github.com/google/uuid"
)

// MaxPerUser caps how many reviews one customer may keep on record.
const MaxPerUser = 4

var (
	ErrFeedbackNotFound = utils.NotFoundError("Feedback not found.")
	ErrQuotaReached     = utils.ConflictError("You already have the maximum number of reviews; delete one first.")
	ErrBranchNotFound   = utils.NotFoundError("Branch not found.")
	ErrServiceNotFound  = utils.NotFoundError("Service not found.")
)

// FeedbackInput is the payload for leaving or editing a review.
type FeedbackInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Review  string `json:"review" binding:"required"`
	Branch  string `json:"branch" binding:"required"`
	Service string `json:"service" binding:"required"`
}

type FeedbackService interface {
	Create(userID, userName string, input FeedbackInput) (*models.Feedback, error)
	Update(id, userID string, input FeedbackInput) (*models.Feedback, error)
	Delete(id, actorID, actorRole string) error
	ListByUser(userID string) ([]models.Feedback, error)
	ListAll() ([]models.Feedback, error)
	ListPublished() ([]models.Feedback, error)
	TogglePublished(id string) error
}

type DefaultFeedbackService struct {
	Repo      feedbackRepo.FeedbackRepository
	Branches  branchRepo.BranchRepository
	Offerings catalogRepo.CatalogRepository
}

func NewFeedbackService(repo feedbackRepo.FeedbackRepository, branches branchRepo.BranchRepository, offerings catalogRepo.CatalogRepository) FeedbackService {
	return &DefaultFeedbackService{Repo: repo, Branches: branches, Offerings: offerings}
}

func (s *DefaultFeedbackService) validateTarget(branch, service string) error {
	exists, err := s.Branches.ExistsByName(branch)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBranchNotFound
	}
	exists, err = s.Offerings.ExistsByName(service)
	if err != nil {
		return err
	}
	if !exists {
		return ErrServiceNotFound
	}
	return nil
}

func (s *DefaultFeedbackService) Create(userID, userName string, input FeedbackInput) (*models.Feedback, error) {
	if err := s.validateTarget(input.Branch, input.Service); err != nil {
		return nil, err
	}

	count, err := s.Repo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	if count >= MaxPerUser {
		return nil, ErrQuotaReached
	}

	f := &models.Feedback{
		ID:        uuid.New().String(),
		Rating:    input.Rating,
		Review:    strings.TrimSpace(input.Review),
		Branch:    input.Branch,
		Service:   input.Service,
		UserID:    userID,
		UserName:  userName,
		Date:      time.Now().Format("2006-01-02"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Repo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *DefaultFeedbackService) Update(id, userID string, input FeedbackInput) (*models.Feedback, error) {
	f, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil || f.UserID != userID {
		return nil, ErrFeedbackNotFound
	}
	if err := s.validateTarget(input.Branch, input.Service); err != nil {
		return nil, err
	}

	f.Rating = input.Rating
	f.Review = strings.TrimSpace(input.Review)
	f.Branch = input.Branch
	f.Service = input.Service
	f.UpdatedAt = time.Now()

	if err := s.Repo.Update(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a review. Customers may only delete their own; managers may
// delete any.
func (s *DefaultFeedbackService) Delete(id, actorID, actorRole string) error {
	f, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if f == nil {
		return ErrFeedbackNotFound
	}
	if actorRole == models.RoleCustomer && f.UserID != actorID {
		return ErrFeedbackNotFound
	}
	return s.Repo.Delete(id)
}

func (s *DefaultFeedbackService) ListByUser(userID string) ([]models.Feedback, error) {
	return s.Repo.GetByUser(userID)
}

func (s *DefaultFeedbackService) ListAll() ([]models.Feedback, error) {
	return s.Repo.GetAll()
}

func (s *DefaultFeedbackService) ListPublished() ([]models.Feedback, error) {
	return s.Repo.GetPublished()
}

func (s *DefaultFeedbackService) TogglePublished(id string) error {
	f, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if f == nil {
		return ErrFeedbackNotFound
	}
	return s.Repo.TogglePublished(id)
}
