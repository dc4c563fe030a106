// Package catalog manages the garage network: branches and the service
// offerings customers can book at them.
package catalog

import (
	"context"
	"strings"
	"time"

	branchRepo "drivewell/database/repository/branch"
	catalogRepo "drivewell/database/repository/catalog"
	"drivewell/models"
	"drivewell/services/storage"
	"drivewell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrBranchNotFound   = utils.NotFoundError("Branch not found.")
	ErrBranchNameTaken  = utils.ConflictError("A branch with this name already exists.")
	ErrServiceNotFound  = utils.NotFoundError("Service not found.")
	ErrServiceNameTaken = utils.ConflictError("A service with this name already exists.")
)

// BranchInput is the payload for creating or updating a branch.
type BranchInput struct {
	BranchName string  `json:"branchName" binding:"required"`
	Location   string  `json:"location" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
	Image      *models.Image
}

// OfferingInput is the payload for creating or updating a service offering.
type OfferingInput struct {
	ServiceName string  `json:"serviceName" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       *models.Image
}

// CatalogService exposes branch and offering management.
type CatalogService interface {
	CreateBranch(input BranchInput) (*models.Branch, error)
	UpdateBranch(id string, input BranchInput) (*models.Branch, error)
	DeleteBranch(id string) error
	GetBranch(id string) (*models.Branch, error)
	ListBranches() ([]models.Branch, error)

	CreateOffering(input OfferingInput) (*models.ServiceOffering, error)
	UpdateOffering(id string, input OfferingInput) (*models.ServiceOffering, error)
	DeleteOffering(id string) error
	GetOffering(id string) (*models.ServiceOffering, error)
	ListOfferings() ([]models.ServiceOffering, error)
}

type DefaultCatalogService struct {
	Branches  branchRepo.BranchRepository
	Offerings catalogRepo.CatalogRepository
	Storage   storage.StorageService
}

func NewCatalogService(branches branchRepo.BranchRepository, offerings catalogRepo.CatalogRepository, store storage.StorageService) CatalogService {
	return &DefaultCatalogService{Branches: branches, Offerings: offerings, Storage: store}
}

// deleteImage removes a stored image, logging rather than failing the caller.
func (s *DefaultCatalogService) deleteImage(publicID, kind, id string) {
	if publicID == "" || s.Storage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Storage.DeleteImage(ctx, publicID); err != nil {
		utils.GetLogger().Warn("failed to delete stored image",
			zap.String(kind, id), zap.Error(err))
	}
}

func (s *DefaultCatalogService) CreateBranch(input BranchInput) (*models.Branch, error) {
	name := strings.TrimSpace(input.BranchName)
	taken, err := s.Branches.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrBranchNameTaken
	}

	b := &models.Branch{
		ID:         uuid.New().String(),
		BranchName: name,
		Location:   input.Location,
		Phone:      input.Phone,
		Longitude:  input.Longitude,
		Latitude:   input.Latitude,
		StaffIDs:   []string{},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if input.Image != nil {
		b.Image = *input.Image
	}
	if err := s.Branches.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *DefaultCatalogService) UpdateBranch(id string, input BranchInput) (*models.Branch, error) {
	b, err := s.Branches.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBranchNotFound
	}

	name := strings.TrimSpace(input.BranchName)
	if !strings.EqualFold(name, b.BranchName) {
		taken, err := s.Branches.ExistsByName(name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrBranchNameTaken
		}
	}

	b.BranchName = name
	b.Location = input.Location
	b.Phone = input.Phone
	b.Longitude = input.Longitude
	b.Latitude = input.Latitude
	if input.Image != nil {
		s.deleteImage(b.Image.Filename, "branchId", id)
		b.Image = *input.Image
	}
	b.UpdatedAt = time.Now()

	if err := s.Branches.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *DefaultCatalogService) DeleteBranch(id string) error {
	b, err := s.Branches.Delete(id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBranchNotFound
	}
	s.deleteImage(b.Image.Filename, "branchId", id)
	return nil
}

func (s *DefaultCatalogService) GetBranch(id string) (*models.Branch, error) {
	b, err := s.Branches.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBranchNotFound
	}
	return b, nil
}

func (s *DefaultCatalogService) ListBranches() ([]models.Branch, error) {
	return s.Branches.GetAll()
}

func (s *DefaultCatalogService) CreateOffering(input OfferingInput) (*models.ServiceOffering, error) {
	name := strings.TrimSpace(input.ServiceName)
	taken, err := s.Offerings.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrServiceNameTaken
	}

	o := &models.ServiceOffering{
		ID:          uuid.New().String(),
		ServiceName: name,
		Description: input.Description,
		Price:       input.Price,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if input.Image != nil {
		o.Image = *input.Image
	}
	if err := s.Offerings.Create(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *DefaultCatalogService) UpdateOffering(id string, input OfferingInput) (*models.ServiceOffering, error) {
	o, err := s.Offerings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrServiceNotFound
	}

	name := strings.TrimSpace(input.ServiceName)
	if !strings.EqualFold(name, o.ServiceName) {
		taken, err := s.Offerings.ExistsByName(name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrServiceNameTaken
		}
	}

	o.ServiceName = name
	o.Description = input.Description
	o.Price = input.Price
	if input.Image != nil {
		s.deleteImage(o.Image.Filename, "serviceId", id)
		o.Image = *input.Image
	}
	o.UpdatedAt = time.Now()

	if err := s.Offerings.Update(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *DefaultCatalogService) DeleteOffering(id string) error {
	o, err := s.Offerings.Delete(id)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrServiceNotFound
	}
	s.deleteImage(o.Image.Filename, "serviceId", id)
	return nil
}

func (s *DefaultCatalogService) GetOffering(id string) (*models.ServiceOffering, error) {
	o, err := s.Offerings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrServiceNotFound
	}
	return o, nil
}

func (s *DefaultCatalogService) ListOfferings() ([]models.ServiceOffering, error) {
	return s.Offerings.GetAll()
}
