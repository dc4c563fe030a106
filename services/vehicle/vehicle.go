// Package vehicle manages the vehicles customers register for servicing.
package vehicle

import (
	"regexp"
	"strings"
	"time"

	vehicleRepo "drivewell/database/repository/vehicle"
	"drivewell/models"
	"drivewell/utils"

	"github.com/google/uuid"
)

var (
	ErrVehicleNotFound = utils.NotFoundError("Vehicle not found.")
	ErrPlateTaken      = utils.ConflictError("A vehicle with this plate is already registered.")

	// Plates look like "KDA 123A": two to three letters, a space, up to four
	// digits and an optional trailing letter.
	plateRe = regexp.MustCompile(`^[A-Z]{2,3} \d{1,4}[A-Z]?$`)
)

// VehicleInput is the payload for registering or editing a vehicle.
type VehicleInput struct {
	Name  string `json:"name" binding:"required"`
	Year  int    `json:"year" binding:"required"`
	Plate string `json:"plate" binding:"required"`
}

type VehicleService interface {
	Register(ownerID string, input VehicleInput) (*models.Vehicle, error)
	Update(id, ownerID string, input VehicleInput) (*models.Vehicle, error)
	Delete(id, ownerID string) error
	ListByOwner(ownerID string) ([]models.Vehicle, error)
}

type DefaultVehicleService struct {
	Repo vehicleRepo.VehicleRepository
}

func NewVehicleService(repo vehicleRepo.VehicleRepository) VehicleService {
	return &DefaultVehicleService{Repo: repo}
}

func normalizePlate(plate string) (string, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if !plateRe.MatchString(plate) {
		return "", utils.ValidationError("Plate must look like 'KDA 123A'.")
	}
	return plate, nil
}

func validYear(year int) error {
	if year < 1950 || year > time.Now().Year()+1 {
		return utils.ValidationError("Vehicle year is out of range.")
	}
	return nil
}

func (s *DefaultVehicleService) Register(ownerID string, input VehicleInput) (*models.Vehicle, error) {
	plate, err := normalizePlate(input.Plate)
	if err != nil {
		return nil, err
	}
	if err := validYear(input.Year); err != nil {
		return nil, err
	}

	taken, err := s.Repo.ExistsByPlate(plate)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPlateTaken
	}

	v := &models.Vehicle{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		OwnerID:   ownerID,
		Year:      input.Year,
		Plate:     plate,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Repo.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *DefaultVehicleService) Update(id, ownerID string, input VehicleInput) (*models.Vehicle, error) {
	v, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil || v.OwnerID != ownerID {
		return nil, ErrVehicleNotFound
	}

	plate, err := normalizePlate(input.Plate)
	if err != nil {
		return nil, err
	}
	if err := validYear(input.Year); err != nil {
		return nil, err
	}

	if plate != v.Plate {
		taken, err := s.Repo.ExistsByPlate(plate)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPlateTaken
		}
	}

	v.Name = strings.TrimSpace(input.Name)
	v.Year = input.Year
	v.Plate = plate
	v.UpdatedAt = time.Now()

	if err := s.Repo.Update(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *DefaultVehicleService) Delete(id, ownerID string) error {
	owned, err := s.Repo.ExistsOwned(id, ownerID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrVehicleNotFound
	}
	if _, err := s.Repo.Delete(id); err != nil {
		return err
	}
	return nil
}

func (s *DefaultVehicleService) ListByOwner(ownerID string) ([]models.Vehicle, error) {
	return s.Repo.GetByOwner(ownerID)
}
