package booking

import (
	"time"

	"drivewell/models"
	"drivewell/utils"

	"go.uber.org/zap"
)

// CheckAvailability decides whether a new booking request may be accepted.
// Checks run in branch, service, vehicle order so failures are deterministic,
// then the capacity and vehicle-conflict rules from the booking invariants.
//
// The decision is a read-then-act check: between this check and the webhook
// that eventually materializes the booking, other bookings may confirm. The
// platform tolerates occasional overbooking rather than holding slots for
// checkouts that may never complete.
func (s *DefaultBookingService) CheckAvailability(req models.BookingRequest) error {
	day, err := time.ParseInLocation(models.BookingDateLayout, req.Date, time.Local)
	if err != nil {
		return utils.ValidationError("Invalid booking date.")
	}

	// Day granularity: same-day bookings are accepted until midnight.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return ErrPastDate
	}

	branchExists, err := s.BranchRepo.ExistsByName(req.Branch.Name)
	if err != nil {
		return err
	}
	if !branchExists {
		return ErrBranchNotFound
	}

	serviceExists, err := s.CatalogRepo.ExistsByName(req.Service)
	if err != nil {
		return err
	}
	if !serviceExists {
		return ErrServiceNotFound
	}

	vehicleOwned, err := s.VehicleRepo.ExistsOwned(req.Vehicle.ID, req.CustomerID)
	if err != nil {
		return err
	}
	if !vehicleOwned {
		return ErrVehicleNotFound
	}

	count, err := s.Repo.CountForSlot(req.Date, req.Branch.Name, req.Service)
	if err != nil {
		return err
	}
	if count >= SlotCapacity {
		utils.GetLogger().Info("slot fully booked",
			zap.String("date", req.Date),
			zap.String("branch", req.Branch.Name),
			zap.String("service", req.Service))
		return ErrFullyBooked
	}

	booked, err := s.Repo.ExistsForVehicleOnDate(req.Date, req.Vehicle.ID)
	if err != nil {
		return err
	}
	if booked {
		return ErrVehicleAlreadyBooked
	}

	return nil
}

// UnavailableDates lists the dates to grey out for a branch/service pairing.
func (s *DefaultBookingService) UnavailableDates(branchName, serviceName string) ([]string, error) {
	return s.Repo.UnavailableDates(branchName, serviceName, UnavailableThreshold)
}
