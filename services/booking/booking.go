package booking

import (
	"strings"
	"time"

	bookingRepo "drivewell/database/repository/booking"
	branchRepo "drivewell/database/repository/branch"
	catalogRepo "drivewell/database/repository/catalog"
	userRepo "drivewell/database/repository/user"
	vehicleRepo "drivewell/database/repository/vehicle"
	"drivewell/models"
	"drivewell/services/notification"
	"drivewell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewBookingService wires the default implementation.
func NewBookingService(
	repo bookingRepo.BookingRepository,
	events bookingRepo.PaymentEventRepository,
	branches branchRepo.BranchRepository,
	catalog catalogRepo.CatalogRepository,
	vehicles vehicleRepo.VehicleRepository,
	users userRepo.UserRepository,
	intents IntentStore,
	checkout CheckoutClient,
	notifier notification.NotificationService,
) BookingService {
	return &DefaultBookingService{
		Repo:        repo,
		Events:      events,
		BranchRepo:  branches,
		CatalogRepo: catalog,
		VehicleRepo: vehicles,
		UserRepo:    users,
		Intents:     intents,
		Checkout:    checkout,
		Notifier:    notifier,
	}
}

func (s *DefaultBookingService) ListForCustomer(customerID string) ([]models.Booking, error) {
	return s.Repo.GetByCustomer(customerID)
}

func (s *DefaultBookingService) ListForBranch(branchName string) ([]models.Booking, error) {
	return s.Repo.GetByBranchName(branchName)
}

func (s *DefaultBookingService) GetByID(bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// SetStatus advances a booking through the workflow. Moving to Completed
// requires a bill on record and triggers the settlement mail.
func (s *DefaultBookingService) SetStatus(bookingID, status string) error {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	if err := checkTransition(b, status); err != nil {
		return err
	}
	if err := s.Repo.SetStatus(bookingID, status); err != nil {
		return err
	}

	if status == models.BookingStatusCompleted {
		if customer, err := s.UserRepo.GetByID(b.Customer); err == nil && customer != nil {
			s.Notifier.SendServiceCompleted(customer.Email, b, b.BillTotal()-AdvanceBookingFee)
		} else if err != nil {
			utils.GetLogger().Warn("failed to look up customer for completion mail",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultBookingService) AddNote(bookingID, staffName, text string) (*models.BookingNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.ValidationError("Note text is required.")
	}

	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	note := models.BookingNote{
		ID:        uuid.New().String(),
		StaffName: staffName,
		Note:      text,
		Date:      time.Now().Format(models.BookingDateLayout),
	}
	if err := s.Repo.AppendNote(bookingID, note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *DefaultBookingService) RemoveNote(bookingID, noteID string) error {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	return s.Repo.RemoveNote(bookingID, noteID)
}

// SetBill replaces the itemized bill. A settled bill is immutable.
func (s *DefaultBookingService) SetBill(bookingID string, items []models.BillItem) error {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	if b.BillPayment {
		return ErrBillAlreadySettled
	}

	for i := range items {
		if strings.TrimSpace(items[i].Repair) == "" {
			return utils.ValidationError("Every bill line needs a repair description.")
		}
		if items[i].Cost < 0 {
			return utils.ValidationError("Bill line costs cannot be negative.")
		}
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
	}
	return s.Repo.SetBill(bookingID, items)
}

// RecordCashPayment settles the bill in person at the branch.
func (s *DefaultBookingService) RecordCashPayment(bookingID string) error {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	if len(b.Bill) == 0 {
		return ErrNoBill
	}

	settled, err := s.Repo.MarkBillPaid(bookingID, models.PaymentMethodCash)
	if err != nil {
		return err
	}
	if !settled {
		return ErrBillAlreadySettled
	}

	if customer, err := s.UserRepo.GetByID(b.Customer); err == nil && customer != nil {
		s.Notifier.SendCashReceipt(customer.Email, b, b.BillTotal()-AdvanceBookingFee)
	}

	utils.GetLogger().Info("cash payment recorded",
		zap.String("bookingId", bookingID))
	return nil
}

// Delete removes a booking. Customers may only delete their own, and a booking
// with an unsettled bill cannot be deleted by anyone.
func (s *DefaultBookingService) Delete(bookingID, actorID, actorRole string) error {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	if actorRole == models.RoleCustomer && b.Customer != actorID {
		return utils.ForbiddenError("You do not have access to this booking.")
	}
	if len(b.Bill) > 0 && !b.BillPayment {
		return ErrBillUnsettled
	}
	return s.Repo.Delete(bookingID)
}
