package booking

import (
	"time"

	bookingRepo "drivewell/database/repository/booking"
	branchRepo "drivewell/database/repository/branch"
	catalogRepo "drivewell/database/repository/catalog"
	userRepo "drivewell/database/repository/user"
	vehicleRepo "drivewell/database/repository/vehicle"
	"drivewell/models"
	"drivewell/services/notification"

	"github.com/stripe/stripe-go/v76"
)

// BookingService coordinates slot availability, payment capture and the
// booking lifecycle.
type BookingService interface {
	// Booking requests and payment capture.
	CheckAvailability(req models.BookingRequest) error
	RequestBooking(req models.BookingRequest) (string, error)
	RequestFinalPayment(bookingID, customerID string) (string, error)
	HandleCheckoutEvent(eventID string, metadata map[string]string) error

	// Queries.
	GetByID(bookingID string) (*models.Booking, error)
	ListForCustomer(customerID string) ([]models.Booking, error)
	ListForBranch(branchName string) ([]models.Booking, error)
	UnavailableDates(branchName, serviceName string) ([]string, error)

	// Staff workflow.
	SetStatus(bookingID, status string) error
	AddNote(bookingID, staffName, text string) (*models.BookingNote, error)
	RemoveNote(bookingID, noteID string) error
	SetBill(bookingID string, items []models.BillItem) error
	RecordCashPayment(bookingID string) error
	Delete(bookingID, actorID, actorRole string) error
}

// CheckoutClient creates checkout sessions with the payment provider. It is
// the only network-calling dependency of the booking service.
type CheckoutClient interface {
	NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// IntentStore tracks pending payment intents until they settle or expire.
type IntentStore interface {
	Save(intent models.PendingIntent, ttl time.Duration) error
	Consume(intentID string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	Events      bookingRepo.PaymentEventRepository
	BranchRepo  branchRepo.BranchRepository
	CatalogRepo catalogRepo.CatalogRepository
	VehicleRepo vehicleRepo.VehicleRepository
	UserRepo    userRepo.UserRepository
	Intents     IntentStore
	Checkout    CheckoutClient
	Notifier    notification.NotificationService
}
