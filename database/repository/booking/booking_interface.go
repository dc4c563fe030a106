package bookingRepo

import (
	"drivewell/models"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(b *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	Update(b *models.Booking) error
	Delete(id string) error

	GetByCustomer(customerID string) ([]models.Booking, error)
	GetByBranchName(branchName string) ([]models.Booking, error)
	GetSince(date string) ([]models.Booking, error)
	CountAll() (int64, error)

	// Capacity and conflict checks, all at day granularity.
	CountForSlot(date, branchName, serviceName string) (int64, error)
	ExistsForVehicleOnDate(date, vehicleID string) (bool, error)
	UnavailableDates(branchName, serviceName string, threshold int) ([]string, error)

	// Field-level atomic updates.
	SetStatus(id, status string) error
	AppendNote(id string, note models.BookingNote) error
	RemoveNote(id, noteID string) error
	SetBill(id string, bill []models.BillItem) error
	MarkBillPaid(id, method string) (bool, error)
}

// PaymentEventRepository records webhook event ids so duplicate deliveries
// are discarded, without losing events whose settlement failed mid-flight.
type PaymentEventRepository interface {
	// Claim records the event as pending. It returns false when the event was
	// already applied; a stale pending record is taken over so a redelivery
	// can retry a settlement that failed before it was confirmed.
	Claim(event models.ProcessedEvent) (bool, error)
	// MarkApplied confirms the claimed event's settlement persisted.
	MarkApplied(eventID string) error
}
