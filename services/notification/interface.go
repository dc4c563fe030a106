package notification

import (
	"drivewell/models"
)

// Mailer delivers a single HTML mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// NotificationService defines the transactional mails the platform sends.
// Every send is best-effort: callers must not fail their operation when a
// notification cannot be delivered.
type NotificationService interface {
	SendWelcome(to, name string) error
	SendTemporaryPassword(to, password string) error
	SendBookingConfirmation(to string, booking *models.Booking) error
	SendPaymentConfirmation(to string, booking *models.Booking, amount float64) error
	SendCashReceipt(to string, booking *models.Booking, amount float64) error
	SendServiceCompleted(to string, booking *models.Booking, total float64) error
}
