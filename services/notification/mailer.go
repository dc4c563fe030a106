package notification

import (
	"fmt"

	"drivewell/config"
	"drivewell/models"
	"drivewell/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// GomailMailer delivers mail over SMTP.
type GomailMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailMailer builds a Mailer from the SMTP configuration.
func NewGomailMailer() *GomailMailer {
	cfg := config.AppConfig
	return &GomailMailer{
		dialer: gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass),
		from:   cfg.MailUser,
	}
}

// Send delivers a single HTML mail.
func (m *GomailMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Mailer Mailer
}

// NewDefaultNotificationService wires the notification service.
func NewDefaultNotificationService(mailer Mailer) *DefaultNotificationService {
	return &DefaultNotificationService{Mailer: mailer}
}

func (s *DefaultNotificationService) send(to, subject, body string) error {
	if err := s.Mailer.Send(to, subject, body); err != nil {
		utils.GetLogger().Error("mail delivery failed",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return err
	}
	return nil
}

// SendWelcome greets a newly registered customer.
func (s *DefaultNotificationService) SendWelcome(to, name string) error {
	return s.send(to, "Welcome to DriveWell Garage!", welcomeBody(name, to))
}

// SendTemporaryPassword delivers a reset temporary password.
func (s *DefaultNotificationService) SendTemporaryPassword(to, password string) error {
	return s.send(to, "Reset Password", temporaryPasswordBody(password))
}

// SendBookingConfirmation confirms a booking after the advance payment settled.
func (s *DefaultNotificationService) SendBookingConfirmation(to string, booking *models.Booking) error {
	return s.send(to, "Booking Confirmed", bookingConfirmationBody(booking))
}

// SendPaymentConfirmation confirms an online final payment.
func (s *DefaultNotificationService) SendPaymentConfirmation(to string, booking *models.Booking, amount float64) error {
	return s.send(to, "Payment Received", paymentConfirmationBody(booking, amount, models.PaymentMethodStripe))
}

// SendCashReceipt confirms a cash settlement recorded by staff.
func (s *DefaultNotificationService) SendCashReceipt(to string, booking *models.Booking, amount float64) error {
	return s.send(to, "Payment Received", paymentConfirmationBody(booking, amount, models.PaymentMethodCash))
}

// SendServiceCompleted summarizes the bill once the service is done.
func (s *DefaultNotificationService) SendServiceCompleted(to string, booking *models.Booking, total float64) error {
	return s.send(to, "Your Vehicle is Ready", serviceCompletedBody(booking, total))
}
