package booking

import (
	"fmt"
	"time"

	"drivewell/models"
	"drivewell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleCheckoutEvent settles a confirmed checkout session. The event id is
// claimed as pending before any side effect runs and confirmed as applied
// only after the settlement persists: a redelivery of an applied event is
// acknowledged without creating a second booking or flipping a bill twice,
// while a redelivery of an event whose settlement failed mid-flight claims
// the pending record again and retries.
func (s *DefaultBookingService) HandleCheckoutEvent(eventID string, metadata map[string]string) error {
	kind := metadata[metaKeyType]

	claimed, err := s.Events.Claim(models.ProcessedEvent{
		EventID:    eventID,
		EventType:  "checkout.session.completed",
		IntentKind: kind,
		Status:     models.EventStatusPending,
		ReceivedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	if !claimed {
		utils.GetLogger().Info("duplicate checkout event ignored",
			zap.String("eventId", eventID))
		return nil
	}

	switch kind {
	case models.IntentKindAdvance:
		err = s.settleAdvance(eventID, metadata)
	case models.IntentKindFinal:
		err = s.settleFinal(eventID, metadata)
	default:
		utils.GetLogger().Warn("checkout event with unknown intent kind",
			zap.String("eventId", eventID), zap.String("kind", kind))
	}
	if err != nil {
		// The pending claim is left in place so a redelivery retries.
		return err
	}

	if err := s.Events.MarkApplied(eventID); err != nil {
		// The settlement itself persisted, so the event is acknowledged
		// rather than inviting a redelivery that would re-apply it.
		utils.GetLogger().Error("failed to mark checkout event applied",
			zap.String("eventId", eventID), zap.Error(err))
	}
	return nil
}

// settleAdvance materializes the booking the customer paid the advance fee
// for. The session metadata carries the full request, so no pending-intent
// lookup is required to build the record.
func (s *DefaultBookingService) settleAdvance(eventID string, metadata map[string]string) error {
	description := metadata[metaKeyDescription]
	if description == "" {
		description = "No description"
	}

	b := &models.Booking{
		ID: uuid.New().String(),
		Vehicle: models.VehicleRef{
			VehicleID:   metadata[metaKeyVehicleID],
			VehicleName: metadata[metaKeyVehicleName],
		},
		Customer:     metadata[metaKeyCustomer],
		CustomerName: metadata[metaKeyCustomerName],
		Branch: models.BranchRef{
			BranchID:   metadata[metaKeyBranchID],
			BranchName: metadata[metaKeyBranchName],
		},
		Service:     metadata[metaKeyService],
		Date:        metadata[metaKeyDate],
		Description: description,
		Status:      models.BookingStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.Repo.Create(b); err != nil {
		return fmt.Errorf("create booking for event %s: %w", eventID, err)
	}

	if intentID := metadata[metaKeyIntentID]; intentID != "" {
		if err := s.Intents.Consume(intentID); err != nil {
			utils.GetLogger().Warn("failed to consume pending intent",
				zap.String("intentId", intentID), zap.Error(err))
		}
	}

	if email := metadata[metaKeyCustomerEmail]; email != "" {
		s.Notifier.SendBookingConfirmation(email, b)
	}

	utils.GetLogger().Info("booking created from checkout event",
		zap.String("eventId", eventID),
		zap.String("bookingId", b.ID),
		zap.String("branch", b.Branch.BranchName),
		zap.String("date", b.Date))
	return nil
}

// settleFinal marks the bill of an existing booking as paid by card.
func (s *DefaultBookingService) settleFinal(eventID string, metadata map[string]string) error {
	bookingID := metadata[metaKeyBookingID]

	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		// Returning the error makes Stripe redeliver; the booking may have
		// been deleted between session creation and settlement.
		return fmt.Errorf("booking %s not found for event %s", bookingID, eventID)
	}

	settled, err := s.Repo.MarkBillPaid(bookingID, models.PaymentMethodStripe)
	if err != nil {
		return err
	}
	if !settled {
		utils.GetLogger().Info("bill already settled, checkout event ignored",
			zap.String("eventId", eventID), zap.String("bookingId", bookingID))
		return nil
	}

	if intentID := metadata[metaKeyIntentID]; intentID != "" {
		if err := s.Intents.Consume(intentID); err != nil {
			utils.GetLogger().Warn("failed to consume pending intent",
				zap.String("intentId", intentID), zap.Error(err))
		}
	}

	if email := metadata[metaKeyCustomerEmail]; email != "" {
		s.Notifier.SendPaymentConfirmation(email, b, b.BillTotal()-AdvanceBookingFee)
	}

	utils.GetLogger().Info("bill settled from checkout event",
		zap.String("eventId", eventID), zap.String("bookingId", bookingID))
	return nil
}
