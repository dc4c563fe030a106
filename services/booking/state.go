package booking

import (
	"fmt"

	"drivewell/models"
	"drivewell/utils"
)

// statusRank orders the staff-driven statuses. Transitions move forward only;
// skipping ahead is allowed, reversing is not.
var statusRank = map[string]int{
	models.BookingStatusPending:    0,
	models.BookingStatusInProgress: 1,
	models.BookingStatusCompleted:  2,
}

// ValidStatus reports whether the value is a known booking status.
func ValidStatus(status string) bool {
	_, ok := statusRank[status]
	return ok
}

// CanTransition reports whether a booking may move from one status to
// another. The status dimension is independent of billing.
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// checkTransition validates a requested status change against the booking's
// current state, including the bill requirement for completion.
func checkTransition(b *models.Booking, to string) error {
	if !ValidStatus(to) {
		return utils.ValidationError(fmt.Sprintf("Unknown booking status %q.", to))
	}
	if !CanTransition(b.Status, to) {
		return utils.ConflictError(fmt.Sprintf("Booking status cannot move from %s to %s.", b.Status, to))
	}
	if to == models.BookingStatusCompleted && len(b.Bill) == 0 {
		return ErrBillingRequired
	}
	return nil
}
