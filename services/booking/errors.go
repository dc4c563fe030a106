package booking

import "drivewell/utils"

// Capacity constants for day-granularity slots.
const (
	// SlotCapacity is the hard cap of confirmed bookings per
	// (date, branch, service) triple.
	SlotCapacity = 4
	// UnavailableThreshold is the softer cut-off used when listing dates to
	// customers, so near-full days stop being offered slightly early.
	UnavailableThreshold = 3
	// AdvanceBookingFee is the flat fee collected to confirm a slot,
	// deducted from the final bill.
	AdvanceBookingFee = 5.00
)

// Typed failures of the booking workflow.
var (
	ErrPastDate             = utils.ValidationError("Cannot book for a past date.")
	ErrBranchNotFound       = utils.NotFoundError("Branch not found.")
	ErrServiceNotFound      = utils.NotFoundError("Service not found.")
	ErrVehicleNotFound      = utils.NotFoundError("Vehicle not found.")
	ErrBookingNotFound      = utils.NotFoundError("Booking not found.")
	ErrFullyBooked          = utils.ConflictError("Fully booked for this date!")
	ErrVehicleAlreadyBooked = utils.ConflictError("Vehicle is already booked for a service on the selected date.")
	ErrBillingRequired      = utils.ConflictError("A bill must be added before the service can be completed.")
	ErrBillAlreadySettled   = utils.ConflictError("The bill for this booking has already been settled.")
	ErrBillUnsettled        = utils.ConflictError("Cannot delete a booking with an unsettled bill.")
	ErrNoBill               = utils.ConflictError("No bill has been added to this booking yet.")
)
