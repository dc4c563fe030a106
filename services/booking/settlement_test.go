package booking

import (
	"errors"
	"testing"

	"drivewell/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advanceMetadata(date string) map[string]string {
	return map[string]string{
		metaKeyType:          models.IntentKindAdvance,
		metaKeyIntentID:      "intent-1",
		metaKeyVehicleID:     "veh-1",
		metaKeyVehicleName:   "Toyota Axio",
		metaKeyBranchID:      "br-1",
		metaKeyBranchName:    "Westlands",
		metaKeyService:       "Oil Change",
		metaKeyDate:          date,
		metaKeyCustomer:      "cust-1",
		metaKeyCustomerName:  "Jane Wanjiku",
		metaKeyCustomerEmail: "jane@example.com",
		metaKeyDescription:   "Engine knocking on cold starts",
	}
}

func TestHandleCheckoutEventCreatesBooking(t *testing.T) {
	f := newTestFixture()
	date := futureDate(3)

	require.NoError(t, f.svc.HandleCheckoutEvent("evt-1", advanceMetadata(date)))

	bookings, _ := f.repo.GetByCustomer("cust-1")
	require.Len(t, bookings, 1)
	b := bookings[0]
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, "Westlands", b.Branch.BranchName)
	assert.Equal(t, "Oil Change", b.Service)
	assert.Equal(t, date, b.Date)
	assert.Equal(t, "veh-1", b.Vehicle.VehicleID)
	assert.False(t, b.BillPayment)

	assert.Equal(t, []string{"intent-1"}, f.intents.consumed)
	assert.Contains(t, f.notifier.sent, "bookingConfirmation")
}

func TestHandleCheckoutEventDefaultsDescription(t *testing.T) {
	f := newTestFixture()
	md := advanceMetadata(futureDate(3))
	md[metaKeyDescription] = ""

	require.NoError(t, f.svc.HandleCheckoutEvent("evt-1", md))

	bookings, _ := f.repo.GetByCustomer("cust-1")
	require.Len(t, bookings, 1)
	assert.Equal(t, "No description", bookings[0].Description)
}

func TestHandleCheckoutEventDuplicateIgnored(t *testing.T) {
	f := newTestFixture()
	md := advanceMetadata(futureDate(3))

	require.NoError(t, f.svc.HandleCheckoutEvent("evt-1", md))
	require.NoError(t, f.svc.HandleCheckoutEvent("evt-1", md))

	bookings, _ := f.repo.GetByCustomer("cust-1")
	assert.Len(t, bookings, 1, "redelivered event must not create a second booking")
}

func TestHandleCheckoutEventRedeliveryRetriesFailedSettlement(t *testing.T) {
	f := newTestFixture()
	f.repo.createErr = errors.New("connection reset")
	md := advanceMetadata(futureDate(3))

	require.Error(t, f.svc.HandleCheckoutEvent("evt-1", md))
	require.NoError(t, f.svc.HandleCheckoutEvent("evt-1", md))

	bookings, _ := f.repo.GetByCustomer("cust-1")
	assert.Len(t, bookings, 1, "redelivery after a transient failure must settle the paid advance")
}

func TestHandleCheckoutEventRedeliveryRetriesMissingBooking(t *testing.T) {
	f := newTestFixture()
	md := map[string]string{
		metaKeyType:      models.IntentKindFinal,
		metaKeyBookingID: "b-1",
	}
	require.Error(t, f.svc.HandleCheckoutEvent("evt-9", md))

	require.NoError(t, f.repo.Create(&models.Booking{
		ID:       "b-1",
		Customer: "cust-1",
		Bill:     []models.BillItem{{ID: "line-1", Repair: "Brake pads", Cost: 80}},
	}))
	require.NoError(t, f.svc.HandleCheckoutEvent("evt-9", md))

	b, _ := f.repo.GetByID("b-1")
	assert.True(t, b.BillPayment)
}

func TestHandleCheckoutEventDistinctEventsBothApply(t *testing.T) {
	f := newTestFixture()
	md := advanceMetadata(futureDate(3))

	require.NoError(t, f.svc.HandleCheckoutEvent("evt-1", md))
	require.NoError(t, f.svc.HandleCheckoutEvent("evt-2", md))

	bookings, _ := f.repo.GetByCustomer("cust-1")
	assert.Len(t, bookings, 2)
}

func TestHandleCheckoutEventFinalSettlesBill(t *testing.T) {
	f := newTestFixture()
	require.NoError(t, f.repo.Create(&models.Booking{
		ID:       "b-1",
		Customer: "cust-1",
		Status:   models.BookingStatusCompleted,
		Bill:     []models.BillItem{{ID: "line-1", Repair: "Brake pads", Cost: 80}},
	}))

	md := map[string]string{
		metaKeyType:          models.IntentKindFinal,
		metaKeyIntentID:      "intent-2",
		metaKeyBookingID:     "b-1",
		metaKeyCustomerEmail: "jane@example.com",
	}
	require.NoError(t, f.svc.HandleCheckoutEvent("evt-9", md))

	b, _ := f.repo.GetByID("b-1")
	assert.True(t, b.BillPayment)
	assert.Equal(t, models.PaymentMethodStripe, b.PaymentMethod)
	require.NotNil(t, b.PaymentDate)
	assert.Contains(t, f.notifier.sent, "paymentConfirmation")
}

func TestHandleCheckoutEventFinalMissingBooking(t *testing.T) {
	f := newTestFixture()
	md := map[string]string{
		metaKeyType:      models.IntentKindFinal,
		metaKeyBookingID: "missing",
	}
	assert.Error(t, f.svc.HandleCheckoutEvent("evt-9", md))
}

func TestHandleCheckoutEventUnknownKindAcknowledged(t *testing.T) {
	f := newTestFixture()
	err := f.svc.HandleCheckoutEvent("evt-1", map[string]string{metaKeyType: "subscription"})
	assert.NoError(t, err)

	count, _ := f.repo.CountAll()
	assert.Zero(t, count)
}

func TestHandleCheckoutEventSurvivesNotifierFailure(t *testing.T) {
	f := newTestFixture()
	f.notifier.fail = true

	require.NoError(t, f.svc.HandleCheckoutEvent("evt-1", advanceMetadata(futureDate(3))))

	bookings, _ := f.repo.GetByCustomer("cust-1")
	assert.Len(t, bookings, 1, "a failed confirmation mail must not lose the booking")
}
