package booking

import (
	"errors"
	"testing"

	"drivewell/models"
	"drivewell/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionMetadata(t *testing.T, c *fakeCheckout) map[string]string {
	t.Helper()
	require.NotNil(t, c.lastParams, "no checkout session was created")
	return c.lastParams.Metadata
}

func TestRequestBookingCreatesAdvanceSession(t *testing.T) {
	f := newTestFixture()
	req := validRequest(futureDate(3))

	url, err := f.svc.RequestBooking(req)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.test/session", url)

	// No booking exists until the webhook confirms the payment.
	count, _ := f.repo.CountAll()
	assert.Zero(t, count)

	md := sessionMetadata(t, f.checkout)
	assert.Equal(t, models.IntentKindAdvance, md[metaKeyType])
	assert.Equal(t, req.Vehicle.ID, md[metaKeyVehicleID])
	assert.Equal(t, req.Branch.Name, md[metaKeyBranchName])
	assert.Equal(t, req.Service, md[metaKeyService])
	assert.Equal(t, req.Date, md[metaKeyDate])
	assert.Equal(t, req.CustomerID, md[metaKeyCustomer])
	assert.Equal(t, req.CustomerEmail, md[metaKeyCustomerEmail])
	assert.NotEmpty(t, md[metaKeyIntentID])

	// Flat advance fee in cents.
	require.Len(t, f.checkout.lastParams.LineItems, 1)
	assert.Equal(t, int64(500), *f.checkout.lastParams.LineItems[0].PriceData.UnitAmount)

	// The pending intent is tracked under the metadata's intent id.
	_, ok := f.intents.saved[md[metaKeyIntentID]]
	assert.True(t, ok)
}

func TestRequestBookingRejectedBeforePayment(t *testing.T) {
	f := newTestFixture()
	f.branches.exists = false

	_, err := f.svc.RequestBooking(validRequest(futureDate(3)))
	assert.ErrorIs(t, err, ErrBranchNotFound)
	assert.Nil(t, f.checkout.lastParams, "no session may be created for an unavailable slot")
}

func TestRequestBookingProviderFailure(t *testing.T) {
	f := newTestFixture()
	f.checkout.err = errors.New("stripe: connection reset")

	_, err := f.svc.RequestBooking(validRequest(futureDate(3)))
	require.Error(t, err)
	assert.Equal(t, utils.CodePayment, utils.ErrorCode(err))
	assert.Empty(t, f.intents.saved)

	count, _ := f.repo.CountAll()
	assert.Zero(t, count)
}

func billedBooking(id, customer string, paid bool) *models.Booking {
	return &models.Booking{
		ID:       id,
		Customer: customer,
		Vehicle:  models.VehicleRef{VehicleID: "veh-1", VehicleName: "Toyota Axio"},
		Branch:   models.BranchRef{BranchID: "br-1", BranchName: "Westlands"},
		Service:  "Oil Change",
		Status:   models.BookingStatusCompleted,
		Bill: []models.BillItem{
			{ID: "line-1", Repair: "Brake pads", Cost: 80},
			{ID: "line-2", Repair: "Labour", Cost: 20},
		},
		BillPayment: paid,
	}
}

func TestRequestFinalPaymentBuildsSession(t *testing.T) {
	f := newTestFixture()
	f.users.users["cust-1"] = &models.User{ID: "cust-1", Email: "jane@example.com"}
	require.NoError(t, f.repo.Create(billedBooking("b-1", "cust-1", false)))

	url, err := f.svc.RequestFinalPayment("b-1", "cust-1")
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	md := sessionMetadata(t, f.checkout)
	assert.Equal(t, models.IntentKindFinal, md[metaKeyType])
	assert.Equal(t, "b-1", md[metaKeyBookingID])

	// 100.00 bill minus the 5.00 advance fee, in cents.
	require.Len(t, f.checkout.lastParams.LineItems, 1)
	assert.Equal(t, int64(9500), *f.checkout.lastParams.LineItems[0].PriceData.UnitAmount)
}

func TestRequestFinalPaymentOwnership(t *testing.T) {
	f := newTestFixture()
	require.NoError(t, f.repo.Create(billedBooking("b-1", "cust-1", false)))

	_, err := f.svc.RequestFinalPayment("b-1", "someone-else")
	require.Error(t, err)
	assert.Equal(t, utils.CodeForbidden, utils.ErrorCode(err))
}

func TestRequestFinalPaymentGuards(t *testing.T) {
	f := newTestFixture()

	_, err := f.svc.RequestFinalPayment("missing", "cust-1")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	require.NoError(t, f.repo.Create(&models.Booking{ID: "b-nobill", Customer: "cust-1"}))
	_, err = f.svc.RequestFinalPayment("b-nobill", "cust-1")
	assert.ErrorIs(t, err, ErrNoBill)

	require.NoError(t, f.repo.Create(billedBooking("b-paid", "cust-1", true)))
	_, err = f.svc.RequestFinalPayment("b-paid", "cust-1")
	assert.ErrorIs(t, err, ErrBillAlreadySettled)
}
