package booking

import (
	"testing"

	"drivewell/models"
	"drivewell/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemoveNote(t *testing.T) {
	f := newTestFixture()
	require.NoError(t, f.repo.Create(&models.Booking{ID: "b-1", Status: models.BookingStatusInProgress}))

	note, err := f.svc.AddNote("b-1", "Mechanic Otieno", "Replaced the air filter")
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Mechanic Otieno", note.StaffName)

	b, _ := f.repo.GetByID("b-1")
	require.Len(t, b.Notes, 1)

	require.NoError(t, f.svc.RemoveNote("b-1", note.ID))
	b, _ = f.repo.GetByID("b-1")
	assert.Empty(t, b.Notes)
}

func TestAddNoteRejectsBlankText(t *testing.T) {
	f := newTestFixture()
	require.NoError(t, f.repo.Create(&models.Booking{ID: "b-1"}))

	_, err := f.svc.AddNote("b-1", "Mechanic Otieno", "   ")
	assert.Equal(t, utils.CodeValidation, utils.ErrorCode(err))
}

func TestSetBillAssignsLineIDs(t *testing.T) {
	f := newTestFixture()
	require.NoError(t, f.repo.Create(&models.Booking{ID: "b-1", Status: models.BookingStatusInProgress}))

	err := f.svc.SetBill("b-1", []models.BillItem{
		{Repair: "Brake pads", Cost: 80},
		{Repair: "Labour", Cost: 20},
	})
	require.NoError(t, err)

	b, _ := f.repo.GetByID("b-1")
	require.Len(t, b.Bill, 2)
	assert.NotEmpty(t, b.Bill[0].ID)
	assert.NotEmpty(t, b.Bill[1].ID)
	assert.Equal(t, 100.0, b.BillTotal())
}

func TestSetBillRejectsSettledBooking(t *testing.T) {
	f := newTestFixture()
	require.NoError(t, f.repo.Create(billedBooking("b-1", "cust-1", true)))

	err := f.svc.SetBill("b-1", []models.BillItem{{Repair: "Extra work", Cost: 10}})
	assert.ErrorIs(t, err, ErrBillAlreadySettled)
}

func TestSetBillValidatesLines(t *testing.T) {
	f := newTestFixture()
	require.NoError(t, f.repo.Create(&models.Booking{ID: "b-1"}))

	err := f.svc.SetBill("b-1", []models.BillItem{{Repair: "", Cost: 10}})
	assert.Equal(t, utils.CodeValidation, utils.ErrorCode(err))

	err = f.svc.SetBill("b-1", []models.BillItem{{Repair: "Brake pads", Cost: -1}})
	assert.Equal(t, utils.CodeValidation, utils.ErrorCode(err))
}

func TestRecordCashPayment(t *testing.T) {
	f := newTestFixture()
	f.users.users["cust-1"] = &models.User{ID: "cust-1", Email: "jane@example.com"}
	require.NoError(t, f.repo.Create(billedBooking("b-1", "cust-1", false)))

	require.NoError(t, f.svc.RecordCashPayment("b-1"))

	b, _ := f.repo.GetByID("b-1")
	assert.True(t, b.BillPayment)
	assert.Equal(t, models.PaymentMethodCash, b.PaymentMethod)
	assert.Contains(t, f.notifier.sent, "cashReceipt")

	// The settlement is once-only.
	assert.ErrorIs(t, f.svc.RecordCashPayment("b-1"), ErrBillAlreadySettled)
}

func TestRecordCashPaymentRequiresBill(t *testing.T) {
	f := newTestFixture()
	require.NoError(t, f.repo.Create(&models.Booking{ID: "b-1", Customer: "cust-1"}))

	assert.ErrorIs(t, f.svc.RecordCashPayment("b-1"), ErrNoBill)
}

func TestDeleteRules(t *testing.T) {
	f := newTestFixture()

	// Customers can delete their own unbilled booking.
	require.NoError(t, f.repo.Create(&models.Booking{ID: "b-own", Customer: "cust-1"}))
	require.NoError(t, f.svc.Delete("b-own", "cust-1", models.RoleCustomer))

	// But not someone else's.
	require.NoError(t, f.repo.Create(&models.Booking{ID: "b-other", Customer: "cust-2"}))
	err := f.svc.Delete("b-other", "cust-1", models.RoleCustomer)
	assert.Equal(t, utils.CodeForbidden, utils.ErrorCode(err))

	// An unsettled bill blocks deletion even for staff.
	require.NoError(t, f.repo.Create(billedBooking("b-billed", "cust-1", false)))
	assert.ErrorIs(t, f.svc.Delete("b-billed", "staff-1", models.RoleStaff), ErrBillUnsettled)

	// A settled bill unblocks it.
	require.NoError(t, f.repo.Create(billedBooking("b-settled", "cust-1", true)))
	require.NoError(t, f.svc.Delete("b-settled", "staff-1", models.RoleStaff))
}
