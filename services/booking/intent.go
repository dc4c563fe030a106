package booking

import (
	"fmt"
	"math"
	"time"

	"drivewell/config"
	"drivewell/models"
	"drivewell/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// Metadata keys carried on checkout sessions. The advance session carries the
// whole booking request so the booking can be reconstructed from the
// confirmed-payment event alone.
const (
	metaKeyType          = "type"
	metaKeyIntentID      = "intentId"
	metaKeyBookingID     = "bookingId"
	metaKeyAmount        = "amount"
	metaKeyVehicleID     = "vehicleId"
	metaKeyVehicleName   = "vehicleName"
	metaKeyBranchID      = "branchId"
	metaKeyBranchName    = "branchName"
	metaKeyService       = "service"
	metaKeyDate          = "date"
	metaKeyCustomer      = "customer"
	metaKeyCustomerName  = "customerName"
	metaKeyCustomerEmail = "customerEmail"
	metaKeyDescription   = "description"
)

// pendingIntentTTL bounds how long an unconsumed checkout session is tracked.
const pendingIntentTTL = 24 * time.Hour

func checkoutSessionParams(productName, productDescription string, amountCents int64) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(productName),
						Description: stripe.String(productDescription),
					},
					UnitAmount: stripe.Int64(amountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(config.AppConfig.CheckoutSuccessURL),
		CancelURL:  stripe.String(config.AppConfig.CheckoutCancelURL),
	}
}

// buildAdvanceParams constructs the checkout session for the flat advance
// booking fee. The metadata is the transient booking request itself.
func buildAdvanceParams(req models.BookingRequest, intentID string) *stripe.CheckoutSessionParams {
	params := checkoutSessionParams(
		req.Vehicle.Name,
		fmt.Sprintf("%s at %s", req.Service, req.Branch.Name),
		dollarsToCents(AdvanceBookingFee),
	)
	params.AddMetadata(metaKeyType, models.IntentKindAdvance)
	params.AddMetadata(metaKeyIntentID, intentID)
	params.AddMetadata(metaKeyVehicleID, req.Vehicle.ID)
	params.AddMetadata(metaKeyVehicleName, req.Vehicle.Name)
	params.AddMetadata(metaKeyBranchID, req.Branch.ID)
	params.AddMetadata(metaKeyBranchName, req.Branch.Name)
	params.AddMetadata(metaKeyService, req.Service)
	params.AddMetadata(metaKeyDate, req.Date)
	params.AddMetadata(metaKeyCustomer, req.CustomerID)
	params.AddMetadata(metaKeyCustomerName, req.CustomerName)
	params.AddMetadata(metaKeyCustomerEmail, req.CustomerEmail)
	params.AddMetadata(metaKeyDescription, req.Description)
	return params
}

// buildFinalParams constructs the checkout session settling the repair bill
// minus the advance fee already collected.
func buildFinalParams(b *models.Booking, customerEmail string, amount float64, intentID string) *stripe.CheckoutSessionParams {
	params := checkoutSessionParams(
		b.Vehicle.VehicleName,
		fmt.Sprintf("%s at %s", b.Service, b.Branch.BranchName),
		dollarsToCents(amount),
	)
	params.AddMetadata(metaKeyType, models.IntentKindFinal)
	params.AddMetadata(metaKeyIntentID, intentID)
	params.AddMetadata(metaKeyBookingID, b.ID)
	params.AddMetadata(metaKeyAmount, fmt.Sprintf("%.2f", amount))
	params.AddMetadata(metaKeyVehicleName, b.Vehicle.VehicleName)
	params.AddMetadata(metaKeyBranchName, b.Branch.BranchName)
	params.AddMetadata(metaKeyService, b.Service)
	params.AddMetadata(metaKeyDate, b.Date)
	params.AddMetadata(metaKeyCustomer, b.Customer)
	params.AddMetadata(metaKeyCustomerEmail, customerEmail)
	return params
}

func dollarsToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// RequestBooking validates availability and creates the advance checkout
// session. No booking row is written here; the booking materializes only when
// the payment confirmation arrives on the webhook.
func (s *DefaultBookingService) RequestBooking(req models.BookingRequest) (string, error) {
	if err := s.CheckAvailability(req); err != nil {
		return "", err
	}

	intentID := uuid.New().String()
	sess, err := s.Checkout.NewSession(buildAdvanceParams(req, intentID))
	if err != nil {
		utils.GetLogger().Error("advance checkout session creation failed",
			zap.String("customer", req.CustomerID), zap.Error(err))
		return "", utils.PaymentError("Failed to create the checkout session.")
	}

	intent := models.PendingIntent{
		IntentID:  intentID,
		Kind:      models.IntentKindAdvance,
		Amount:    AdvanceBookingFee,
		Request:   req,
		CreatedAt: time.Now(),
	}
	if err := s.Intents.Save(intent, pendingIntentTTL); err != nil {
		// The booking is reconstructed from session metadata, so a lost
		// pending-intent record only affects expiry bookkeeping.
		utils.GetLogger().Warn("failed to save pending intent",
			zap.String("intentId", intentID), zap.Error(err))
	}

	return sess.URL, nil
}

// RequestFinalPayment creates the checkout session settling the outstanding
// bill of a completed service.
func (s *DefaultBookingService) RequestFinalPayment(bookingID, customerID string) (string, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", ErrBookingNotFound
	}
	if b.Customer != customerID {
		return "", utils.ForbiddenError("You do not have access to this booking.")
	}
	if len(b.Bill) == 0 {
		return "", ErrNoBill
	}
	if b.BillPayment {
		return "", ErrBillAlreadySettled
	}

	amount := b.BillTotal() - AdvanceBookingFee
	if amount <= 0 {
		return "", utils.ConflictError("The advance fee already covers this bill; ask the branch to record it.")
	}

	customer, err := s.UserRepo.GetByID(customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", utils.NotFoundError("Customer not found.")
	}

	intentID := uuid.New().String()
	sess, err := s.Checkout.NewSession(buildFinalParams(b, customer.Email, amount, intentID))
	if err != nil {
		utils.GetLogger().Error("final checkout session creation failed",
			zap.String("bookingId", bookingID), zap.Error(err))
		return "", utils.PaymentError("Failed to create the checkout session.")
	}

	intent := models.PendingIntent{
		IntentID:  intentID,
		Kind:      models.IntentKindFinal,
		BookingID: bookingID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	if err := s.Intents.Save(intent, pendingIntentTTL); err != nil {
		utils.GetLogger().Warn("failed to save pending intent",
			zap.String("intentId", intentID), zap.Error(err))
	}

	return sess.URL, nil
}
