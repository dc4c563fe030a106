package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"drivewell/config"
	"drivewell/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

// stubBookingService records webhook dispatches; all other operations are
// unused by the webhook handler.
type stubBookingService struct {
	booking.BookingService
	eventIDs []string
	metadata map[string]string
	err      error
}

func (s *stubBookingService) HandleCheckoutEvent(eventID string, metadata map[string]string) error {
	s.eventIDs = append(s.eventIDs, eventID)
	s.metadata = metadata
	return s.err
}

// signPayload produces a Stripe-Signature header value for the payload.
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func webhookRequest(t *testing.T, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/payments/webhook", StripeWebhook)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func checkoutEventPayload(eventID, eventType string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": %q,
		"api_version": %q,
		"data": {
			"object": {
				"id": "cs_test",
				"object": "checkout.session",
				"metadata": {"type": "advance", "branchName": "Westlands"}
			}
		}
	}`, eventID, eventType, stripe.APIVersion))
}

func TestStripeWebhookDispatchesCheckoutEvent(t *testing.T) {
	config.AppConfig.StripeWebhookSecret = testWebhookSecret
	stub := &stubBookingService{}
	BookingService = stub

	payload := checkoutEventPayload("evt_1", "checkout.session.completed")
	w := webhookRequest(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"evt_1"}, stub.eventIDs)
	assert.Equal(t, "advance", stub.metadata["type"])
	assert.Equal(t, "Westlands", stub.metadata["branchName"])
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	config.AppConfig.StripeWebhookSecret = testWebhookSecret
	stub := &stubBookingService{}
	BookingService = stub

	payload := checkoutEventPayload("evt_1", "checkout.session.completed")

	w := webhookRequest(t, payload, signPayload(payload, "whsec_wrong"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = webhookRequest(t, payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, stub.eventIDs, "unverified events must never reach settlement")
}

func TestStripeWebhookIgnoresOtherEventTypes(t *testing.T) {
	config.AppConfig.StripeWebhookSecret = testWebhookSecret
	stub := &stubBookingService{}
	BookingService = stub

	payload := []byte(fmt.Sprintf(`{"id": "evt_2", "type": "invoice.paid", "api_version": %q, "data": {"object": {}}}`, stripe.APIVersion))
	w := webhookRequest(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, stub.eventIDs)
}

func TestStripeWebhookProcessingFailureReturns500(t *testing.T) {
	config.AppConfig.StripeWebhookSecret = testWebhookSecret
	stub := &stubBookingService{err: assert.AnError}
	BookingService = stub

	payload := checkoutEventPayload("evt_3", "checkout.session.completed")
	w := webhookRequest(t, payload, signPayload(payload, testWebhookSecret))

	// 500 makes the provider redeliver; settlement is idempotent.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
