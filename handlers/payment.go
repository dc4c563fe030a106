package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"drivewell/config"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// maxWebhookBody caps the webhook payload size.
const maxWebhookBody = 65536

// StripeWebhook receives payment events. Signature failures are rejected with
// 400 so misdirected traffic is dropped; processing failures return 500 so
// the provider redelivers.
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not read payload", "")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		utils.GetLogger().Warn("webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if event.Type != "checkout.session.completed" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		utils.GetLogger().Error("failed to parse checkout session from event",
			zap.String("eventId", event.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload"})
		return
	}

	if err := BookingService.HandleCheckoutEvent(event.ID, session.Metadata); err != nil {
		utils.GetLogger().Error("failed to process checkout event",
			zap.String("eventId", event.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
