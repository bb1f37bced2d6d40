package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"freshcart/internal/domain"
)

const maxWebhookBody = 64 * 1024

// eventVerifier checks a webhook payload's signature and decodes the event.
// Injected so handler tests can substitute a stub for real signatures.
type eventVerifier func(payload []byte, sigHeader string) (stripe.Event, error)

// StripeVerifier verifies payloads against the endpoint's signing secret.
func StripeVerifier(secret string) func(payload []byte, sigHeader string) (stripe.Event, error) {
	return func(payload []byte, sigHeader string) (stripe.Event, error) {
		return webhook.ConstructEvent(payload, sigHeader, secret)
	}
}

// webhookHandler marks orders paid when the provider confirms the hosted
// session completed. The order id travels in the session metadata set at
// session creation.
func webhookHandler(orders orderMarker, events orderPaidPublisher, verify eventVerifier, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read payload"})
			return
		}

		event, err := verify(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			logger.Printf("webhook: signature verification failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}

		if event.Type != "checkout.session.completed" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			logger.Printf("webhook: decode session from event %s: %v", event.ID, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
			return
		}

		orderID := session.Metadata["orderId"]
		if orderID == "" {
			// A session we did not create; acknowledge so the provider
			// stops retrying.
			logger.Printf("webhook: session %s has no orderId metadata", session.ID)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		if err := orders.MarkPaid(c.Request.Context(), orderID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Printf("webhook: order %s not found", orderID)
				c.JSON(http.StatusOK, gin.H{"received": true})
				return
			}
			logger.Printf("webhook: mark paid order=%s error=%v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update order"})
			return
		}
		if events != nil {
			events.OrderPaid(c.Request.Context(), orderID)
		}

		logger.Printf("webhook: order %s paid via session %s", orderID, session.ID)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
