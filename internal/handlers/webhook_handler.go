package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/gatewood-events/ticketline/internal/helpers"
	"github.com/gatewood-events/ticketline/internal/middleware"
	"github.com/gatewood-events/ticketline/internal/payments"
)

// Webhook receives provider event deliveries. The body must stay untouched
// between reading and verification; the signature covers the exact bytes on
// the wire. A 400 invites the provider to redeliver, so it is returned only
// for signature failures; everything verified is acknowledged 200.
func Webhook(c *gin.Context) {
	svc := middleware.GetRegistrationService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Webhook handling is not available.")
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to read request body.")
		return
	}

	err = svc.ConfirmFromWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payments.ErrSignature) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Signature verification failed.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to process event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
