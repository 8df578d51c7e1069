package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"github.com/gatewood-events/ticketline/internal/middleware"
	"github.com/gatewood-events/ticketline/internal/registration"
	"github.com/gatewood-events/ticketline/internal/store"
)

// TicketQR serves the signed door ticket for a paid registration as a QR
// PNG, keyed by the checkout session id the buyer returned with.
func TicketQR(c *gin.Context) {
	svc := middleware.GetRegistrationService(c)
	if svc == nil {
		c.String(http.StatusInternalServerError, "Tickets are not available.")
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.String(http.StatusBadRequest, "Missing session_id.")
		return
	}

	payload, err := svc.TicketPayload(c.Request.Context(), sessionID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		c.String(http.StatusNotFound, "Registration not found.")
		return
	case errors.Is(err, registration.ErrNotPaid):
		c.String(http.StatusForbidden, "Payment has not been confirmed yet.")
		return
	default:
		c.String(http.StatusInternalServerError, "Failed to generate ticket.")
		return
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
