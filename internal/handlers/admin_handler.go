package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/gatewood-events/ticketline/internal/helpers"
	"github.com/gatewood-events/ticketline/internal/middleware"
	"github.com/gatewood-events/ticketline/internal/registration"
)

// AdminListing renders every registration newest-first with aggregates that
// count paid rows only. Read-only; credentials are enforced by the route
// group's Basic auth.
func AdminListing(c *gin.Context) {
	svc := middleware.GetRegistrationService(c)
	if svc == nil {
		c.String(http.StatusInternalServerError, "Registration listing is not available.")
		return
	}

	report, err := svc.Report(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load registrations.")
		return
	}

	c.HTML(http.StatusOK, "admin.tmpl", gin.H{
		"Shell":              middleware.GetShell(c),
		"Registrations":      report.Registrations,
		"TotalRegistrations": report.TotalRegistrations,
		"TicketsSold":        report.TicketsSold,
		"Revenue":            fmt.Sprintf("%.2f", float64(report.RevenueCents)/100),
	})
}

type CheckInRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

// AdminCheckIn validates a scanned door ticket and marks the registration
// checked in.
func AdminCheckIn(c *gin.Context) {
	svc := middleware.GetRegistrationService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Check-in is not available.")
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	reg, err := svc.CheckIn(c.Request.Context(), req.QRData)
	switch {
	case err == nil:
	case errors.Is(err, registration.ErrBadTicket):
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket.")
		return
	case errors.Is(err, registration.ErrNotPaid):
		helpers.RespondWithError(c, http.StatusForbidden, "Ticket is not paid.")
		return
	case errors.Is(err, registration.ErrAlreadyCheckedIn):
		helpers.RespondWithError(c, http.StatusConflict, "Ticket already checked in.")
		return
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to check in ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Ticket checked in.",
		"registration_id": reg.ID,
		"name":            reg.FirstName + " " + reg.LastName,
		"num_tickets":     reg.NumTickets,
	})
}
