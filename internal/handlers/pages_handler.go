package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatewood-events/ticketline/internal/middleware"
	"github.com/gatewood-events/ticketline/internal/models"
)

func Index(c *gin.Context) {
	svc := middleware.GetRegistrationService(c)

	eventName := ""
	if svc != nil {
		eventName = svc.EventName()
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Shell":      middleware.GetShell(c),
		"SalesOpen":  svc != nil,
		"EventName":  eventName,
		"UnitPrice":  fmt.Sprintf("%.2f", float64(models.UnitPriceCents)/100),
		"MaxTickets": models.MaxTickets,
	})
}

// Success renders the confirmation page. When the provider appended a
// session id to the redirect, the live session status is polled and the paid
// transition applied if appropriate; any failure there is swallowed and the
// page still renders, since the webhook path is the authoritative confirmer.
func Success(c *gin.Context) {
	sessionID := c.Query("session_id")

	svc := middleware.GetRegistrationService(c)
	if svc != nil {
		svc.ConfirmFromRedirect(c.Request.Context(), sessionID)
	}

	ticketAvailable := svc != nil && svc.TicketingEnabled() && sessionID != ""

	c.HTML(http.StatusOK, "success.tmpl", gin.H{
		"Shell":           middleware.GetShell(c),
		"SessionID":       sessionID,
		"TicketAvailable": ticketAvailable,
	})
}

func Cancel(c *gin.Context) {
	c.HTML(http.StatusOK, "cancel.tmpl", gin.H{
		"Shell": middleware.GetShell(c),
	})
}
