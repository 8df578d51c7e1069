package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatewood-events/ticketline/internal/middleware"
	"github.com/gatewood-events/ticketline/internal/registration"
)

type CheckoutForm struct {
	FirstName  string `form:"first_name"`
	LastName   string `form:"last_name"`
	Email      string `form:"email"`
	Phone      string `form:"phone"`
	NumTickets string `form:"num_tickets"`
}

// CreateCheckoutSession handles the purchase form. On success the buyer is
// sent to the provider's hosted checkout page with a 303 so the form POST is
// not replayed.
func CreateCheckoutSession(c *gin.Context) {
	svc := middleware.GetRegistrationService(c)
	if svc == nil {
		c.String(http.StatusInternalServerError, "Ticket sales are not available.")
		return
	}

	var form CheckoutForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission.")
		return
	}

	checkoutURL, err := svc.Intake(c.Request.Context(), registration.PurchaseRequest{
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Email:      form.Email,
		Phone:      form.Phone,
		NumTickets: form.NumTickets,
	})
	if err != nil {
		var vErr *registration.ValidationError
		if errors.As(err, &vErr) {
			c.String(http.StatusBadRequest, vErr.Message)
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	c.Redirect(http.StatusSeeOther, checkoutURL)
}
