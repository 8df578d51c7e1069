package registration

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gatewood-events/ticketline/internal/models"
	"github.com/gatewood-events/ticketline/internal/observability"
	"github.com/gatewood-events/ticketline/internal/payments"
	"github.com/gatewood-events/ticketline/internal/store"
)

// Confirmation sources, used as the metric label.
const (
	SourceWebhook  = "webhook"
	SourceRedirect = "redirect"
)

// ValidationError rejects a purchase request before any side effect. The
// message is buyer-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type PurchaseRequest struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	NumTickets string
}

type Report struct {
	Registrations      []models.Registration
	TotalRegistrations int
	TicketsSold        int
	RevenueCents       int
}

type Service struct {
	store        store.RegistrationStore
	provider     payments.Provider
	baseURL      string
	eventName    string
	ticketSecret string
}

func NewService(st store.RegistrationStore, provider payments.Provider, baseURL, eventName, ticketSecret string) *Service {
	return &Service{
		store:        st,
		provider:     provider,
		baseURL:      strings.TrimRight(baseURL, "/"),
		eventName:    eventName,
		ticketSecret: ticketSecret,
	}
}

func (s *Service) EventName() string {
	return s.eventName
}

// Intake validates a purchase request, persists a pending registration,
// creates the hosted checkout session, and attaches the session id to the
// registration. It returns the hosted checkout URL to redirect the buyer to.
//
// If session creation or the attach step fails the pending row is left
// behind without a session id. There is no cleanup job for these rows; the
// registration id is logged so an operator can reconcile by hand.
func (s *Service) Intake(ctx context.Context, req PurchaseRequest) (string, error) {
	numTickets, err := validate(&req)
	if err != nil {
		return "", err
	}

	reg := &models.Registration{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		NumTickets:    numTickets,
		TotalAmount:   numTickets * models.UnitPriceCents,
		PaymentStatus: models.StatusPending,
	}
	if err := s.store.Create(ctx, reg); err != nil {
		return "", err
	}
	observability.RegistrationsCreated.Inc()

	session, err := s.provider.CreateSession(ctx, payments.CheckoutRequest{
		ProductName:    s.eventName,
		UnitAmount:     models.UnitPriceCents,
		Quantity:       numTickets,
		CustomerEmail:  reg.Email,
		SuccessURL:     s.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      s.baseURL + "/cancel",
		RegistrationID: reg.ID,
		CustomerName:   reg.FirstName + " " + reg.LastName,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"registration_id": reg.ID,
			"error":           err,
		}).Error("checkout session creation failed, registration left pending")
		return "", err
	}

	if err := s.store.AttachSessionID(ctx, reg.ID, session.ID); err != nil {
		logrus.WithFields(logrus.Fields{
			"registration_id": reg.ID,
			"session_id":      session.ID,
			"error":           err,
		}).Error("failed to attach session id, registration left pending")
		return "", err
	}

	return session.URL, nil
}

func validate(req *PurchaseRequest) (int, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.NumTickets = strings.TrimSpace(req.NumTickets)

	required := []struct {
		value string
		label string
	}{
		{req.FirstName, "First name"},
		{req.LastName, "Last name"},
		{req.Email, "Email"},
		{req.Phone, "Phone"},
		{req.NumTickets, "Number of tickets"},
	}
	for _, f := range required {
		if f.value == "" {
			return 0, &ValidationError{Message: f.label + " is required."}
		}
	}

	n, err := strconv.Atoi(req.NumTickets)
	if err != nil || n < models.MinTickets || n > models.MaxTickets {
		return 0, &ValidationError{Message: fmt.Sprintf(
			"Number of tickets must be a whole number between %d and %d.",
			models.MinTickets, models.MaxTickets,
		)}
	}
	return n, nil
}

// ConfirmFromWebhook verifies the raw event payload against its signature
// header and, for a completed checkout, applies the paid transition keyed by
// session id. Unmatched session ids are acknowledged without error so the
// provider does not redeliver; only a signature failure is reported back.
func (s *Service) ConfirmFromWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.provider.VerifyEvent(payload, sigHeader)
	if err != nil {
		observability.WebhookSignatureFailures.Inc()
		return err
	}

	if event.Type != payments.EventCheckoutCompleted {
		return nil
	}

	updated, err := s.store.MarkPaidBySessionID(ctx, event.SessionID)
	if err != nil {
		return err
	}
	if !updated {
		observability.WebhookUnmatchedSessions.Inc()
		logrus.WithField("session_id", event.SessionID).
			Info("webhook completion matched no pending registration")
		return nil
	}

	observability.PaymentsConfirmed.WithLabelValues(SourceWebhook).Inc()
	logrus.WithField("session_id", event.SessionID).Info("registration marked paid via webhook")
	return nil
}

// ConfirmFromRedirect is the best-effort confirmation run when the buyer's
// browser lands on the success page. Failures are logged and swallowed: the
// webhook path is authoritative and this one only narrows the window where
// the admin view still shows pending.
func (s *Service) ConfirmFromRedirect(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	paid, err := s.provider.SessionPaid(ctx, sessionID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err,
		}).Warn("session status poll failed")
		return
	}
	if !paid {
		return
	}

	updated, err := s.store.MarkPaidBySessionID(ctx, sessionID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err,
		}).Warn("paid transition failed on redirect path")
		return
	}
	if updated {
		observability.PaymentsConfirmed.WithLabelValues(SourceRedirect).Inc()
		logrus.WithField("session_id", sessionID).Info("registration marked paid via redirect")
	}
}

// Report lists registrations newest-first with aggregates over paid rows
// only; a pending registration contributes to the total count but not to
// tickets sold or revenue.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	regs, err := s.store.ListNewestFirst(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load registrations")
	}

	report := &Report{
		Registrations:      regs,
		TotalRegistrations: len(regs),
	}
	for _, reg := range regs {
		if reg.Paid() {
			report.TicketsSold += reg.NumTickets
			report.RevenueCents += reg.TotalAmount
		}
	}
	return report, nil
}
