package payments

import "context"

// Event types surfaced to the reconciliation service. Anything the provider
// sends that is not a checkout completion comes back as EventIgnored so new
// provider event kinds never break the webhook.
const (
	EventCheckoutCompleted = "checkout_completed"
	EventIgnored           = "ignored"
)

type CheckoutRequest struct {
	ProductName    string
	UnitAmount     int
	Quantity       int
	CustomerEmail  string
	SuccessURL     string
	CancelURL      string
	RegistrationID uint
	CustomerName   string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type Event struct {
	Type      string
	SessionID string
}

// Provider is the payment-gateway boundary: hosted checkout session
// creation, live status retrieval for the redirect path, and signature
// verification for the webhook path. VerifyEvent must be given the request
// body exactly as received; verification runs over the raw bytes.
type Provider interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	SessionPaid(ctx context.Context, sessionID string) (bool, error)
	VerifyEvent(payload []byte, sigHeader string) (*Event, error)
}
