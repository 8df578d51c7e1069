package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

var ErrSignature = errors.New("webhook signature verification failed")

type StripeClient struct {
	webhookSecret string
}

// NewStripeClient sets the account key for the stripe-go singleton and
// returns a client scoped to the given webhook signing secret. The secret
// may be empty; VerifyEvent then rejects every delivery.
func NewStripeClient(secretKey, webhookSecret string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{webhookSecret: webhookSecret}
}

func (c *StripeClient) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(int64(req.UnitAmount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(int64(req.Quantity)),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("registration_id", fmt.Sprintf("%d", req.RegistrationID))
	params.AddMetadata("customer_name", req.CustomerName)

	s, err := session.New(params)
	if err != nil {
		return nil, errors.Wrap(err, "create checkout session")
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (c *StripeClient) SessionPaid(ctx context.Context, sessionID string) (bool, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(sessionID, params)
	if err != nil {
		return false, errors.Wrap(err, "retrieve checkout session")
	}
	return s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}

func (c *StripeClient) VerifyEvent(payload []byte, sigHeader string) (*Event, error) {
	if c.webhookSecret == "" {
		return nil, errors.Wrap(ErrSignature, "webhook secret not configured")
	}

	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, c.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errors.Wrap(ErrSignature, err.Error())
	}

	if event.Type != "checkout.session.completed" {
		return &Event{Type: EventIgnored}, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, errors.Wrap(err, "decode checkout session from event")
	}
	return &Event{Type: EventCheckoutCompleted, SessionID: s.ID}, nil
}
