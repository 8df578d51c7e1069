package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketline_registrations_created_total",
			Help: "Total number of pending registrations created",
		},
	)

	PaymentsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketline_payments_confirmed_total",
			Help: "Total number of paid transitions applied, by confirmation source",
		},
		[]string{"source"},
	)

	WebhookSignatureFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketline_webhook_signature_failures_total",
			Help: "Total number of webhook deliveries rejected for a bad signature",
		},
	)

	WebhookUnmatchedSessions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketline_webhook_unmatched_sessions_total",
			Help: "Total number of completed-checkout events with no matching registration",
		},
	)
)
