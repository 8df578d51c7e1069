package models

import (
	"time"
)

const (
	// UnitPriceCents is the flat price of a single ticket.
	UnitPriceCents = 5000

	MinTickets = 1
	MaxTickets = 20
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Registration is one ticket order, tracked from form submission through
// payment confirmation. StripeSessionID is attached in a second step once
// the provider has issued a checkout session; PaymentStatus only ever moves
// pending -> paid.
type Registration struct {
	ID              uint    `gorm:"primaryKey"`
	FirstName       string  `gorm:"not null"`
	LastName        string  `gorm:"not null"`
	Email           string  `gorm:"not null"`
	Phone           string  `gorm:"not null"`
	NumTickets      int     `gorm:"not null"`
	TotalAmount     int     `gorm:"not null"`
	PaymentStatus   string  `gorm:"not null;default:'pending'"`
	StripeSessionID *string `gorm:"index"`
	CheckedIn       bool    `gorm:"not null;default:false"`
	CreatedAt       time.Time
}

func (Registration) TableName() string {
	return "registrations"
}

func (r *Registration) Paid() bool {
	return r.PaymentStatus == StatusPaid
}
