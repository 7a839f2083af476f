package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a stored card reference; the PAN never touches this system,
// only the Stripe payment method id and display fields.
type PaymentMethod struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	StripePaymentMethodID string    `json:"-"`
	Type                  string    `json:"type"`
	Last4                 string    `json:"last4"`
	Brand                 string    `json:"brand,omitempty"`
	ExpiryMonth           int       `json:"expiry_month,omitempty"`
	ExpiryYear            int       `json:"expiry_year,omitempty"`
	IsDefault             bool      `json:"is_default"`
	CreatedAt             time.Time `json:"created_at"`
}

// PaymentMethodAttach represents a request to attach a Stripe payment method
type PaymentMethodAttach struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

// BillingRecord is one line of the user's billing history
type BillingRecord struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	StripeInvoiceID string    `json:"stripe_invoice_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	InvoiceURL      string    `json:"invoice_url,omitempty"`
	PaidAt          time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
