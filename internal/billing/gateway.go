// Package billing wraps the payment processor behind a small gateway
// interface so handlers and tests never touch the Stripe SDK directly, and
// deployments without Stripe credentials degrade to an explicit
// not-configured error instead of a nil pointer.
package billing

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the disabled gateway when no Stripe
// secret key was provided.
var ErrNotConfigured = errors.New("stripe is not configured")

// Card is the displayable subset of an attached payment method
type Card struct {
	Type        string
	Last4       string
	Brand       string
	ExpiryMonth int
	ExpiryYear  int
}

// Gateway is the payment processor surface this service needs
type Gateway interface {
	// CreateCustomer registers the user with the processor and returns the
	// customer id to persist on the user record.
	CreateCustomer(ctx context.Context, email, userID string) (string, error)
	// CreateSetupIntent returns the client secret the frontend needs to
	// collect a payment method.
	CreateSetupIntent(ctx context.Context, customerID string) (string, error)
	// AttachPaymentMethod binds a collected payment method to the customer
	// and returns its display fields.
	AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*Card, error)
	// DetachPaymentMethod releases a payment method from its customer.
	DetachPaymentMethod(ctx context.Context, paymentMethodID string) error
}

// NewGateway returns the Stripe-backed gateway, or the disabled one when
// secretKey is empty.
func NewGateway(secretKey string) Gateway {
	if secretKey == "" {
		return disabledGateway{}
	}
	return newStripeGateway(secretKey)
}

type disabledGateway struct{}

func (disabledGateway) CreateCustomer(ctx context.Context, email, userID string) (string, error) {
	return "", ErrNotConfigured
}

func (disabledGateway) CreateSetupIntent(ctx context.Context, customerID string) (string, error) {
	return "", ErrNotConfigured
}

func (disabledGateway) AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*Card, error) {
	return nil, ErrNotConfigured
}

func (disabledGateway) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	return ErrNotConfigured
}
