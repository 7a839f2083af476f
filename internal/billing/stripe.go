package billing

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type stripeGateway struct {
	api *client.API
}

func newStripeGateway(secretKey string) *stripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeGateway{api: api}
}

func (g *stripeGateway) CreateCustomer(ctx context.Context, email, userID string) (string, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	if email != "" {
		params.Email = stripe.String(email)
	}
	params.AddMetadata("user_id", userID)

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe customer: %w", err)
	}
	return customer.ID, nil
}

func (g *stripeGateway) CreateSetupIntent(ctx context.Context, customerID string) (string, error) {
	params := &stripe.SetupIntentParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	intent, err := g.api.SetupIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create setup intent: %w", err)
	}
	return intent.ClientSecret, nil
}

func (g *stripeGateway) AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*Card, error) {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	pm, err := g.api.PaymentMethods.Attach(paymentMethodID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to attach payment method: %w", err)
	}

	card := &Card{Type: string(pm.Type)}
	if pm.Card != nil {
		card.Last4 = pm.Card.Last4
		card.Brand = string(pm.Card.Brand)
		card.ExpiryMonth = int(pm.Card.ExpMonth)
		card.ExpiryYear = int(pm.Card.ExpYear)
	}
	return card, nil
}

func (g *stripeGateway) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	params := &stripe.PaymentMethodDetachParams{}
	params.Context = ctx

	if _, err := g.api.PaymentMethods.Detach(paymentMethodID, params); err != nil {
		return fmt.Errorf("failed to detach payment method: %w", err)
	}
	return nil
}
