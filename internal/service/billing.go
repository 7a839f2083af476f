package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/billing"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository"
)

// ErrNoCustomer means the user has no processor customer record yet; the
// caller must create a setup intent first.
var ErrNoCustomer = errors.New("no billing customer for user")

// BillingService handles payment methods and billing history. Stripe calls
// go through the gateway; stored records only carry display fields and the
// processor's opaque ids.
type BillingService struct {
	gateway billing.Gateway
	users   repository.UserRepository
	records repository.BillingRepository
}

// NewBillingService creates a new billing service
func NewBillingService(gateway billing.Gateway, users repository.UserRepository, records repository.BillingRepository) *BillingService {
	return &BillingService{gateway: gateway, users: users, records: records}
}

// CreateSetupIntent ensures the user has a processor customer and returns
// the client secret for collecting a payment method.
func (s *BillingService) CreateSetupIntent(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", domain.ErrNotFound
	}

	customerID := user.StripeCustomerID
	if customerID == "" {
		customerID, err = s.gateway.CreateCustomer(ctx, user.Email, user.ID.String())
		if err != nil {
			return "", err
		}
		if err := s.users.SetStripeCustomer(ctx, user.ID, customerID); err != nil {
			return "", fmt.Errorf("failed to store customer id: %w", err)
		}
	}

	return s.gateway.CreateSetupIntent(ctx, customerID)
}

// AttachPaymentMethod binds a collected Stripe payment method to the user
// and stores its display fields.
func (s *BillingService) AttachPaymentMethod(ctx context.Context, userID uuid.UUID, paymentMethodID string) (*domain.PaymentMethod, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.StripeCustomerID == "" {
		return nil, ErrNoCustomer
	}

	card, err := s.gateway.AttachPaymentMethod(ctx, user.StripeCustomerID, paymentMethodID)
	if err != nil {
		return nil, err
	}

	method := &domain.PaymentMethod{
		ID:                    uuid.New(),
		UserID:                userID,
		StripePaymentMethodID: paymentMethodID,
		Type:                  card.Type,
		Last4:                 card.Last4,
		Brand:                 card.Brand,
		ExpiryMonth:           card.ExpiryMonth,
		ExpiryYear:            card.ExpiryYear,
		CreatedAt:             time.Now(),
	}

	if err := s.records.AddPaymentMethod(ctx, method); err != nil {
		return nil, fmt.Errorf("failed to store payment method: %w", err)
	}

	return method, nil
}

// ListPaymentMethods returns the user's stored payment methods
func (s *BillingService) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]domain.PaymentMethod, error) {
	methods, err := s.records.ListPaymentMethods(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

// SetDefaultPaymentMethod marks one method as default, clearing the rest
func (s *BillingService) SetDefaultPaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	return s.records.SetDefaultPaymentMethod(ctx, userID, methodID)
}

// RemovePaymentMethod detaches the method from the processor and deletes
// the stored record.
func (s *BillingService) RemovePaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	method, err := s.records.GetPaymentMethod(ctx, methodID)
	if err != nil {
		return fmt.Errorf("failed to get payment method: %w", err)
	}
	if method == nil || method.UserID != userID {
		return domain.ErrNotFound
	}

	if err := s.gateway.DetachPaymentMethod(ctx, method.StripePaymentMethodID); err != nil {
		return err
	}

	return s.records.RemovePaymentMethod(ctx, methodID)
}

// ListHistory returns the user's billing records, newest first
func (s *BillingService) ListHistory(ctx context.Context, userID uuid.UUID) ([]domain.BillingRecord, error) {
	records, err := s.records.ListBillingHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing history: %w", err)
	}
	return records, nil
}
