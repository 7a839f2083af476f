package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazmulhasanDEV/invoice/internal/billing"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository/memory"
	"github.com/nazmulhasanDEV/invoice/internal/service"
)

// fakeGateway records calls instead of reaching Stripe
type fakeGateway struct {
	customers int
	detached  []string
}

func (g *fakeGateway) CreateCustomer(ctx context.Context, email, userID string) (string, error) {
	g.customers++
	return "cus_test", nil
}

func (g *fakeGateway) CreateSetupIntent(ctx context.Context, customerID string) (string, error) {
	return "seti_secret", nil
}

func (g *fakeGateway) AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*billing.Card, error) {
	return &billing.Card{Type: "card", Last4: "4242", Brand: "visa", ExpiryMonth: 12, ExpiryYear: 2030}, nil
}

func (g *fakeGateway) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	g.detached = append(g.detached, paymentMethodID)
	return nil
}

func newBillingFixture(t *testing.T) (*service.BillingService, *memory.Store, *fakeGateway, uuid.UUID) {
	t.Helper()
	store := memory.NewStore()
	gateway := &fakeGateway{}
	svc := service.NewBillingService(gateway, store.Users(), store.Billing())

	user := &domain.User{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Users().Create(context.Background(), user))

	return svc, store, gateway, user.ID
}

func TestBillingService_SetupIntentCreatesCustomerOnce(t *testing.T) {
	svc, store, gateway, userID := newBillingFixture(t)
	ctx := context.Background()

	secret, err := svc.CreateSetupIntent(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "seti_secret", secret)
	assert.Equal(t, 1, gateway.customers)

	user, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "cus_test", user.StripeCustomerID)

	// Second intent reuses the stored customer
	_, err = svc.CreateSetupIntent(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.customers)
}

func TestBillingService_AttachRequiresCustomer(t *testing.T) {
	svc, _, _, userID := newBillingFixture(t)
	ctx := context.Background()

	_, err := svc.AttachPaymentMethod(ctx, userID, "pm_123")
	assert.ErrorIs(t, err, service.ErrNoCustomer)
}

func TestBillingService_PaymentMethodLifecycle(t *testing.T) {
	svc, _, gateway, userID := newBillingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateSetupIntent(ctx, userID)
	require.NoError(t, err)

	method, err := svc.AttachPaymentMethod(ctx, userID, "pm_123")
	require.NoError(t, err)
	assert.Equal(t, "4242", method.Last4)
	assert.Equal(t, "visa", method.Brand)

	methods, err := svc.ListPaymentMethods(ctx, userID)
	require.NoError(t, err)
	require.Len(t, methods, 1)

	require.NoError(t, svc.SetDefaultPaymentMethod(ctx, userID, method.ID))
	methods, err = svc.ListPaymentMethods(ctx, userID)
	require.NoError(t, err)
	assert.True(t, methods[0].IsDefault)

	require.NoError(t, svc.RemovePaymentMethod(ctx, userID, method.ID))
	assert.Equal(t, []string{"pm_123"}, gateway.detached)

	methods, err = svc.ListPaymentMethods(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, methods)
}

func TestBillingService_RemoveForeignMethodDenied(t *testing.T) {
	svc, _, gateway, userID := newBillingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateSetupIntent(ctx, userID)
	require.NoError(t, err)
	method, err := svc.AttachPaymentMethod(ctx, userID, "pm_123")
	require.NoError(t, err)

	err = svc.RemovePaymentMethod(ctx, uuid.New(), method.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, gateway.detached)
}

func TestBillingService_DisabledGateway(t *testing.T) {
	store := memory.NewStore()
	svc := service.NewBillingService(billing.NewGateway(""), store.Users(), store.Billing())
	ctx := context.Background()

	user := &domain.User{ID: uuid.New(), Username: "alice", Email: "a@x.com", CreatedAt: time.Now()}
	require.NoError(t, store.Users().Create(ctx, user))

	_, err := svc.CreateSetupIntent(ctx, user.ID)
	assert.ErrorIs(t, err, billing.ErrNotConfigured)
}

func TestBillingService_History(t *testing.T) {
	svc, store, _, userID := newBillingFixture(t)
	ctx := context.Background()

	record := &domain.BillingRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    2900,
		Currency:  "usd",
		Status:    "paid",
		PaidAt:    time.Now(),
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Billing().AddBillingRecord(ctx, record))

	records, err := svc.ListHistory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(2900), records[0].Amount)
}
