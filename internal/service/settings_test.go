package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository/memory"
	"github.com/nazmulhasanDEV/invoice/internal/security"
	"github.com/nazmulhasanDEV/invoice/internal/service"
)

func newSettingsFixture(t *testing.T) (*service.SettingsService, *memory.Store, *security.Encryptor) {
	t.Helper()
	store := memory.NewStore()
	key, err := security.GenerateKey()
	require.NoError(t, err)
	encryptor, err := security.NewEncryptor(key)
	require.NoError(t, err)
	return service.NewSettingsService(store.Users(), store.Settings(), encryptor), store, encryptor
}

func boolPtr(b bool) *bool       { return &b }
func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }

func TestSettingsService_Profile(t *testing.T) {
	svc, store, _ := newSettingsFixture(t)
	ctx := context.Background()

	user := &domain.User{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Users().Create(ctx, user))

	t.Run("get", func(t *testing.T) {
		got, err := svc.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		got, err := svc.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{
			FullName: strPtr("Alice Liddell"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice Liddell", got.FullName)
		assert.Equal(t, "alice@example.com", got.Email)
	})
}

func TestSettingsService_NotificationPreferences(t *testing.T) {
	svc, _, _ := newSettingsFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("defaults before first write", func(t *testing.T) {
		prefs, err := svc.GetNotificationPreferences(ctx, userID)
		require.NoError(t, err)
		assert.True(t, prefs.EmailNotifications)
		assert.True(t, prefs.InvoiceAlerts)
		assert.True(t, prefs.BillingAlerts)
	})

	t.Run("partial update persists", func(t *testing.T) {
		updated, err := svc.UpdateNotificationPreferences(ctx, userID, domain.NotificationPreferencesUpdate{
			SeasonalAlerts: boolPtr(false),
		})
		require.NoError(t, err)
		assert.False(t, updated.SeasonalAlerts)
		assert.True(t, updated.EmailNotifications)

		again, err := svc.GetNotificationPreferences(ctx, userID)
		require.NoError(t, err)
		assert.False(t, again.SeasonalAlerts)
	})
}

func TestSettingsService_SecuritySettings(t *testing.T) {
	svc, store, encryptor := newSettingsFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("defaults before first write", func(t *testing.T) {
		settings, err := svc.GetSecuritySettings(ctx, userID)
		require.NoError(t, err)
		assert.False(t, settings.TwoFactorEnabled)
		assert.Equal(t, 30, settings.SessionTimeout)
	})

	t.Run("two-factor secret is stored encrypted", func(t *testing.T) {
		secret := "JBSWY3DPEHPK3PXP"
		updated, err := svc.UpdateSecuritySettings(ctx, userID, domain.SecuritySettingsUpdate{
			TwoFactorEnabled: boolPtr(true),
			TwoFactorSecret:  strPtr(secret),
			SessionTimeout:   intPtr(60),
		})
		require.NoError(t, err)
		assert.True(t, updated.TwoFactorEnabled)
		assert.Equal(t, 60, updated.SessionTimeout)
		assert.NotEqual(t, secret, updated.TwoFactorSecret)

		stored, err := store.Settings().GetSecuritySettings(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, secret, stored.TwoFactorSecret)

		decrypted, err := encryptor.DecryptString(stored.TwoFactorSecret)
		require.NoError(t, err)
		assert.Equal(t, secret, decrypted)
	})
}
