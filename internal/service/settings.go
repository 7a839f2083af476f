package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository"
	"github.com/nazmulhasanDEV/invoice/internal/security"
)

// SettingsService handles the caller-scoped settings area: profile fields,
// notification preferences and security preferences. Reads synthesize
// defaults for users without a stored row; only writes persist them.
type SettingsService struct {
	users     repository.UserRepository
	settings  repository.SettingsRepository
	encryptor *security.Encryptor
}

// NewSettingsService creates a new settings service
func NewSettingsService(users repository.UserRepository, settings repository.SettingsRepository, encryptor *security.Encryptor) *SettingsService {
	return &SettingsService{users: users, settings: settings, encryptor: encryptor}
}

// GetProfile returns the user's identity record
func (s *SettingsService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// UpdateProfile patches mutable profile fields
func (s *SettingsService) UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// GetNotificationPreferences returns stored preferences, or the defaults
// for users who never saved any.
func (s *SettingsService) GetNotificationPreferences(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreferences, error) {
	prefs, err := s.settings.GetNotificationPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}
	if prefs == nil {
		defaults := domain.DefaultNotificationPreferences(userID)
		return &defaults, nil
	}
	return prefs, nil
}

// UpdateNotificationPreferences applies a partial update on top of the
// stored row or the defaults, then persists the result.
func (s *SettingsService) UpdateNotificationPreferences(ctx context.Context, userID uuid.UUID, update domain.NotificationPreferencesUpdate) (*domain.NotificationPreferences, error) {
	prefs, err := s.GetNotificationPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.EmailNotifications != nil {
		prefs.EmailNotifications = *update.EmailNotifications
	}
	if update.InvoiceAlerts != nil {
		prefs.InvoiceAlerts = *update.InvoiceAlerts
	}
	if update.SeasonalAlerts != nil {
		prefs.SeasonalAlerts = *update.SeasonalAlerts
	}
	if update.TeamUpdates != nil {
		prefs.TeamUpdates = *update.TeamUpdates
	}
	if update.BillingAlerts != nil {
		prefs.BillingAlerts = *update.BillingAlerts
	}

	if err := s.settings.SaveNotificationPreferences(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to save notification preferences: %w", err)
	}
	return prefs, nil
}

// GetSecuritySettings returns stored settings or defaults
func (s *SettingsService) GetSecuritySettings(ctx context.Context, userID uuid.UUID) (*domain.SecuritySettings, error) {
	settings, err := s.settings.GetSecuritySettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get security settings: %w", err)
	}
	if settings == nil {
		defaults := domain.DefaultSecuritySettings(userID)
		return &defaults, nil
	}
	return settings, nil
}

// UpdateSecuritySettings applies a partial update. An incoming two-factor
// secret is encrypted before it is stored; it never leaves this service in
// the clear.
func (s *SettingsService) UpdateSecuritySettings(ctx context.Context, userID uuid.UUID, update domain.SecuritySettingsUpdate) (*domain.SecuritySettings, error) {
	settings, err := s.GetSecuritySettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.TwoFactorEnabled != nil {
		settings.TwoFactorEnabled = *update.TwoFactorEnabled
	}
	if update.TwoFactorSecret != nil {
		encrypted, err := s.encryptor.EncryptString(*update.TwoFactorSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt two-factor secret: %w", err)
		}
		settings.TwoFactorSecret = encrypted
	}
	if update.RecoveryEmail != nil {
		settings.RecoveryEmail = *update.RecoveryEmail
	}
	if update.SessionTimeout != nil {
		settings.SessionTimeout = *update.SessionTimeout
	}

	if err := s.settings.SaveSecuritySettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save security settings: %w", err)
	}
	return settings, nil
}
