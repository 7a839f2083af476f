package domain

import "github.com/google/uuid"

// NotificationPreferences holds per-user notification toggles.
// A user without a stored row gets these defaults on first read.
type NotificationPreferences struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	EmailNotifications bool      `json:"email_notifications"`
	InvoiceAlerts      bool      `json:"invoice_alerts"`
	SeasonalAlerts     bool      `json:"seasonal_alerts"`
	TeamUpdates        bool      `json:"team_updates"`
	BillingAlerts      bool      `json:"billing_alerts"`
}

// DefaultNotificationPreferences returns the initial toggle set for a user
func DefaultNotificationPreferences(userID uuid.UUID) NotificationPreferences {
	return NotificationPreferences{
		ID:                 uuid.New(),
		UserID:             userID,
		EmailNotifications: true,
		InvoiceAlerts:      true,
		SeasonalAlerts:     true,
		TeamUpdates:        true,
		BillingAlerts:      true,
	}
}

// NotificationPreferencesUpdate is a partial update; nil leaves a toggle unchanged
type NotificationPreferencesUpdate struct {
	EmailNotifications *bool `json:"email_notifications,omitempty"`
	InvoiceAlerts      *bool `json:"invoice_alerts,omitempty"`
	SeasonalAlerts     *bool `json:"seasonal_alerts,omitempty"`
	TeamUpdates        *bool `json:"team_updates,omitempty"`
	BillingAlerts      *bool `json:"billing_alerts,omitempty"`
}

// SecuritySettings holds per-user security preferences. TwoFactorSecret is
// stored AES-GCM encrypted and never serialized to clients.
type SecuritySettings struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	TwoFactorSecret  string    `json:"-"`
	RecoveryEmail    string    `json:"recovery_email,omitempty"`
	SessionTimeout   int       `json:"session_timeout"`
}

// DefaultSecuritySettings returns the initial security posture for a user
func DefaultSecuritySettings(userID uuid.UUID) SecuritySettings {
	return SecuritySettings{
		ID:             uuid.New(),
		UserID:         userID,
		SessionTimeout: 30,
	}
}

// SecuritySettingsUpdate is a partial update; nil leaves a field unchanged
type SecuritySettingsUpdate struct {
	TwoFactorEnabled *bool   `json:"two_factor_enabled,omitempty"`
	TwoFactorSecret  *string `json:"two_factor_secret,omitempty"`
	RecoveryEmail    *string `json:"recovery_email,omitempty" validate:"omitempty,email"`
	SessionTimeout   *int    `json:"session_timeout,omitempty" validate:"omitempty,min=5,max=1440"`
}
