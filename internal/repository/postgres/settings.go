package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
)

// SettingsRepository handles per-user preference rows, one of each kind per
// user, written with upserts keyed by user_id.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetNotificationPreferences retrieves stored preferences, nil when none exist
func (r *SettingsRepository) GetNotificationPreferences(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreferences, error) {
	query := `
		SELECT id, user_id, email_notifications, invoice_alerts, seasonal_alerts, team_updates, billing_alerts
		FROM notification_preferences
		WHERE user_id = $1
	`

	var prefs domain.NotificationPreferences
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&prefs.ID,
		&prefs.UserID,
		&prefs.EmailNotifications,
		&prefs.InvoiceAlerts,
		&prefs.SeasonalAlerts,
		&prefs.TeamUpdates,
		&prefs.BillingAlerts,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}

	return &prefs, nil
}

// SaveNotificationPreferences upserts the user's preference row
func (r *SettingsRepository) SaveNotificationPreferences(ctx context.Context, prefs *domain.NotificationPreferences) error {
	query := `
		INSERT INTO notification_preferences
			(id, user_id, email_notifications, invoice_alerts, seasonal_alerts, team_updates, billing_alerts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = $3,
			invoice_alerts = $4,
			seasonal_alerts = $5,
			team_updates = $6,
			billing_alerts = $7
	`

	_, err := r.db.Pool.Exec(ctx, query,
		prefs.ID,
		prefs.UserID,
		prefs.EmailNotifications,
		prefs.InvoiceAlerts,
		prefs.SeasonalAlerts,
		prefs.TeamUpdates,
		prefs.BillingAlerts,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification preferences: %w", err)
	}

	return nil
}

// GetSecuritySettings retrieves stored security settings, nil when none exist
func (r *SettingsRepository) GetSecuritySettings(ctx context.Context, userID uuid.UUID) (*domain.SecuritySettings, error) {
	query := `
		SELECT id, user_id, two_factor_enabled, two_factor_secret, recovery_email, session_timeout
		FROM security_settings
		WHERE user_id = $1
	`

	var settings domain.SecuritySettings
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.TwoFactorEnabled,
		&settings.TwoFactorSecret,
		&settings.RecoveryEmail,
		&settings.SessionTimeout,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get security settings: %w", err)
	}

	return &settings, nil
}

// SaveSecuritySettings upserts the user's security settings row
func (r *SettingsRepository) SaveSecuritySettings(ctx context.Context, settings *domain.SecuritySettings) error {
	query := `
		INSERT INTO security_settings
			(id, user_id, two_factor_enabled, two_factor_secret, recovery_email, session_timeout)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			two_factor_enabled = $3,
			two_factor_secret = $4,
			recovery_email = $5,
			session_timeout = $6
	`

	_, err := r.db.Pool.Exec(ctx, query,
		settings.ID,
		settings.UserID,
		settings.TwoFactorEnabled,
		settings.TwoFactorSecret,
		settings.RecoveryEmail,
		settings.SessionTimeout,
	)
	if err != nil {
		return fmt.Errorf("failed to save security settings: %w", err)
	}

	return nil
}
