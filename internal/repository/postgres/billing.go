package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
)

// BillingRepository handles payment method references and billing history
type BillingRepository struct {
	db *DB
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(db *DB) *BillingRepository {
	return &BillingRepository{db: db}
}

// AddPaymentMethod stores a payment method reference
func (r *BillingRepository) AddPaymentMethod(ctx context.Context, method *domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods
			(id, user_id, stripe_payment_method_id, type, last4, brand, expiry_month, expiry_year, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		method.ID,
		method.UserID,
		method.StripePaymentMethodID,
		method.Type,
		method.Last4,
		method.Brand,
		method.ExpiryMonth,
		method.ExpiryYear,
		method.IsDefault,
		method.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add payment method: %w", err)
	}

	return nil
}

// GetPaymentMethod retrieves a payment method by ID
func (r *BillingRepository) GetPaymentMethod(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error) {
	query := `
		SELECT id, user_id, stripe_payment_method_id, type, last4, brand, expiry_month, expiry_year, is_default, created_at
		FROM payment_methods
		WHERE id = $1
	`

	var method domain.PaymentMethod
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&method.ID,
		&method.UserID,
		&method.StripePaymentMethodID,
		&method.Type,
		&method.Last4,
		&method.Brand,
		&method.ExpiryMonth,
		&method.ExpiryYear,
		&method.IsDefault,
		&method.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}

	return &method, nil
}

// ListPaymentMethods retrieves the user's payment methods
func (r *BillingRepository) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]domain.PaymentMethod, error) {
	query := `
		SELECT id, user_id, stripe_payment_method_id, type, last4, brand, expiry_month, expiry_year, is_default, created_at
		FROM payment_methods
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		var method domain.PaymentMethod
		if err := rows.Scan(
			&method.ID,
			&method.UserID,
			&method.StripePaymentMethodID,
			&method.Type,
			&method.Last4,
			&method.Brand,
			&method.ExpiryMonth,
			&method.ExpiryYear,
			&method.IsDefault,
			&method.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, method)
	}

	return methods, nil
}

// SetDefaultPaymentMethod marks one method as default and clears the others
func (r *BillingRepository) SetDefaultPaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE payment_methods SET is_default = FALSE WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("failed to clear default: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE payment_methods SET is_default = TRUE WHERE id = $1 AND user_id = $2`,
		methodID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set default: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemovePaymentMethod deletes a payment method reference
func (r *BillingRepository) RemovePaymentMethod(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM payment_methods WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to remove payment method: %w", err)
	}

	return nil
}

// AddBillingRecord stores a billing history line
func (r *BillingRepository) AddBillingRecord(ctx context.Context, record *domain.BillingRecord) error {
	query := `
		INSERT INTO billing_history
			(id, user_id, stripe_invoice_id, amount, currency, status, invoice_url, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.StripeInvoiceID,
		record.Amount,
		record.Currency,
		record.Status,
		record.InvoiceURL,
		record.PaidAt,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add billing record: %w", err)
	}

	return nil
}

// ListBillingHistory retrieves the user's billing records, newest first
func (r *BillingRepository) ListBillingHistory(ctx context.Context, userID uuid.UUID) ([]domain.BillingRecord, error) {
	query := `
		SELECT id, user_id, stripe_invoice_id, amount, currency, status, invoice_url, paid_at, created_at
		FROM billing_history
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing history: %w", err)
	}
	defer rows.Close()

	var records []domain.BillingRecord
	for rows.Next() {
		var record domain.BillingRecord
		var paidAt *time.Time
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.StripeInvoiceID,
			&record.Amount,
			&record.Currency,
			&record.Status,
			&record.InvoiceURL,
			&paidAt,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan billing record: %w", err)
		}
		if paidAt != nil {
			record.PaidAt = *paidAt
		}
		records = append(records, record)
	}

	return records, nil
}
