package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
)

// InvitationRepository handles invitation data access. Expiry is applied in
// the read queries; expired rows linger until deleted but are never returned.
type InvitationRepository struct {
	db *DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create creates a new invitation
func (r *InvitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	query := `
		INSERT INTO invitations (id, team_id, email, role, token, invited_by, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		invitation.ID,
		invitation.TeamID,
		invitation.Email,
		invitation.Role,
		invitation.Token,
		invitation.InvitedBy,
		invitation.ExpiresAt,
		invitation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

// GetByID retrieves an invitation regardless of expiry; revocation must
// reach expired rows too
func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
	query := `
		SELECT id, team_id, email, role, token, invited_by, expires_at, created_at
		FROM invitations
		WHERE id = $1
	`

	var invitation domain.Invitation
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&invitation.ID,
		&invitation.TeamID,
		&invitation.Email,
		&invitation.Role,
		&invitation.Token,
		&invitation.InvitedBy,
		&invitation.ExpiresAt,
		&invitation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &invitation, nil
}

// GetByToken retrieves a still-pending invitation by its token
func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	query := `
		SELECT id, team_id, email, role, token, invited_by, expires_at, created_at
		FROM invitations
		WHERE token = $1 AND expires_at > NOW()
	`

	var invitation domain.Invitation
	err := r.db.Pool.QueryRow(ctx, query, token).Scan(
		&invitation.ID,
		&invitation.TeamID,
		&invitation.Email,
		&invitation.Role,
		&invitation.Token,
		&invitation.InvitedBy,
		&invitation.ExpiresAt,
		&invitation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &invitation, nil
}

// ListPending retrieves the team's unexpired invitations
func (r *InvitationRepository) ListPending(ctx context.Context, teamID uuid.UUID) ([]domain.Invitation, error) {
	query := `
		SELECT id, team_id, email, role, token, invited_by, expires_at, created_at
		FROM invitations
		WHERE team_id = $1 AND expires_at > NOW()
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		var invitation domain.Invitation
		if err := rows.Scan(
			&invitation.ID,
			&invitation.TeamID,
			&invitation.Email,
			&invitation.Role,
			&invitation.Token,
			&invitation.InvitedBy,
			&invitation.ExpiresAt,
			&invitation.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, invitation)
	}

	return invitations, nil
}

// Delete deletes an invitation; deleting an unknown id is not an error
func (r *InvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invitations WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}

	return nil
}
