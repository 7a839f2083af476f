package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
)

const (
	uniqueViolation  = "23505"
	singleOwnerIndex = "team_members_single_owner"
)

// TeamRepository handles team and membership data access. The schema enforces
// membership uniqueness with a unique index on (team_id, user_id) and the
// single-owner rule with a partial unique index on (team_id) WHERE role = 'owner'.
type TeamRepository struct {
	db *DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// CreateTeam persists the team and its owner membership in one transaction
func (r *TeamRepository) CreateTeam(ctx context.Context, team *domain.Team, owner *domain.TeamMember) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO teams (id, name, owner_id, created_at) VALUES ($1, $2, $3, $4)`,
		team.ID, team.Name, team.OwnerID, team.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO team_members (id, team_id, user_id, role, status, joined_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		owner.ID, owner.TeamID, owner.UserID, owner.Role, owner.Status, owner.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTeam retrieves a team by ID
func (r *TeamRepository) GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	query := `SELECT id, name, owner_id, created_at FROM teams WHERE id = $1`

	var team domain.Team
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.OwnerID,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// ListTeamsByUser retrieves all teams the user belongs to
func (r *TeamRepository) ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Team, error) {
	query := `
		SELECT t.id, t.name, t.owner_id, t.created_at
		FROM teams t
		INNER JOIN team_members tm ON t.id = tm.team_id
		WHERE tm.user_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, nil
}

// DeleteTeam deletes a team; memberships and invitations cascade
func (r *TeamRepository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM teams WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// AddMember adds a member to a team
func (r *TeamRepository) AddMember(ctx context.Context, member *domain.TeamMember) error {
	query := `
		INSERT INTO team_members (id, team_id, user_id, role, status, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		member.ID,
		member.TeamID,
		member.UserID,
		member.Role,
		member.Status,
		member.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == singleOwnerIndex {
				return domain.ErrOwnerProtected
			}
			return domain.ErrAlreadyMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// GetMember retrieves a membership by its ID
func (r *TeamRepository) GetMember(ctx context.Context, memberID uuid.UUID) (*domain.TeamMember, error) {
	query := `
		SELECT id, team_id, user_id, role, status, joined_at
		FROM team_members
		WHERE id = $1
	`

	return r.scanMember(r.db.Pool.QueryRow(ctx, query, memberID))
}

// ListMembers retrieves all memberships of a team
func (r *TeamRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error) {
	query := `
		SELECT id, team_id, user_id, role, status, joined_at
		FROM team_members
		WHERE team_id = $1
		ORDER BY joined_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var member domain.TeamMember
		if err := rows.Scan(
			&member.ID,
			&member.TeamID,
			&member.UserID,
			&member.Role,
			&member.Status,
			&member.JoinedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, nil
}

// UpdateMemberRole changes a membership's role and returns the updated row
func (r *TeamRepository) UpdateMemberRole(ctx context.Context, memberID uuid.UUID, role domain.Role) (*domain.TeamMember, error) {
	query := `
		UPDATE team_members
		SET role = $2
		WHERE id = $1
		RETURNING id, team_id, user_id, role, status, joined_at
	`

	member, err := r.scanMember(r.db.Pool.QueryRow(ctx, query, memberID, role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == singleOwnerIndex {
			return nil, domain.ErrOwnerProtected
		}
		return nil, err
	}

	return member, nil
}

// RemoveMember deletes a membership
func (r *TeamRepository) RemoveMember(ctx context.Context, memberID uuid.UUID) error {
	query := `DELETE FROM team_members WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, memberID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// GetUserRole resolves the user's role in a team; false means no membership
func (r *TeamRepository) GetUserRole(ctx context.Context, userID, teamID uuid.UUID) (domain.Role, bool, error) {
	query := `SELECT role FROM team_members WHERE user_id = $1 AND team_id = $2`

	var role domain.Role
	err := r.db.Pool.QueryRow(ctx, query, userID, teamID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get user role: %w", err)
	}

	return role, true, nil
}

func (r *TeamRepository) scanMember(row pgx.Row) (*domain.TeamMember, error) {
	var member domain.TeamMember
	err := row.Scan(
		&member.ID,
		&member.TeamID,
		&member.UserID,
		&member.Role,
		&member.Status,
		&member.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}
