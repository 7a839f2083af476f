// Package repository defines the storage contracts for the invoice platform.
// Two implementations exist: an in-memory store for development, demos and
// tests, and a Postgres store for real deployments. Services depend only on
// these interfaces, so backends swap without touching authorization logic.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
)

// UserRepository handles identity records. Lookups return (nil, nil) when the
// record does not exist; an error means the lookup itself failed.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error)
	SetStripeCustomer(ctx context.Context, id uuid.UUID, customerID string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// TeamRepository handles teams and memberships with referential consistency.
// Implementations must uphold two invariants at every mutation: a team always
// has exactly one owner membership whose user matches Team.OwnerID, and
// (team, user) pairs are unique across memberships.
type TeamRepository interface {
	// CreateTeam persists the team and its owner membership atomically.
	CreateTeam(ctx context.Context, team *domain.Team, owner *domain.TeamMember) error
	GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error

	// AddMember fails with domain.ErrAlreadyMember on a duplicate (team, user) pair.
	AddMember(ctx context.Context, member *domain.TeamMember) error
	GetMember(ctx context.Context, memberID uuid.UUID) (*domain.TeamMember, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error)
	UpdateMemberRole(ctx context.Context, memberID uuid.UUID, role domain.Role) (*domain.TeamMember, error)
	RemoveMember(ctx context.Context, memberID uuid.UUID) error

	// GetUserRole returns false when the user has no membership in the team.
	GetUserRole(ctx context.Context, userID, teamID uuid.UUID) (domain.Role, bool, error)
}

// InvitationRepository handles pending team invitations. Invitations are
// append-and-delete only; expiry is a read-time predicate, not a sweep.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	// GetByID returns the invitation regardless of expiry; revocation must
	// reach expired rows too.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error)
	GetByToken(ctx context.Context, token string) (*domain.Invitation, error)
	ListPending(ctx context.Context, teamID uuid.UUID) ([]domain.Invitation, error)
	// Delete is idempotent; deleting an unknown id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BillingRepository handles stored payment method references and billing history.
type BillingRepository interface {
	AddPaymentMethod(ctx context.Context, method *domain.PaymentMethod) error
	GetPaymentMethod(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]domain.PaymentMethod, error)
	SetDefaultPaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error
	RemovePaymentMethod(ctx context.Context, id uuid.UUID) error

	AddBillingRecord(ctx context.Context, record *domain.BillingRecord) error
	ListBillingHistory(ctx context.Context, userID uuid.UUID) ([]domain.BillingRecord, error)
}

// SettingsRepository handles per-user notification and security preferences.
// Save performs an upsert keyed by user id.
type SettingsRepository interface {
	GetNotificationPreferences(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreferences, error)
	SaveNotificationPreferences(ctx context.Context, prefs *domain.NotificationPreferences) error
	GetSecuritySettings(ctx context.Context, userID uuid.UUID) (*domain.SecuritySettings, error)
	SaveSecuritySettings(ctx context.Context, settings *domain.SecuritySettings) error
}

// Store bundles all repositories behind one constructor per backend.
type Store interface {
	Users() UserRepository
	Teams() TeamRepository
	Invitations() InvitationRepository
	Billing() BillingRepository
	Settings() SettingsRepository
}
