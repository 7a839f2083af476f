package rbac

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
)

// DenyReason classifies why an authorization decision denied.
type DenyReason string

const (
	ReasonNotAMember             DenyReason = "not_a_member"
	ReasonInsufficientPermission DenyReason = "insufficient_permission"
)

// Decision is the outcome of an authorization check. Denials are ordinary
// values carrying a reason, never errors; an error return means the
// membership lookup itself failed.
type Decision struct {
	Allowed bool
	Role    domain.Role
	Reason  DenyReason
}

// MembershipReader resolves a user's role within a team. The second return
// is false when the user has no membership row, which is a normal miss.
type MembershipReader interface {
	GetUserRole(ctx context.Context, userID, teamID uuid.UUID) (domain.Role, bool, error)
}

// Guard combines the membership store and the permission table into
// allow/deny decisions for team-scoped actions.
type Guard struct {
	members MembershipReader
	table   *Table
}

// NewGuard creates an authorization guard
func NewGuard(members MembershipReader, table *Table) *Guard {
	return &Guard{members: members, table: table}
}

// ResolveRole returns the actor's role in the team, or false for non-members.
func (g *Guard) ResolveRole(ctx context.Context, userID, teamID uuid.UUID) (domain.Role, bool, error) {
	return g.members.GetUserRole(ctx, userID, teamID)
}

// Authorize decides whether userID may perform perm within teamID.
func (g *Guard) Authorize(ctx context.Context, userID, teamID uuid.UUID, perm domain.Permission) (Decision, error) {
	role, ok, err := g.members.GetUserRole(ctx, userID, teamID)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to resolve role: %w", err)
	}
	if !ok {
		return Decision{Reason: ReasonNotAMember}, nil
	}

	if !g.table.Has(role, perm) {
		return Decision{Role: role, Reason: ReasonInsufficientPermission}, nil
	}

	return Decision{Allowed: true, Role: role}, nil
}
