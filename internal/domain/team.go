package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a tenant team. OwnerID references the primordial owner;
// it only changes through an explicit ownership transfer, never a role edit.
type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamCreate represents team creation data
type TeamCreate struct {
	Name string `json:"name" validate:"required,max=255"`
}

// Membership statuses
const (
	MemberStatusActive = "active"
)

// TeamMember links exactly one user to exactly one team with one role.
type TeamMember struct {
	ID       uuid.UUID `json:"id"`
	TeamID   uuid.UUID `json:"team_id"`
	UserID   uuid.UUID `json:"user_id"`
	Role     Role      `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

// MemberWithUser is a membership joined with display metadata for listings.
// The user part is informational only and never feeds authorization.
type MemberWithUser struct {
	TeamMember
	User *User `json:"user,omitempty"`
}

// MemberRoleUpdate represents a role change request
type MemberRoleUpdate struct {
	Role string `json:"role" validate:"required"`
}

// Invitation is a time-boxed, tokenized offer to join a team with a preset
// role. Invitations are only created and deleted, never mutated.
type Invitation struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	InvitedBy uuid.UUID `json:"invited_by"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Pending reports whether the invitation is still consumable at t.
func (i Invitation) Pending(t time.Time) bool {
	return i.ExpiresAt.After(t)
}

// InvitationCreate represents an invite request
type InvitationCreate struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role" validate:"required"`
}

// InvitationAccept carries the token being consumed
type InvitationAccept struct {
	Token string `json:"token" validate:"required"`
}
