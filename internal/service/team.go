package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository"
	"github.com/nazmulhasanDEV/invoice/internal/security"
)

// TeamService handles teams, memberships and invitations. The generic
// permission check happens in the authorization middleware; this service
// enforces the narrower owner-protection rules that the permission table
// alone cannot express.
type TeamService struct {
	teams       repository.TeamRepository
	invitations repository.InvitationRepository
	users       repository.UserRepository
	inviteTTL   time.Duration
}

// NewTeamService creates a new team service
func NewTeamService(
	teams repository.TeamRepository,
	invitations repository.InvitationRepository,
	users repository.UserRepository,
	inviteTTL time.Duration,
) *TeamService {
	return &TeamService{
		teams:       teams,
		invitations: invitations,
		users:       users,
		inviteTTL:   inviteTTL,
	}
}

// Create creates a team owned by ownerID, with the owner membership written
// atomically alongside the team record.
func (s *TeamService) Create(ctx context.Context, ownerID uuid.UUID, input domain.TeamCreate) (*domain.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrEmptyName
	}

	now := time.Now()
	team := &domain.Team{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		OwnerID:   ownerID,
		CreatedAt: now,
	}
	owner := &domain.TeamMember{
		ID:       uuid.New(),
		TeamID:   team.ID,
		UserID:   ownerID,
		Role:     domain.RoleOwner,
		Status:   domain.MemberStatusActive,
		JoinedAt: now,
	}

	if err := s.teams.CreateTeam(ctx, team, owner); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// Get retrieves a team the caller belongs to
func (s *TeamService) Get(ctx context.Context, userID, teamID uuid.UUID) (*domain.Team, error) {
	_, isMember, err := s.teams.GetUserRole(ctx, userID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, domain.ErrNotAMember
	}

	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}

	return team, nil
}

// ListByUser retrieves all teams the user is a member of
func (s *TeamService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Team, error) {
	teams, err := s.teams.ListTeamsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// Delete removes a team and its memberships. Only the recorded owner may
// delete; ownership transfer is a separate privileged operation.
func (s *TeamService) Delete(ctx context.Context, actorID, teamID uuid.UUID) error {
	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to get team: %w", err)
	}
	if team == nil {
		return domain.ErrNotFound
	}
	if team.OwnerID != actorID {
		return domain.ErrOwnerProtected
	}

	return s.teams.DeleteTeam(ctx, teamID)
}

// ListMembers returns team memberships joined with user display metadata.
// The user data is informational only; authorization depends solely on role.
func (s *TeamService) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.MemberWithUser, error) {
	members, err := s.teams.ListMembers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	out := make([]domain.MemberWithUser, 0, len(members))
	for _, m := range members {
		user, err := s.users.GetByID(ctx, m.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve member user: %w", err)
		}
		out = append(out, domain.MemberWithUser{TeamMember: m, User: user})
	}
	return out, nil
}

// ResolveRole returns the user's role in a team, false for non-members
func (s *TeamService) ResolveRole(ctx context.Context, userID, teamID uuid.UUID) (domain.Role, bool, error) {
	return s.teams.GetUserRole(ctx, userID, teamID)
}

// UpdateMemberRole changes a membership's role. Two rules sit above the
// generic manage_team permission: a membership currently holding the owner
// role can never be edited here, and the owner role can never be granted.
// The only owner membership is the one created with the team; a second one
// would no longer match Team.OwnerID.
func (s *TeamService) UpdateMemberRole(ctx context.Context, actorID, teamID, memberID uuid.UUID, roleStr string) (*domain.TeamMember, error) {
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleOwner {
		return nil, domain.ErrOwnerProtected
	}

	member, err := s.teams.GetMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil || member.TeamID != teamID {
		return nil, domain.ErrNotFound
	}

	if member.Role == domain.RoleOwner {
		return nil, domain.ErrOwnerProtected
	}

	updated, err := s.teams.UpdateMemberRole(ctx, memberID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

// RemoveMember deletes a membership. The owner cannot be removed; ownership
// must be transferred first.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, memberID uuid.UUID) error {
	member, err := s.teams.GetMember(ctx, memberID)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil || member.TeamID != teamID {
		return domain.ErrNotFound
	}
	if member.Role == domain.RoleOwner {
		return domain.ErrOwnerProtected
	}

	return s.teams.RemoveMember(ctx, memberID)
}

// Invite creates a tokenized, time-boxed invitation. Inviting straight into
// the owner role is rejected like any other owner grant. Repeated invites to
// the same email are allowed and accumulate.
func (s *TeamService) Invite(ctx context.Context, inviterID, teamID uuid.UUID, input domain.InvitationCreate) (*domain.Invitation, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleOwner {
		return nil, domain.ErrOwnerProtected
	}

	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}

	token, err := security.GenerateInviteToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invitation := &domain.Invitation{
		ID:        uuid.New(),
		TeamID:    teamID,
		Email:     input.Email,
		Role:      role,
		Token:     token,
		InvitedBy: inviterID,
		ExpiresAt: now.Add(s.inviteTTL),
		CreatedAt: now,
	}

	if err := s.invitations.Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return invitation, nil
}

// ListPendingInvitations returns invitations that have not expired yet.
// Expiry is a read-time predicate; nothing sweeps expired rows.
func (s *TeamService) ListPendingInvitations(ctx context.Context, teamID uuid.UUID) ([]domain.Invitation, error) {
	invitations, err := s.invitations.ListPending(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// DeleteInvitation revokes one of the team's invitations. Invitations held
// by other teams look unknown to the caller; deleting an id that no longer
// exists is a no-op.
func (s *TeamService) DeleteInvitation(ctx context.Context, teamID, id uuid.UUID) error {
	invitation, err := s.invitations.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get invitation: %w", err)
	}
	if invitation == nil {
		return nil
	}
	if invitation.TeamID != teamID {
		return domain.ErrNotFound
	}

	return s.invitations.Delete(ctx, id)
}

// AcceptInvitation consumes a non-expired invitation into a membership for
// userID. Expired and unknown tokens are indistinguishable to the caller.
func (s *TeamService) AcceptInvitation(ctx context.Context, userID uuid.UUID, token string) (*domain.TeamMember, error) {
	invitation, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if invitation == nil || !invitation.Pending(time.Now()) {
		return nil, domain.ErrNotFound
	}

	member := &domain.TeamMember{
		ID:       uuid.New(),
		TeamID:   invitation.TeamID,
		UserID:   userID,
		Role:     invitation.Role,
		Status:   domain.MemberStatusActive,
		JoinedAt: time.Now(),
	}

	if err := s.teams.AddMember(ctx, member); err != nil {
		if errors.Is(err, domain.ErrAlreadyMember) {
			// The offer is spent either way.
			_ = s.invitations.Delete(ctx, invitation.ID)
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	if err := s.invitations.Delete(ctx, invitation.ID); err != nil {
		return nil, fmt.Errorf("failed to consume invitation: %w", err)
	}

	return member, nil
}
