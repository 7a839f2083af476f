// Package demo seeds a ready-to-browse workspace for deployments running
// with the static identity strategy: one demo account owning a team with a
// few members in different roles and a pending invitation.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository"
	"github.com/nazmulhasanDEV/invoice/internal/security"
)

const (
	// Username is the account the demo identity provider pins requests to.
	Username = "demo"

	demoPassword = "demo1234"
)

type seedUser struct {
	username string
	email    string
	fullName string
	role     domain.Role
}

// Seed populates the store with the demo account and its team. Running it
// against a store that already has the demo user is a no-op.
func Seed(ctx context.Context, store repository.Store, logger zerolog.Logger) error {
	existing, err := store.Users().GetByUsername(ctx, Username)
	if err != nil {
		return fmt.Errorf("failed to check demo user: %w", err)
	}
	if existing != nil {
		logger.Info().Msg("demo data already seeded")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := time.Now()

	owner := &domain.User{
		ID:           uuid.New(),
		Username:     Username,
		Email:        "demo@invoice-intelligence.app",
		FullName:     "Demo User",
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := store.Users().Create(ctx, owner); err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	team := &domain.Team{
		ID:        uuid.New(),
		Name:      "Acme Corp",
		OwnerID:   owner.ID,
		CreatedAt: now,
	}
	ownerMember := &domain.TeamMember{
		ID:       uuid.New(),
		TeamID:   team.ID,
		UserID:   owner.ID,
		Role:     domain.RoleOwner,
		Status:   domain.MemberStatusActive,
		JoinedAt: now,
	}
	if err := store.Teams().CreateTeam(ctx, team, ownerMember); err != nil {
		return fmt.Errorf("failed to create demo team: %w", err)
	}

	teammates := []seedUser{
		{username: "bob", email: "bob@acme.example", fullName: "Bob Martinez", role: domain.RoleManager},
		{username: "carol", email: "carol@acme.example", fullName: "Carol Nguyen", role: domain.RoleMember},
		{username: "dave", email: "dave@acme.example", fullName: "Dave Okafor", role: domain.RoleViewer},
	}

	for _, t := range teammates {
		user := &domain.User{
			ID:           uuid.New(),
			Username:     t.username,
			Email:        t.email,
			FullName:     t.fullName,
			PasswordHash: string(hash),
			CreatedAt:    now,
		}
		if err := store.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create demo teammate %s: %w", t.username, err)
		}

		member := &domain.TeamMember{
			ID:       uuid.New(),
			TeamID:   team.ID,
			UserID:   user.ID,
			Role:     t.role,
			Status:   domain.MemberStatusActive,
			JoinedAt: now,
		}
		if err := store.Teams().AddMember(ctx, member); err != nil {
			return fmt.Errorf("failed to add demo teammate %s: %w", t.username, err)
		}
	}

	token, err := security.GenerateInviteToken()
	if err != nil {
		return fmt.Errorf("failed to generate demo invite token: %w", err)
	}
	invitation := &domain.Invitation{
		ID:        uuid.New(),
		TeamID:    team.ID,
		Email:     "erin@acme.example",
		Role:      domain.RoleMember,
		Token:     token,
		InvitedBy: owner.ID,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		CreatedAt: now,
	}
	if err := store.Invitations().Create(ctx, invitation); err != nil {
		return fmt.Errorf("failed to create demo invitation: %w", err)
	}

	logger.Info().
		Str("team", team.Name).
		Int("members", len(teammates)+1).
		Msg("demo data seeded")

	return nil
}
