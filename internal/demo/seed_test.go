package demo_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazmulhasanDEV/invoice/internal/demo"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository/memory"
)

func TestSeed(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, demo.Seed(ctx, store, zerolog.Nop()))

	user, err := store.Users().GetByUsername(ctx, demo.Username)
	require.NoError(t, err)
	require.NotNil(t, user)

	teams, err := store.Teams().ListTeamsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)

	role, isMember, err := store.Teams().GetUserRole(ctx, user.ID, teams[0].ID)
	require.NoError(t, err)
	assert.True(t, isMember)
	assert.Equal(t, domain.RoleOwner, role)

	members, err := store.Teams().ListMembers(ctx, teams[0].ID)
	require.NoError(t, err)
	assert.Len(t, members, 4)

	pending, err := store.Invitations().ListPending(ctx, teams[0].ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestSeed_Idempotent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, demo.Seed(ctx, store, zerolog.Nop()))
	require.NoError(t, demo.Seed(ctx, store, zerolog.Nop()))

	user, err := store.Users().GetByUsername(ctx, demo.Username)
	require.NoError(t, err)
	teams, err := store.Teams().ListTeamsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}
