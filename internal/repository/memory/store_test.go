package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository/memory"
)

func seedTeam(t *testing.T, store *memory.Store, ownerID uuid.UUID) *domain.Team {
	t.Helper()
	now := time.Now()
	team := &domain.Team{ID: uuid.New(), Name: "Acme", OwnerID: ownerID, CreatedAt: now}
	owner := &domain.TeamMember{
		ID: uuid.New(), TeamID: team.ID, UserID: ownerID,
		Role: domain.RoleOwner, Status: domain.MemberStatusActive, JoinedAt: now,
	}
	require.NoError(t, store.Teams().CreateTeam(context.Background(), team, owner))
	return team
}

func TestStore_AddMemberRejectsDuplicatePair(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	ownerID := uuid.New()
	team := seedTeam(t, store, ownerID)

	userID := uuid.New()
	first := &domain.TeamMember{
		ID: uuid.New(), TeamID: team.ID, UserID: userID,
		Role: domain.RoleMember, Status: domain.MemberStatusActive, JoinedAt: time.Now(),
	}
	require.NoError(t, store.Teams().AddMember(ctx, first))

	dup := &domain.TeamMember{
		ID: uuid.New(), TeamID: team.ID, UserID: userID,
		Role: domain.RoleViewer, Status: domain.MemberStatusActive, JoinedAt: time.Now(),
	}
	err := store.Teams().AddMember(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)

	// The same user may join a different team
	other := seedTeam(t, store, uuid.New())
	again := &domain.TeamMember{
		ID: uuid.New(), TeamID: other.ID, UserID: userID,
		Role: domain.RoleViewer, Status: domain.MemberStatusActive, JoinedAt: time.Now(),
	}
	assert.NoError(t, store.Teams().AddMember(ctx, again))
}

func TestStore_SingleOwnerPerTeam(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	ownerID := uuid.New()
	team := seedTeam(t, store, ownerID)

	second := &domain.TeamMember{
		ID: uuid.New(), TeamID: team.ID, UserID: uuid.New(),
		Role: domain.RoleOwner, Status: domain.MemberStatusActive, JoinedAt: time.Now(),
	}
	err := store.Teams().AddMember(ctx, second)
	assert.ErrorIs(t, err, domain.ErrOwnerProtected)

	member := &domain.TeamMember{
		ID: uuid.New(), TeamID: team.ID, UserID: uuid.New(),
		Role: domain.RoleMember, Status: domain.MemberStatusActive, JoinedAt: time.Now(),
	}
	require.NoError(t, store.Teams().AddMember(ctx, member))

	_, err = store.Teams().UpdateMemberRole(ctx, member.ID, domain.RoleOwner)
	assert.ErrorIs(t, err, domain.ErrOwnerProtected)

	members, err := store.Teams().ListMembers(ctx, team.ID)
	require.NoError(t, err)
	owners := 0
	for _, m := range members {
		if m.Role == domain.RoleOwner {
			owners++
		}
	}
	assert.Equal(t, 1, owners)
}

func TestStore_DeleteTeamCascades(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	ownerID := uuid.New()
	team := seedTeam(t, store, ownerID)

	invitation := &domain.Invitation{
		ID: uuid.New(), TeamID: team.ID, Email: "b@x.com", Role: domain.RoleMember,
		Token: "tok", InvitedBy: ownerID,
		ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
	}
	require.NoError(t, store.Invitations().Create(ctx, invitation))

	require.NoError(t, store.Teams().DeleteTeam(ctx, team.ID))

	got, err := store.Teams().GetTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, isMember, err := store.Teams().GetUserRole(ctx, ownerID, team.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	inv, err := store.Invitations().GetByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestStore_ListTeamsByUser(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	userID := uuid.New()

	seedTeam(t, store, userID)
	seedTeam(t, store, userID)
	seedTeam(t, store, uuid.New())

	teams, err := store.Teams().ListTeamsByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, teams, 2)
}

func TestStore_LookupsReturnNilForUnknown(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	user, err := store.Users().GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, user)

	team, err := store.Teams().GetTeam(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, team)

	member, err := store.Teams().GetMember(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, member)

	prefs, err := store.Settings().GetNotificationPreferences(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, prefs)
}

func TestStore_SettingsUpsert(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	userID := uuid.New()

	prefs := domain.DefaultNotificationPreferences(userID)
	prefs.TeamUpdates = false
	require.NoError(t, store.Settings().SaveNotificationPreferences(ctx, &prefs))

	prefs.TeamUpdates = true
	require.NoError(t, store.Settings().SaveNotificationPreferences(ctx, &prefs))

	got, err := store.Settings().GetNotificationPreferences(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.TeamUpdates)
}

func TestStore_SetDefaultPaymentMethodClearsOthers(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	userID := uuid.New()

	a := &domain.PaymentMethod{ID: uuid.New(), UserID: userID, IsDefault: true, CreatedAt: time.Now()}
	b := &domain.PaymentMethod{ID: uuid.New(), UserID: userID, CreatedAt: time.Now().Add(time.Second)}
	require.NoError(t, store.Billing().AddPaymentMethod(ctx, a))
	require.NoError(t, store.Billing().AddPaymentMethod(ctx, b))

	require.NoError(t, store.Billing().SetDefaultPaymentMethod(ctx, userID, b.ID))

	methods, err := store.Billing().ListPaymentMethods(ctx, userID)
	require.NoError(t, err)
	require.Len(t, methods, 2)
	for _, m := range methods {
		assert.Equal(t, m.ID == b.ID, m.IsDefault)
	}

	err = store.Billing().SetDefaultPaymentMethod(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
