package rbac_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/rbac"
)

type fakeMembers struct {
	roles map[string]domain.Role
	err   error
}

func (f *fakeMembers) GetUserRole(ctx context.Context, userID, teamID uuid.UUID) (domain.Role, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	role, ok := f.roles[userID.String()+"/"+teamID.String()]
	return role, ok, nil
}

func TestGuard_Authorize(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()

	t.Run("member with permission", func(t *testing.T) {
		members := &fakeMembers{roles: map[string]domain.Role{
			userID.String() + "/" + teamID.String(): domain.RoleManager,
		}}
		guard := rbac.NewGuard(members, rbac.DefaultTable())

		decision, err := guard.Authorize(context.Background(), userID, teamID, domain.PermUploadInvoices)
		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, domain.RoleManager, decision.Role)
		assert.Empty(t, decision.Reason)
	})

	t.Run("member without permission", func(t *testing.T) {
		members := &fakeMembers{roles: map[string]domain.Role{
			userID.String() + "/" + teamID.String(): domain.RoleViewer,
		}}
		guard := rbac.NewGuard(members, rbac.DefaultTable())

		decision, err := guard.Authorize(context.Background(), userID, teamID, domain.PermUploadInvoices)
		assert.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, rbac.ReasonInsufficientPermission, decision.Reason)
		assert.Equal(t, domain.RoleViewer, decision.Role)
	})

	t.Run("non-member", func(t *testing.T) {
		guard := rbac.NewGuard(&fakeMembers{roles: map[string]domain.Role{}}, rbac.DefaultTable())

		decision, err := guard.Authorize(context.Background(), userID, teamID, domain.PermViewInvoices)
		assert.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, rbac.ReasonNotAMember, decision.Reason)
	})

	t.Run("membership in one team grants nothing in another", func(t *testing.T) {
		otherTeam := uuid.New()
		members := &fakeMembers{roles: map[string]domain.Role{
			userID.String() + "/" + teamID.String(): domain.RoleOwner,
		}}
		guard := rbac.NewGuard(members, rbac.DefaultTable())

		decision, err := guard.Authorize(context.Background(), userID, otherTeam, domain.PermViewInvoices)
		assert.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, rbac.ReasonNotAMember, decision.Reason)
	})

	t.Run("lookup failure surfaces as error", func(t *testing.T) {
		lookupErr := errors.New("store down")
		guard := rbac.NewGuard(&fakeMembers{err: lookupErr}, rbac.DefaultTable())

		_, err := guard.Authorize(context.Background(), userID, teamID, domain.PermViewInvoices)
		assert.ErrorIs(t, err, lookupErr)
	})
}

func TestGuard_ResolveRole(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()

	members := &fakeMembers{roles: map[string]domain.Role{
		userID.String() + "/" + teamID.String(): domain.RoleAdmin,
	}}
	guard := rbac.NewGuard(members, rbac.DefaultTable())

	role, ok, err := guard.ResolveRole(context.Background(), userID, teamID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, role)

	_, ok, err = guard.ResolveRole(context.Background(), uuid.New(), teamID)
	assert.NoError(t, err)
	assert.False(t, ok)
}
