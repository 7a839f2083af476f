package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository/memory"
	"github.com/nazmulhasanDEV/invoice/internal/security"
	"github.com/nazmulhasanDEV/invoice/internal/service"
)

func newAuthFixture(t *testing.T) (*service.AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	jwtManager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)
	return service.NewAuthService(store.Users(), jwtManager), store
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.UserCreate{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
		FullName: "Alice Liddell",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, domain.UserCreate{
			Username: "alice",
			Email:    "other@example.com",
			Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, service.ErrUsernameTaken)
	})

	t.Run("login success", func(t *testing.T) {
		tokens, err := svc.Login(ctx, domain.UserLogin{Username: "alice", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, int64(900), tokens.ExpiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, domain.UserLogin{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, domain.UserLogin{Username: "nobody", Password: "whatever"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.UserCreate{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, domain.UserLogin{Username: "alice", Password: "hunter2hunter2"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
