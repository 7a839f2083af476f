package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/api/response"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UsernameKey contextKey = "username"
	TeamIDKey   contextKey = "teamID"
	RoleKey     contextKey = "role"
)

// AuthMiddleware attaches the caller's identity to the request context
type AuthMiddleware struct {
	provider IdentityProvider
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(provider IdentityProvider) *AuthMiddleware {
	return &AuthMiddleware{provider: provider}
}

// Authenticate resolves and attaches the caller's identity
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.provider.Identify(r)
		if err != nil {
			response.Unauthorized(w, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, identity.UserID)
		ctx = context.WithValue(ctx, UsernameKey, identity.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID gets the user ID from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUsername gets the username from context
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// GetTeamID gets the team ID from context
func GetTeamID(ctx context.Context) (uuid.UUID, bool) {
	teamID, ok := ctx.Value(TeamIDKey).(uuid.UUID)
	return teamID, ok
}

// GetRole gets the caller's resolved team role from context
func GetRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(RoleKey).(domain.Role)
	return role, ok
}

// TeamContext extracts the team ID from the URL and adds it to context
func TeamContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		teamIDStr := chi.URLParam(r, "teamID")
		if teamIDStr == "" {
			response.BadRequest(w, "missing team ID")
			return
		}

		teamID, err := uuid.Parse(teamIDStr)
		if err != nil {
			response.BadRequest(w, "invalid team ID")
			return
		}

		ctx := context.WithValue(r.Context(), TeamIDKey, teamID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
