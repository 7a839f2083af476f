package middleware

import (
	"context"
	"net/http"

	"github.com/nazmulhasanDEV/invoice/internal/api/response"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/rbac"
	"github.com/rs/zerolog"
)

// GuardMiddleware enforces team-scoped permissions. It runs after
// Authenticate and TeamContext and attaches the caller's resolved role so
// handlers never re-query the membership store.
type GuardMiddleware struct {
	guard  *rbac.Guard
	logger zerolog.Logger
}

// NewGuardMiddleware creates a new guard middleware
func NewGuardMiddleware(guard *rbac.Guard, logger zerolog.Logger) *GuardMiddleware {
	return &GuardMiddleware{guard: guard, logger: logger}
}

// Require denies the request unless the caller's role in the team from
// context grants perm. Non-members and insufficient roles both map to 403;
// the response does not reveal which.
func (m *GuardMiddleware) Require(perm domain.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				response.Unauthorized(w, "authentication required")
				return
			}

			teamID, ok := GetTeamID(r.Context())
			if !ok {
				response.BadRequest(w, "missing team ID")
				return
			}

			decision, err := m.guard.Authorize(r.Context(), userID, teamID, perm)
			if err != nil {
				m.logger.Error().Err(err).
					Str("user_id", userID.String()).
					Str("team_id", teamID.String()).
					Msg("authorization check failed")
				response.InternalError(w, "authorization check failed")
				return
			}

			if !decision.Allowed {
				m.logger.Debug().
					Str("user_id", userID.String()).
					Str("team_id", teamID.String()).
					Str("permission", string(perm)).
					Str("reason", string(decision.Reason)).
					Msg("access denied")
				response.Forbidden(w, "access denied")
				return
			}

			ctx := context.WithValue(r.Context(), RoleKey, decision.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
