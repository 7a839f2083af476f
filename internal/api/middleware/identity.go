package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/security"
)

// ErrNoIdentity means the request carried no usable credentials.
var ErrNoIdentity = errors.New("no identity on request")

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// IdentityProvider resolves the caller's identity from a request. The router
// picks one implementation at startup from auth.strategy; handlers only ever
// see the resolved identity on the context.
type IdentityProvider interface {
	Identify(r *http.Request) (Identity, error)
}

// JWTIdentity authenticates via bearer tokens
type JWTIdentity struct {
	jwtManager *security.JWTManager
}

// NewJWTIdentity creates a JWT-backed identity provider
func NewJWTIdentity(jwtManager *security.JWTManager) *JWTIdentity {
	return &JWTIdentity{jwtManager: jwtManager}
}

// Identify validates the Authorization bearer token
func (p *JWTIdentity) Identify(r *http.Request) (Identity, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return Identity{}, ErrNoIdentity
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Identity{}, errors.New("invalid authorization header format")
	}

	claims, err := p.jwtManager.ValidateAccessToken(parts[1])
	if err != nil {
		return Identity{}, err
	}

	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// StaticIdentity resolves every request to one fixed user. Demo deployments
// use it with the seeded account so the frontend works without a login flow.
type StaticIdentity struct {
	identity Identity
}

// NewStaticIdentity creates a provider pinned to one user
func NewStaticIdentity(userID uuid.UUID, username string) *StaticIdentity {
	return &StaticIdentity{identity: Identity{UserID: userID, Username: username}}
}

// Identify returns the fixed identity
func (p *StaticIdentity) Identify(r *http.Request) (Identity, error) {
	return p.identity, nil
}
