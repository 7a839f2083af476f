package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazmulhasanDEV/invoice/internal/api"
	"github.com/nazmulhasanDEV/invoice/internal/config"
	"github.com/nazmulhasanDEV/invoice/internal/repository/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RequestTimeout: time.Minute,
		},
		Auth: config.AuthConfig{
			Strategy:        "jwt",
			JWTSecret:       "test-secret-key-with-32-chars!!",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			InviteTTL:       7 * 24 * time.Hour,
		},
		Security: config.SecurityConfig{
			EncryptionKey: "0123456789abcdef0123456789abcdef",
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	}
	return rec.Code, env
}

func registerAndLogin(t *testing.T, router http.Handler, username string) string {
	t.Helper()
	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "hunter2hunter2",
		"full_name": username,
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, code)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestRouter_HealthAndReady(t *testing.T) {
	router := api.NewRouter(testConfig(), memory.NewStore(), nil, nil, zerolog.Nop())

	code, env := doJSON(t, router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/ready", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	router := api.NewRouter(testConfig(), memory.NewStore(), nil, nil, zerolog.Nop())

	code, _ := doJSON(t, router, http.MethodGet, "/api/v1/teams", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/teams", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_TeamLifecycle(t *testing.T) {
	router := api.NewRouter(testConfig(), memory.NewStore(), nil, nil, zerolog.Nop())

	ownerToken := registerAndLogin(t, router, "alice")
	memberToken := registerAndLogin(t, router, "bob")
	strangerToken := registerAndLogin(t, router, "mallory")

	// Owner creates a team
	code, env := doJSON(t, router, http.MethodPost, "/api/v1/teams", ownerToken, map[string]string{
		"name": "Acme",
	})
	require.Equal(t, http.StatusCreated, code)

	var team struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &team))
	base := "/api/v1/teams/" + team.ID

	// Owner sees the team and their role
	code, env = doJSON(t, router, http.MethodGet, base+"/role", ownerToken, nil)
	require.Equal(t, http.StatusOK, code)
	var roleResp struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &roleResp))
	assert.Equal(t, "owner", roleResp.Role)

	// A stranger cannot see the team or its roster
	code, _ = doJSON(t, router, http.MethodGet, base, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = doJSON(t, router, http.MethodGet, base+"/members", strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// Owner invites bob, bob accepts
	code, env = doJSON(t, router, http.MethodPost, base+"/invitations", ownerToken, map[string]string{
		"email": "bob@x.com",
		"role":  "viewer",
	})
	require.Equal(t, http.StatusCreated, code)
	var invitation struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &invitation))

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/invitations/accept", memberToken, map[string]string{
		"token": invitation.Token,
	})
	require.Equal(t, http.StatusOK, code)

	// Bob is a viewer: roster is visible, management is not
	code, _ = doJSON(t, router, http.MethodGet, base+"/members", memberToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, router, http.MethodPost, base+"/invitations", memberToken, map[string]string{
		"email": "carol@x.com",
		"role":  "member",
	})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = doJSON(t, router, http.MethodDelete, base, memberToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// The spent token cannot be accepted again
	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/invitations/accept", strangerToken, map[string]string{
		"token": invitation.Token,
	})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_SettingsFlow(t *testing.T) {
	router := api.NewRouter(testConfig(), memory.NewStore(), nil, nil, zerolog.Nop())
	token := registerAndLogin(t, router, "alice")

	code, env := doJSON(t, router, http.MethodGet, "/api/v1/settings/notifications", token, nil)
	require.Equal(t, http.StatusOK, code)
	var prefs struct {
		SeasonalAlerts bool `json:"seasonal_alerts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &prefs))
	assert.True(t, prefs.SeasonalAlerts)

	code, env = doJSON(t, router, http.MethodPatch, "/api/v1/settings/notifications", token, map[string]bool{
		"seasonal_alerts": false,
	})
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &prefs))
	assert.False(t, prefs.SeasonalAlerts)
}

func TestRouter_BillingUnconfigured(t *testing.T) {
	router := api.NewRouter(testConfig(), memory.NewStore(), nil, nil, zerolog.Nop())
	token := registerAndLogin(t, router, "alice")

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/billing/setup-intent", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/billing/payment-methods", token, nil)
	assert.Equal(t, http.StatusOK, code)
}
