package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nazmulhasanDEV/invoice/internal/api/middleware"
	"github.com/nazmulhasanDEV/invoice/internal/api/response"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/service"
)

// SettingsHandler handles profile, notification and security settings endpoints
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func settingsError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		response.NotFound(w, "not found")
		return
	}
	response.InternalError(w, "internal error")
}

// GetProfile handles getting the caller's profile
func (h *SettingsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	user, err := h.settingsService.GetProfile(r.Context(), userID)
	if err != nil {
		settingsError(w, err)
		return
	}

	response.OK(w, user)
}

// UpdateProfile handles patching the caller's profile
func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	user, err := h.settingsService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		settingsError(w, err)
		return
	}

	response.OK(w, user)
}

// GetNotificationPreferences handles getting the caller's notification toggles
func (h *SettingsHandler) GetNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	prefs, err := h.settingsService.GetNotificationPreferences(r.Context(), userID)
	if err != nil {
		settingsError(w, err)
		return
	}

	response.OK(w, prefs)
}

// UpdateNotificationPreferences handles patching notification toggles
func (h *SettingsHandler) UpdateNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.NotificationPreferencesUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	prefs, err := h.settingsService.UpdateNotificationPreferences(r.Context(), userID, input)
	if err != nil {
		settingsError(w, err)
		return
	}

	response.OK(w, prefs)
}

// GetSecuritySettings handles getting the caller's security settings
func (h *SettingsHandler) GetSecuritySettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	settings, err := h.settingsService.GetSecuritySettings(r.Context(), userID)
	if err != nil {
		settingsError(w, err)
		return
	}

	response.OK(w, settings)
}

// UpdateSecuritySettings handles patching security settings
func (h *SettingsHandler) UpdateSecuritySettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.SecuritySettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	settings, err := h.settingsService.UpdateSecuritySettings(r.Context(), userID, input)
	if err != nil {
		settingsError(w, err)
		return
	}

	response.OK(w, settings)
}
