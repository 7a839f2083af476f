package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/api/middleware"
	"github.com/nazmulhasanDEV/invoice/internal/api/response"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/service"
)

// TeamHandler handles team, membership and invitation endpoints
type TeamHandler struct {
	teamService *service.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// teamError maps domain errors to HTTP responses
func teamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "not found")
	case errors.Is(err, domain.ErrNotAMember),
		errors.Is(err, domain.ErrInsufficientPermission),
		errors.Is(err, domain.ErrOwnerProtected):
		response.Forbidden(w, err.Error())
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrEmptyName):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrAlreadyMember):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, "internal error")
	}
}

// Create handles team creation
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.TeamCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	team, err := h.teamService.Create(r.Context(), userID, input)
	if err != nil {
		teamError(w, err)
		return
	}

	response.Created(w, team)
}

// List handles listing the caller's teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	teams, err := h.teamService.ListByUser(r.Context(), userID)
	if err != nil {
		teamError(w, err)
		return
	}

	response.OK(w, teams)
}

// Get handles getting a team by ID
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	teamID, ok := middleware.GetTeamID(r.Context())
	if !ok {
		response.BadRequest(w, "missing team ID")
		return
	}

	team, err := h.teamService.Get(r.Context(), userID, teamID)
	if err != nil {
		teamError(w, err)
		return
	}

	response.OK(w, team)
}

// Delete handles team deletion
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	teamID, ok := middleware.GetTeamID(r.Context())
	if !ok {
		response.BadRequest(w, "missing team ID")
		return
	}

	if err := h.teamService.Delete(r.Context(), userID, teamID); err != nil {
		teamError(w, err)
		return
	}

	response.NoContent(w)
}

// ListMembers handles listing team members with user display data
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r.Context())
	if !ok {
		response.BadRequest(w, "missing team ID")
		return
	}

	members, err := h.teamService.ListMembers(r.Context(), teamID)
	if err != nil {
		teamError(w, err)
		return
	}

	response.OK(w, members)
}

// MyRole returns the caller's resolved role and permissions in the team
func (h *TeamHandler) MyRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	teamID, ok := middleware.GetTeamID(r.Context())
	if !ok {
		response.BadRequest(w, "missing team ID")
		return
	}

	role, isMember, err := h.teamService.ResolveRole(r.Context(), userID, teamID)
	if err != nil {
		teamError(w, err)
		return
	}
	if !isMember {
		response.Forbidden(w, "not a member of this team")
		return
	}

	response.OK(w, map[string]any{"role": role})
}

// UpdateMemberRole handles changing a member's role
func (h *TeamHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	teamID, ok := middleware.GetTeamID(r.Context())
	if !ok {
		response.BadRequest(w, "missing team ID")
		return
	}

	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "invalid member ID")
		return
	}

	var input domain.MemberRoleUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	member, err := h.teamService.UpdateMemberRole(r.Context(), userID, teamID, memberID, input.Role)
	if err != nil {
		teamError(w, err)
		return
	}

	response.OK(w, member)
}

// RemoveMember handles removing a member from the team
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r.Context())
	if !ok {
		response.BadRequest(w, "missing team ID")
		return
	}

	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "invalid member ID")
		return
	}

	if err := h.teamService.RemoveMember(r.Context(), teamID, memberID); err != nil {
		teamError(w, err)
		return
	}

	response.NoContent(w)
}

// Invite handles creating a team invitation
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	teamID, ok := middleware.GetTeamID(r.Context())
	if !ok {
		response.BadRequest(w, "missing team ID")
		return
	}

	var input domain.InvitationCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	invitation, err := h.teamService.Invite(r.Context(), userID, teamID, input)
	if err != nil {
		teamError(w, err)
		return
	}

	response.Created(w, invitation)
}

// ListInvitations handles listing a team's pending invitations
func (h *TeamHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r.Context())
	if !ok {
		response.BadRequest(w, "missing team ID")
		return
	}

	invitations, err := h.teamService.ListPendingInvitations(r.Context(), teamID)
	if err != nil {
		teamError(w, err)
		return
	}

	response.OK(w, invitations)
}

// DeleteInvitation handles revoking an invitation of the team in context
func (h *TeamHandler) DeleteInvitation(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r.Context())
	if !ok {
		response.BadRequest(w, "missing team ID")
		return
	}

	invitationID, err := uuid.Parse(chi.URLParam(r, "invitationID"))
	if err != nil {
		response.BadRequest(w, "invalid invitation ID")
		return
	}

	if err := h.teamService.DeleteInvitation(r.Context(), teamID, invitationID); err != nil {
		teamError(w, err)
		return
	}

	response.NoContent(w)
}

// AcceptInvitation handles consuming an invitation token into a membership
func (h *TeamHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.InvitationAccept
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	member, err := h.teamService.AcceptInvitation(r.Context(), userID, input.Token)
	if err != nil {
		teamError(w, err)
		return
	}

	response.OK(w, member)
}
