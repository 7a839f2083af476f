package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/api/middleware"
	"github.com/nazmulhasanDEV/invoice/internal/api/response"
	"github.com/nazmulhasanDEV/invoice/internal/billing"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/service"
)

// BillingHandler handles payment method and billing history endpoints
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

func billingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, billing.ErrNotConfigured):
		response.ServiceUnavailable(w, "billing is not configured")
	case errors.Is(err, service.ErrNoCustomer):
		response.BadRequest(w, "no billing customer, create a setup intent first")
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "not found")
	default:
		response.InternalError(w, "internal error")
	}
}

// CreateSetupIntent handles creating a Stripe setup intent
func (h *BillingHandler) CreateSetupIntent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	clientSecret, err := h.billingService.CreateSetupIntent(r.Context(), userID)
	if err != nil {
		billingError(w, err)
		return
	}

	response.OK(w, map[string]string{"client_secret": clientSecret})
}

// AttachPaymentMethod handles attaching a collected payment method
func (h *BillingHandler) AttachPaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.PaymentMethodAttach
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	method, err := h.billingService.AttachPaymentMethod(r.Context(), userID, input.PaymentMethodID)
	if err != nil {
		billingError(w, err)
		return
	}

	response.Created(w, method)
}

// ListPaymentMethods handles listing the caller's payment methods
func (h *BillingHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	methods, err := h.billingService.ListPaymentMethods(r.Context(), userID)
	if err != nil {
		billingError(w, err)
		return
	}

	response.OK(w, methods)
}

// SetDefaultPaymentMethod handles marking a payment method as default
func (h *BillingHandler) SetDefaultPaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	methodID, err := uuid.Parse(chi.URLParam(r, "methodID"))
	if err != nil {
		response.BadRequest(w, "invalid payment method ID")
		return
	}

	if err := h.billingService.SetDefaultPaymentMethod(r.Context(), userID, methodID); err != nil {
		billingError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "updated"})
}

// RemovePaymentMethod handles detaching and deleting a payment method
func (h *BillingHandler) RemovePaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	methodID, err := uuid.Parse(chi.URLParam(r, "methodID"))
	if err != nil {
		response.BadRequest(w, "invalid payment method ID")
		return
	}

	if err := h.billingService.RemovePaymentMethod(r.Context(), userID, methodID); err != nil {
		billingError(w, err)
		return
	}

	response.NoContent(w)
}

// ListHistory handles listing the caller's billing history
func (h *BillingHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	records, err := h.billingService.ListHistory(r.Context(), userID)
	if err != nil {
		billingError(w, err)
		return
	}

	response.OK(w, records)
}
