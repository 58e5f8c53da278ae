// Package handler exposes the tenant lifecycle over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"orgsphere/backend/internal/server/middleware"
	"orgsphere/backend/internal/server/respond"
	"orgsphere/backend/internal/tenant/service"
)

// Handler serves the organization lifecycle endpoints.
type Handler struct {
	svc      *service.LifecycleService
	validate *validator.Validate
}

// NewHandler returns a Handler backed by the given lifecycle service.
func NewHandler(svc *service.LifecycleService) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// CreateRequest is the request body for POST /org/create.
type CreateRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,min=2,max=64"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
}

// UpdateRequest is the request body for PUT /org/update. OrganizationName is
// the NEW desired name; the organization being updated is resolved from the
// session's admin identity, not from this payload.
type UpdateRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,min=2,max=64"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
}

// Create handles POST /org/create. Self-service registration: provisions the
// partition, creates the admin account, and records the organization.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !h.decode(w, r, &req) {
		return
	}
	summary, err := h.svc.Create(r.Context(), req.OrganizationName, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Organization created successfully.",
		"organization": summary,
	})
}

// Get handles GET /org/get?organization_name=.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("organization_name")
	summary, err := h.svc.Get(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, summary)
}

// Update handles PUT /org/update. Requires a session; the acting admin's own
// organization is renamed/re-homed and its credentials rotated.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok || adminID == "" {
		respond.Error(w, http.StatusUnauthorized, "missing authentication token")
		return
	}
	var req UpdateRequest
	if !h.decode(w, r, &req) {
		return
	}
	summary, err := h.svc.Update(r.Context(), req.OrganizationName, req.Email, req.Password, adminID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Organization updated successfully.",
		"organization": summary,
	})
}

// Delete handles DELETE /org/delete?organization_name=. Requires a session;
// only the owning admin may delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok || adminID == "" {
		respond.Error(w, http.StatusUnauthorized, "missing authentication token")
		return
	}
	name := r.URL.Query().Get("organization_name")
	if err := h.svc.Delete(r.Context(), name, adminID); err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "Organization and related resources removed successfully.",
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps lifecycle sentinel errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPartitionTaken):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOrganizationNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		respond.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProvisioningFailed):
		respond.Error(w, http.StatusBadGateway, err.Error())
	default:
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}
