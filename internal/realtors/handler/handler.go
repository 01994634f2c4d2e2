// Package handler exposes realtor profile management over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadmarket_backend/internal/realtors/repository"
	"leadmarket_backend/internal/realtors/service"
	"leadmarket_backend/internal/realtors/transport"
	"leadmarket_backend/platform/httpkit"
	"leadmarket_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidRealtorID = "invalid realtor ID"
)

// Handler handles HTTP requests for realtor profiles.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new realtors handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create stores a new realtor profile.
// POST /api/v1/realtors
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateRealtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	realtor, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.FromRealtor(realtor))
}

// Get retrieves a realtor profile.
// GET /api/v1/realtors/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRealtorID, nil)
		return
	}

	realtor, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromRealtor(realtor))
}

// List retrieves realtor profiles.
// GET /api/v1/realtors
func (h *Handler) List(c *gin.Context) {
	var req transport.ListRealtorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	realtors, err := h.svc.List(c.Request.Context(), repository.ListFilter{
		VerifiedOnly: req.Verified,
		Limit:        req.Limit,
		Offset:       req.Offset,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromRealtors(realtors))
}

// Update rewrites a realtor's profile fields.
// PUT /api/v1/realtors/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRealtorID, nil)
		return
	}

	var req transport.UpdateRealtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	realtor, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromRealtor(realtor))
}

// Verify toggles the verification flag (admin only).
// PATCH /api/v1/admin/realtors/:id/verify
func (h *Handler) Verify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRealtorID, nil)
		return
	}

	var req transport.VerifyRealtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	realtor, err := h.svc.SetVerified(c.Request.Context(), id, req.Verified)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromRealtor(realtor))
}
