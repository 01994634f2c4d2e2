// Package handler exposes the distribution engine over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadmarket_backend/internal/distribution/service"
	"leadmarket_backend/internal/distribution/transport"
	"leadmarket_backend/platform/httpkit"
	"leadmarket_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidLeadID    = "invalid lead ID"
)

// BatchEnqueuer schedules a batch distribution for background execution.
// Implemented by the scheduler client; nil when no queue is configured.
type BatchEnqueuer interface {
	EnqueueBatchDistribution(ctx context.Context, leadIDs []uuid.UUID) (string, error)
}

// Handler handles HTTP requests for lead distribution.
type Handler struct {
	svc      *service.Service
	val      *validator.Validator
	enqueuer BatchEnqueuer
}

// New creates a new distribution handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SetBatchEnqueuer wires the background queue used for async batches.
func (h *Handler) SetBatchEnqueuer(enqueuer BatchEnqueuer) {
	h.enqueuer = enqueuer
}

// Distribute scores the verified realtor pool against a lead.
// POST /api/v1/leads/:id/distribute
func (h *Handler) Distribute(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	var req transport.DistributeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		if err := h.val.Struct(req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
			return
		}
	}

	matches, err := h.svc.Distribute(c.Request.Context(), leadID, service.Options{
		MaxRealtors:      req.MaxRealtors,
		MaxDistanceMiles: req.MaxDistanceMiles,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.DistributeResponse{Success: true, Matches: matches})
}

// Recommendations returns the read-only top-10 match list for a lead.
// GET /api/v1/leads/:id/recommendations
func (h *Handler) Recommendations(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	matches, err := h.svc.Recommendations(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.DistributeResponse{Success: true, Matches: matches})
}

// AutoAssign assigns the lead to its top-scoring realtor.
// POST /api/v1/leads/:id/auto-assign
func (h *Handler) AutoAssign(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	assignment, err := h.svc.AutoAssign(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.AssignResponse{
		Success:    true,
		RealtorID:  assignment.RealtorID,
		AssignedTo: assignment.AssignedTo,
		Score:      assignment.Score,
	})
}

// BatchDistribute auto-assigns a set of leads, inline by default or via the
// background worker when async is requested.
// POST /api/v1/distribution/batch
func (h *Handler) BatchDistribute(c *gin.Context) {
	var req transport.BatchDistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if req.Async {
		if h.enqueuer == nil {
			httpkit.Error(c, http.StatusServiceUnavailable, "background distribution is not configured", nil)
			return
		}
		taskID, err := h.enqueuer.EnqueueBatchDistribution(c.Request.Context(), req.LeadIDs)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.JSON(c, http.StatusAccepted, transport.BatchQueuedResponse{Success: true, TaskID: taskID})
		return
	}

	results := h.svc.BatchDistribute(c.Request.Context(), req.LeadIDs)
	httpkit.OK(c, transport.BatchResponse{Success: true, Results: results})
}
