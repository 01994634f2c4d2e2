// Package transport defines request/response DTOs for the distribution API.
package transport

import (
	"github.com/google/uuid"

	"leadmarket_backend/internal/distribution/scoring"
	"leadmarket_backend/internal/distribution/service"
)

// DistributeRequest tunes a single distribution call. Both fields are
// optional; maxDistanceMiles is carried through for API compatibility but
// does not hard-filter candidates.
type DistributeRequest struct {
	MaxRealtors      int     `json:"maxRealtors" validate:"omitempty,min=1,max=50"`
	MaxDistanceMiles float64 `json:"maxDistanceMiles" validate:"omitempty,gt=0"`
}

// BatchDistributeRequest carries the leads to auto-assign. With Async set,
// the batch is queued for the background worker instead of running inline.
type BatchDistributeRequest struct {
	LeadIDs []uuid.UUID `json:"leadIds" validate:"required,min=1,max=500"`
	Async   bool        `json:"async"`
}

// DistributeResponse is the match-list envelope.
type DistributeResponse struct {
	Success bool                        `json:"success"`
	Matches []scoring.DistributionScore `json:"matches"`
}

// AssignResponse is the auto-assign envelope.
type AssignResponse struct {
	Success    bool      `json:"success"`
	RealtorID  uuid.UUID `json:"realtorId"`
	AssignedTo string    `json:"assignedTo"`
	Score      int       `json:"score"`
}

// BatchResponse is the inline batch envelope; Results keeps input order.
type BatchResponse struct {
	Success bool                  `json:"success"`
	Results []service.BatchResult `json:"results"`
}

// BatchQueuedResponse acknowledges an asynchronously scheduled batch.
type BatchQueuedResponse struct {
	Success bool   `json:"success"`
	TaskID  string `json:"taskId"`
}
