// Package distribution provides the lead-distribution bounded context:
// scoring verified realtors against leads, ranking matches, and persisting
// assignments.
package distribution

import (
	"leadmarket_backend/internal/distribution/handler"
	"leadmarket_backend/internal/distribution/repository"
	"leadmarket_backend/internal/distribution/service"
	"leadmarket_backend/internal/events"
	apphttp "leadmarket_backend/internal/http"
	"leadmarket_backend/platform/logger"
	"leadmarket_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the distribution bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the distribution module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger, maxMatches int) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log, maxMatches)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "distribution"
}

// Service returns the service layer for external use (worker, CLI).
func (m *Module) Service() *service.Service {
	return m.service
}

// SetBatchEnqueuer wires the background queue for async batch requests.
func (m *Module) SetBatchEnqueuer(enqueuer handler.BatchEnqueuer) {
	m.handler.SetBatchEnqueuer(enqueuer)
}

// RegisterRoutes mounts distribution routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/leads/:id/distribute", m.handler.Distribute)
	ctx.Protected.GET("/leads/:id/recommendations", m.handler.Recommendations)
	ctx.Protected.POST("/leads/:id/auto-assign", m.handler.AutoAssign)
	ctx.Protected.POST("/distribution/batch", m.handler.BatchDistribute)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
