// Package leads provides the lead intake bounded context: buyer inquiries
// entering the marketplace, their lifecycle, and their unlock flow.
package leads

import (
	"leadmarket_backend/internal/events"
	"leadmarket_backend/internal/geo"
	apphttp "leadmarket_backend/internal/http"
	"leadmarket_backend/internal/leads/handler"
	"leadmarket_backend/internal/leads/repository"
	"leadmarket_backend/internal/leads/service"
	"leadmarket_backend/platform/logger"
	"leadmarket_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the leads module.
func NewModule(pool *pgxpool.Pool, resolver geo.CoordinateResolver, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, resolver, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use (worker, CLI).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/leads", m.handler.Create)
	ctx.Protected.GET("/leads", m.handler.List)
	ctx.Protected.GET("/leads/:id", m.handler.Get)
	ctx.Protected.POST("/leads/:id/unlock", m.handler.Unlock)

	ctx.Admin.DELETE("/leads/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
