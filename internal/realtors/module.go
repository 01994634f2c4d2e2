// Package realtors provides the realtor profile bounded context: the
// profiles that form the distribution pool and their verification workflow.
package realtors

import (
	"leadmarket_backend/internal/events"
	apphttp "leadmarket_backend/internal/http"
	"leadmarket_backend/internal/realtors/handler"
	"leadmarket_backend/internal/realtors/repository"
	"leadmarket_backend/internal/realtors/service"
	"leadmarket_backend/platform/logger"
	"leadmarket_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the realtors bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the realtors module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "realtors"
}

// Service returns the service layer for external use (notification reader).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts realtor routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/realtors", m.handler.Create)
	ctx.Protected.GET("/realtors", m.handler.List)
	ctx.Protected.GET("/realtors/:id", m.handler.Get)
	ctx.Protected.PUT("/realtors/:id", m.handler.Update)

	ctx.Admin.PATCH("/realtors/:id/verify", m.handler.Verify)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
