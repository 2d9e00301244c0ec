// Package invoices provides the invoice lifecycle bounded context.
package invoices

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "estimate_backend/internal/http"
	"estimate_backend/internal/invoices/handler"
	"estimate_backend/internal/invoices/ports"
	"estimate_backend/internal/invoices/repository"
	"estimate_backend/internal/invoices/service"
	"estimate_backend/platform/events"
	"estimate_backend/platform/logger"
	"estimate_backend/platform/validator"
)

// Module is the invoices bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the invoices module. The ledger
// recorder is a port; the concrete adapter is wired in main.go.
func NewModule(pool *pgxpool.Pool, ledger ports.LedgerRecorder, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, ledger, eventBus, log)
	h := handler.New(svc, val)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "invoices"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the invoice routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/invoices")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
	group.PATCH("/:id/status", m.handler.UpdateStatus)
}
