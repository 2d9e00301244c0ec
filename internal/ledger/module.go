// Package ledger provides the financial ledger bounded context.
package ledger

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "estimate_backend/internal/http"
	"estimate_backend/internal/ledger/handler"
	"estimate_backend/internal/ledger/repository"
	"estimate_backend/internal/ledger/service"
	"estimate_backend/platform/logger"
	"estimate_backend/platform/validator"
)

// Module is the ledger bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the ledger module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "ledger"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the ledger routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/ledger")
	group.GET("/transactions", m.handler.List)
}
