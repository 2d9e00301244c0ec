// Package estimates provides the estimate generation bounded context.
package estimates

import (
	"estimate_backend/internal/estimates/handler"
	"estimate_backend/internal/estimates/ports"
	"estimate_backend/internal/estimates/service"
	apphttp "estimate_backend/internal/http"
	"estimate_backend/platform/config"
	"estimate_backend/platform/logger"
	"estimate_backend/platform/validator"
)

// Module is the estimates bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the estimates module. The generator and
// matcher are ports; concrete implementations are wired in main.go via
// internal/adapters.
func NewModule(generator ports.Generator, matcher ports.PriceMatcher, cfg config.EstimateConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(generator, matcher, cfg, log)
	h := handler.New(svc, val)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "estimates"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the estimate routes. Generation and modification go
// through the stricter AI rate limiter; pure calculation endpoints do not.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/estimates")

	aiLimited := group.Group("")
	aiLimited.Use(ctx.GenerationRateLimiter.RateLimit())
	aiLimited.POST("/generate", m.handler.Generate)
	aiLimited.POST("/modify", m.handler.Modify)

	group.POST("/calculate", m.handler.Calculate)
	group.POST("/verify", m.handler.Verify)
}
