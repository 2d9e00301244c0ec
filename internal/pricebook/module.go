// Package pricebook provides the reference price catalog bounded context.
package pricebook

import (
	"estimate_backend/internal/pricebook/handler"
	"estimate_backend/internal/pricebook/repository"
	"estimate_backend/internal/pricebook/service"
	apphttp "estimate_backend/internal/http"
	"estimate_backend/platform/validator"
)

// Module is the pricebook bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	matcher *service.Matcher
}

// NewModule creates and initializes the pricebook module.
func NewModule(val *validator.Validator) *Module {
	repo := repository.New()
	matcher := service.NewMatcher(repo)
	h := handler.New(repo, matcher, val)

	return &Module{handler: h, matcher: matcher}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pricebook"
}

// Matcher returns the reference price matcher for use by other modules.
func (m *Module) Matcher() *service.Matcher {
	return m.matcher
}

// RegisterRoutes mounts the pricebook routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/pricebook")
	group.GET("/categories", m.handler.ListCategories)
	group.GET("/search", m.handler.Search)
}
