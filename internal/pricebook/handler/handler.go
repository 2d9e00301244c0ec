// Package handler exposes the reference price catalog over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estimate_backend/internal/pricebook/repository"
	"estimate_backend/internal/pricebook/service"
	"estimate_backend/internal/pricebook/transport"
	"estimate_backend/platform/httpkit"
	"estimate_backend/platform/validator"
)

// Handler handles HTTP requests for the pricebook.
type Handler struct {
	repo    *repository.Repo
	matcher *service.Matcher
	val     *validator.Validator
}

// New creates a new pricebook handler.
func New(repo *repository.Repo, matcher *service.Matcher, val *validator.Validator) *Handler {
	return &Handler{repo: repo, matcher: matcher, val: val}
}

// ListCategories returns the complete reference price catalog.
// GET /api/v1/pricebook/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.repo.Categories()
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "catalog unavailable", nil)
		return
	}

	resp := transport.CatalogResponse{Categories: make([]transport.CategoryResponse, 0, len(categories))}
	for _, cat := range categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(cat.Name, cat.Entries))
	}
	httpkit.OK(c, resp)
}

// Search returns catalog entries relevant to a free-text query.
// GET /api/v1/pricebook/search?q=...
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	groups, err := h.matcher.Match(req.Query)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "catalog unavailable", nil)
		return
	}

	resp := transport.CatalogResponse{Categories: make([]transport.CategoryResponse, 0, len(groups))}
	for _, g := range groups {
		resp.Categories = append(resp.Categories, toCategoryResponse(g.Category, g.Entries))
	}
	httpkit.OK(c, resp)
}

func toCategoryResponse(name string, entries []repository.Entry) transport.CategoryResponse {
	out := transport.CategoryResponse{Category: name, Entries: make([]transport.EntryResponse, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, transport.EntryResponse{
			Code:        e.Code,
			Description: e.Description,
			Unit:        e.Unit,
			UnitPrice:   e.UnitPrice,
		})
	}
	return out
}
