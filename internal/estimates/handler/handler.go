// Package handler exposes estimate generation and calculation over HTTP.
package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"estimate_backend/internal/estimates/service"
	"estimate_backend/internal/estimates/transport"
	"estimate_backend/platform/httpkit"
	"estimate_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidPhoto     = "photo data is not valid base64"
)

// Handler handles HTTP requests for estimates.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new estimates handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Generate creates an estimate from a work description and optional photos.
// POST /api/v1/estimates/generate
func (h *Handler) Generate(c *gin.Context) {
	var req transport.GenerateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	input, err := toGenerateInput(req)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPhoto, nil)
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), input)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toEstimateResponse(result))
}

// Modify revises an estimate according to a natural-language instruction.
// POST /api/v1/estimates/modify
func (h *Handler) Modify(c *gin.Context) {
	var req transport.ModifyEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Modify(c.Request.Context(), service.ModifyInput{
		CurrentItems:        toCostItems(req.CurrentItems),
		Instruction:         req.Instruction,
		CurrentGlobalMargin: req.CurrentGlobalMargin,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toEstimateResponse(result))
}

// Calculate reprices an item snapshot for live preview. No AI call.
// POST /api/v1/estimates/calculate
func (h *Handler) Calculate(c *gin.Context) {
	var req transport.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result := h.svc.Recalculate(toCostItems(req.Items), req.MarginPercent)
	httpkit.OK(c, toEstimateResponse(&result))
}

// Verify compares persisted totals against a fresh recomputation to detect
// drift after manual edits. Drift requires an explicit resync by the caller.
// POST /api/v1/estimates/verify
func (h *Handler) Verify(c *gin.Context) {
	var req transport.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	totals, inSync := h.svc.VerifyTotals(toPricedItems(req.Items), req.PersistedSubtotal, req.PersistedTotal)
	httpkit.OK(c, transport.VerifyResponse{
		InSync:             inSync,
		RecomputedSubtotal: totals.Subtotal,
		RecomputedTotal:    totals.Total,
		TaxBreakdown:       toTaxBreakdown(totals.TaxBreakdown),
	})
}

func toGenerateInput(req transport.GenerateEstimateRequest) (service.GenerateInput, error) {
	input := service.GenerateInput{
		Description:   req.Description,
		WorkType:      req.WorkType,
		ClientName:    req.ClientName,
		MarginPercent: req.MarginPercent,
	}
	if req.ProjectContext != nil {
		input.ProjectName = req.ProjectContext.Name
		input.ProjectAddress = req.ProjectContext.Address
	}
	for _, photo := range req.Photos {
		data, err := base64.StdEncoding.DecodeString(photo.ImageData)
		if err != nil {
			return service.GenerateInput{}, err
		}
		input.Photos = append(input.Photos, service.Photo{
			Data:      data,
			MimeType:  photo.MimeType,
			ZoneLabel: photo.ZoneLabel,
		})
	}
	return input, nil
}

func toCostItems(items []transport.EstimateItem) []service.CostItem {
	out := make([]service.CostItem, 0, len(items))
	for _, item := range items {
		out = append(out, service.CostItem{
			Category:    item.Category,
			Description: item.Description,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			CostPrice:   item.CostPrice,
			TaxRate:     item.TaxRate,
		})
	}
	return out
}

func toPricedItems(items []transport.EstimateItem) []service.PricedItem {
	out := make([]service.PricedItem, 0, len(items))
	for _, item := range items {
		out = append(out, service.PricedItem{
			Category:      item.Category,
			Description:   item.Description,
			Unit:          item.Unit,
			Quantity:      item.Quantity,
			CostPrice:     item.CostPrice,
			MarginPercent: item.MarginPercent,
			SellPrice:     item.SellPrice,
			LineSubtotal:  item.LineSubtotal,
			TaxRate:       item.TaxRate,
			OrderIndex:    item.OrderIndex,
		})
	}
	return out
}

func toEstimateResponse(result *service.Result) transport.EstimateResponse {
	items := make([]transport.EstimateItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, transport.EstimateItem{
			Category:      item.Category,
			Description:   item.Description,
			Unit:          item.Unit,
			Quantity:      item.Quantity,
			CostPrice:     item.CostPrice,
			MarginPercent: item.MarginPercent,
			SellPrice:     item.SellPrice,
			LineSubtotal:  item.LineSubtotal,
			TaxRate:       item.TaxRate,
			OrderIndex:    item.OrderIndex,
		})
	}
	return transport.EstimateResponse{
		Items:               items,
		Subtotal:            result.Totals.Subtotal,
		TaxBreakdown:        toTaxBreakdown(result.Totals.TaxBreakdown),
		Total:               result.Totals.Total,
		AppliedGlobalMargin: result.AppliedGlobalMargin,
	}
}

func toTaxBreakdown(groups []service.TaxGroup) []transport.TaxBreakdownEntry {
	out := make([]transport.TaxBreakdownEntry, 0, len(groups))
	for _, g := range groups {
		out = append(out, transport.TaxBreakdownEntry{Rate: g.Rate, Amount: g.Amount})
	}
	return out
}
