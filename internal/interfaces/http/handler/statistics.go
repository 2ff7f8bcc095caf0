package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountingapp "github.com/simpleaccounting/backend/internal/application/accounting"
)

// StatisticsHandler exposes the reporting endpoints.
type StatisticsHandler struct {
	BaseHandler
	service *accountingapp.StatisticsService
	logger  *zap.Logger
}

func NewStatisticsHandler(service *accountingapp.StatisticsService, logger *zap.Logger) *StatisticsHandler {
	return &StatisticsHandler{service: service, logger: logger}
}

// RegisterRoutes registers the statistics routes on the given group.
func (h *StatisticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	statistics := rg.Group("/statistics")
	{
		statistics.GET("/period", h.Period)
		statistics.GET("/taxes", h.Taxes)
	}
	rg.GET("/currencies", h.Currencies)
}

// Period handles GET /statistics/period?from=...&to=...
func (h *StatisticsHandler) Period(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var req accountingapp.PeriodStatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.GetPeriodStatistics(c.Request.Context(), workspaceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Taxes handles GET /statistics/taxes?from=...&to=...
func (h *StatisticsHandler) Taxes(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var req accountingapp.PeriodStatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.GetTaxStatistics(c.Request.Context(), workspaceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Currencies handles GET /currencies
func (h *StatisticsHandler) Currencies(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	currencies, err := h.service.ListCurrencies(c.Request.Context(), workspaceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, currencies)
}
