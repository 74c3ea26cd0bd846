package handler

import (
	"fmt"
	"net/http"

	"github.com/bidacafe/pos-gateway/internal/application/service"
	"github.com/bidacafe/pos-gateway/internal/domain/enum"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/request"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OverviewHandler handles the revenue overview screen
type OverviewHandler struct {
	overviewService *service.OverviewService
}

// NewOverviewHandler creates a new overview handler
func NewOverviewHandler(overviewService *service.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

func (h *OverviewHandler) dateRange(c *gin.Context) (service.DateRange, bool) {
	var req request.OverviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "range must be one of today, week, month, year, custom")
		return service.DateRange{}, false
	}

	rng, err := h.overviewService.Range(enum.ParseRangePreset(req.Range), req.From, req.To)
	if err != nil {
		response.Error(c, err)
		return service.DateRange{}, false
	}
	return rng, true
}

// GetOverview returns revenue totals for a date range
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}
	rng, ok := h.dateRange(c)
	if !ok {
		return
	}

	overview, err := h.overviewService.GetOverview(c.Request.Context(), client, rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overview retrieved successfully", overview)
}

// Export downloads the overview as an Excel workbook
func (h *OverviewHandler) Export(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}
	rng, ok := h.dateRange(c)
	if !ok {
		return
	}

	data, filename, err := h.overviewService.ExportOverview(c.Request.Context(), client, rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
