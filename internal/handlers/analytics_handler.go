package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SAP-F-2025/driver-quiz-service/internal/models"
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories"
	"github.com/SAP-F-2025/driver-quiz-service/internal/services"
	"github.com/SAP-F-2025/driver-quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
	}
}

// GetComprehensiveAnalysis runs the full analysis for the requested window
// @Summary Comprehensive quiz analysis
// @Tags analytics
// @Produce json
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param driver_id query uint false "Restrict to one driver"
// @Param language query string false "Restrict question analysis to a language"
// @Success 200 {object} SuccessResponse{data=services.ComprehensiveAnalysisReport}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics/comprehensive [get]
func (h *AnalyticsHandler) GetComprehensiveAnalysis(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Running comprehensive analysis")

	report, err := h.analyticsService.RunComprehensiveAnalysis(c.Request.Context(), filter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Comprehensive analysis generated", report,
		"total_sessions", report.Overview.TotalSessions)
}

// ExportComprehensiveAnalysis returns the analysis as an XLSX workbook
// @Summary Export comprehensive quiz analysis
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /analytics/comprehensive/export [get]
func (h *AnalyticsHandler) ExportComprehensiveAnalysis(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting comprehensive analysis")

	data, err := h.analyticsService.ExportComprehensiveAnalysis(c.Request.Context(), filter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("driver-quiz-analysis-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// InvalidateCache drops cached reports. With no query parameters every cached report is dropped.
// @Summary Invalidate cached analyses
// @Tags analytics
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /analytics/cache [delete]
func (h *AnalyticsHandler) InvalidateCache(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Invalidating analytics cache")

	if err := h.analyticsService.InvalidateCache(c.Request.Context(), filter); err != nil {
		h.handleServiceError(c, err)
		return
	}

	scope := "filter"
	if filter.IsEmpty() {
		scope = "all"
	}
	h.RespondWithSuccess(c, http.StatusOK, "Analytics cache invalidated", gin.H{"scope": scope})
}

// bindFilter parses and validates the query string, writing a 400 on failure
func (h *AnalyticsHandler) bindFilter(c *gin.Context) (repositories.AnalyticsFilter, bool) {
	var query models.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", err, err.Error())
		return repositories.AnalyticsFilter{}, false
	}

	filter, err := h.analyticsService.BuildFilter(query)
	if err != nil {
		h.handleServiceError(c, err)
		return repositories.AnalyticsFilter{}, false
	}
	return filter, true
}
