package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
	"github.com/painel-afiliado/service-affiliate/internal/report"
	"github.com/painel-afiliado/service-affiliate/internal/services"
)

// ReportHandler serves the conversion report endpoints.
type ReportHandler struct {
	reportService *services.ReportService
	logger        *zap.Logger
}

// NewReportHandler creates a new report handler. A nil service means the
// affiliate credentials are not configured; every endpoint then answers 503.
func NewReportHandler(reportService *services.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// parseDateRange reads start_date/end_date query params (YYYY-MM-DD),
// defaulting to the last seven days in the report zone.
func parseDateRange(c *gin.Context) (affiliate.DateRange, bool) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")

	if startStr == "" && endStr == "" {
		return affiliate.DefaultDateRange(time.Now()), true
	}

	defaultRange := affiliate.DefaultDateRange(time.Now())
	if startStr == "" {
		startStr = defaultRange.StartKey()
	}
	if endStr == "" {
		endStr = defaultRange.EndKey()
	}

	dateRange, err := affiliate.ParseDateRange(startStr, endStr)
	if err != nil {
		if errors.Is(err, affiliate.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be in YYYY-MM-DD format"})
		}
		return affiliate.DateRange{}, false
	}
	return dateRange, true
}

// serviceUnavailable answers when the affiliate pipeline is not configured.
func serviceUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": "affiliate API credentials are not configured",
	})
}

// respondPipelineError maps a pipeline failure onto an HTTP answer. API
// error messages are surfaced verbatim.
func respondPipelineError(c *gin.Context, logger *zap.Logger, err error) {
	var pipelineErr *affiliate.Error
	if errors.As(err, &pipelineErr) {
		logger.Warn("affiliate pipeline error",
			zap.String("kind", string(pipelineErr.Kind)),
			zap.String("message", pipelineErr.Message),
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": pipelineErr.Message,
			"kind":  pipelineErr.Kind,
		})
		return
	}

	if errors.Is(err, affiliate.ErrMissingCredentials) {
		serviceUnavailable(c)
		return
	}

	logger.Error("unexpected report failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// GetReport returns the normalized rows and summary for a date range.
// @Summary Get conversion report
// @Tags Report
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param refresh query bool false "Force refresh (bypass cache)"
// @Router /affiliate/report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	if h.reportService == nil {
		serviceUnavailable(c)
		return
	}

	dateRange, ok := parseDateRange(c)
	if !ok {
		return
	}
	forceRefresh := c.Query("refresh") == "true"

	result, err := h.reportService.GetReport(c.Request.Context(), dateRange, forceRefresh)
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date_range": gin.H{
			"start": dateRange.StartKey(),
			"end":   dateRange.EndKey(),
		},
		"rows":       result.Rows,
		"summary":    result.Summary,
		"from_cache": result.FromCache,
	})
}

// GetSummary returns the headline totals only.
// @Router /affiliate/report/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	if h.reportService == nil {
		serviceUnavailable(c)
		return
	}

	dateRange, ok := parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.reportService.GetReport(c.Request.Context(), dateRange, c.Query("refresh") == "true")
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": result.Summary, "from_cache": result.FromCache})
}

// GetStatusBreakdown returns commission grouped by conversion status.
// @Router /affiliate/report/status-breakdown [get]
func (h *ReportHandler) GetStatusBreakdown(c *gin.Context) {
	if h.reportService == nil {
		serviceUnavailable(c)
		return
	}

	dateRange, ok := parseDateRange(c)
	if !ok {
		return
	}

	nodes, fromCache, err := h.reportService.GetNodes(c.Request.Context(), dateRange, c.Query("refresh") == "true")
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_breakdown": report.CommissionByStatus(nodes),
		"from_cache":       fromCache,
	})
}

// GetDaily returns commission grouped by civil day.
// @Router /affiliate/report/daily [get]
func (h *ReportHandler) GetDaily(c *gin.Context) {
	if h.reportService == nil {
		serviceUnavailable(c)
		return
	}

	dateRange, ok := parseDateRange(c)
	if !ok {
		return
	}

	nodes, fromCache, err := h.reportService.GetNodes(c.Request.Context(), dateRange, c.Query("refresh") == "true")
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"daily":      report.CommissionByDay(nodes),
		"from_cache": fromCache,
	})
}

// GetTopProducts returns the best-selling products by summed quantity.
// @Param limit query int false "Maximum entries (default 10)"
// @Router /affiliate/report/top-products [get]
func (h *ReportHandler) GetTopProducts(c *gin.Context) {
	if h.reportService == nil {
		serviceUnavailable(c)
		return
	}

	dateRange, ok := parseDateRange(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	nodes, fromCache, err := h.reportService.GetNodes(c.Request.Context(), dateRange, c.Query("refresh") == "true")
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"top_products": report.TopProducts(report.Flatten(nodes), limit),
		"from_cache":   fromCache,
	})
}

// GetRaw returns the raw data envelope for ad hoc inspection.
// @Router /affiliate/report/raw [get]
func (h *ReportHandler) GetRaw(c *gin.Context) {
	if h.reportService == nil {
		serviceUnavailable(c)
		return
	}

	dateRange, ok := parseDateRange(c)
	if !ok {
		return
	}

	raw, err := h.reportService.GetRawReport(c.Request.Context(), dateRange)
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}
