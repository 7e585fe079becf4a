package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/painel-afiliado/service-affiliate/internal/services"
)

// ShortLinkHandler serves affiliate short link generation.
type ShortLinkHandler struct {
	reportService *services.ReportService
	logger        *zap.Logger
}

// NewShortLinkHandler creates a new short link handler.
func NewShortLinkHandler(reportService *services.ReportService, logger *zap.Logger) *ShortLinkHandler {
	return &ShortLinkHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// CreateShortLinkRequest is the request body for short link generation.
type CreateShortLinkRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// CreateShortLink wraps a product URL in an affiliate short link.
// @Router /affiliate/short-links [post]
func (h *ShortLinkHandler) CreateShortLink(c *gin.Context) {
	if h.reportService == nil {
		serviceUnavailable(c)
		return
	}

	var req CreateShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required and must be a valid URL"})
		return
	}

	shortLink, err := h.reportService.GenerateShortLink(c.Request.Context(), req.URL)
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"original_link": req.URL,
		"short_link":    shortLink,
	})
}
