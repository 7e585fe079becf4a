package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/painel-afiliado/service-affiliate/internal/services"
)

// OfferHandler serves the product and brand offer listings.
type OfferHandler struct {
	reportService *services.ReportService
	logger        *zap.Logger
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(reportService *services.ReportService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// GetProductOffers returns the current product offers.
// @Router /affiliate/offers/products [get]
func (h *OfferHandler) GetProductOffers(c *gin.Context) {
	if h.reportService == nil {
		serviceUnavailable(c)
		return
	}

	offers, err := h.reportService.GetProductOffers(c.Request.Context())
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// GetBrandOffers returns the current brand offers.
// @Router /affiliate/offers/brands [get]
func (h *OfferHandler) GetBrandOffers(c *gin.Context) {
	if h.reportService == nil {
		serviceUnavailable(c)
		return
	}

	offers, err := h.reportService.GetBrandOffers(c.Request.Context())
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}
