package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/painel-afiliado/service-affiliate/internal/handlers"
)

// RouteConfig holds configuration for routes
type RouteConfig struct {
	ReportHandler    *handlers.ReportHandler
	OfferHandler     *handlers.OfferHandler
	ShortLinkHandler *handlers.ShortLinkHandler
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouteConfig) {
	v1 := router.Group("/api/v1")

	affiliate := v1.Group("/affiliate")
	{
		report := affiliate.Group("/report")
		{
			report.GET("", cfg.ReportHandler.GetReport)
			report.GET("/summary", cfg.ReportHandler.GetSummary)
			report.GET("/status-breakdown", cfg.ReportHandler.GetStatusBreakdown)
			report.GET("/daily", cfg.ReportHandler.GetDaily)
			report.GET("/top-products", cfg.ReportHandler.GetTopProducts)
			report.GET("/raw", cfg.ReportHandler.GetRaw)
		}

		offers := affiliate.Group("/offers")
		{
			offers.GET("/products", cfg.OfferHandler.GetProductOffers)
			offers.GET("/brands", cfg.OfferHandler.GetBrandOffers)
		}

		affiliate.POST("/short-links", cfg.ShortLinkHandler.CreateShortLink)
	}
}
