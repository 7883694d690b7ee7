package router

import (
	"priceWise/internal/middleware"
	"priceWise/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler) {
	auth := api.Group("/auth")
	auth.POST("/token", handler.Token)
}

func SetupPricingRoutes(api *echo.Group, handler *rest.PricingHandler) {
	pricing := api.Group("/pricing")
	pricing.POST("/recommend", handler.Recommend)
	pricing.GET("/grids/:item_id", handler.GetGrid)
	pricing.GET("/decisions/:id/explain", handler.ExplainDecision)
}

func SetupPricingAdminRoutes(api *echo.Group, handler *rest.PricingAdminHandler) {
	admin := api.Group("/admin/pricing", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.POST("/fit", handler.Fit)
	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpsertConfig)
}
