package router

import (
	"github.com/juanbracho/girasoulresale/internal/config"
	"github.com/juanbracho/girasoulresale/internal/handler"
	"github.com/juanbracho/girasoulresale/internal/middleware"
	"github.com/juanbracho/girasoulresale/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires services, handlers and routes onto a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	transactionSvc := service.NewTransactionService(db)
	inventorySvc := service.NewInventoryService(db, cfg.App)
	assetSvc := service.NewAssetService(db, cfg.App)
	lookupSvc := service.NewLookupService(db)
	insightsSvc := service.NewInsightsService(db)

	api := r.Group("/api")

	transactionHandler := handler.NewTransactionHandler(transactionSvc)
	api.POST("/transactions", transactionHandler.Create)
	api.GET("/transactions", transactionHandler.List)
	api.GET("/transactions/:id", transactionHandler.Get)
	api.PUT("/transactions/:id", transactionHandler.Update)
	api.DELETE("/transactions/:id", transactionHandler.Delete)
	api.GET("/reports/summary", transactionHandler.Summary)
	api.GET("/reports/categories", transactionHandler.Categories)
	api.GET("/reports/cashflow", transactionHandler.CashFlow)
	api.GET("/reports/profit-loss", transactionHandler.ProfitLoss)

	inventoryHandler := handler.NewInventoryHandler(inventorySvc)
	api.POST("/inventory", inventoryHandler.Create)
	api.GET("/inventory", inventoryHandler.List)
	api.GET("/inventory/summary", inventoryHandler.Summary)
	api.GET("/inventory/categories", inventoryHandler.Categories)
	api.GET("/inventory/brands", inventoryHandler.Brands)
	api.GET("/inventory/:sku", inventoryHandler.Get)
	api.PUT("/inventory/:sku", inventoryHandler.Update)
	api.POST("/inventory/:sku/sell", inventoryHandler.Sell)
	api.DELETE("/inventory/:sku", inventoryHandler.Delete)

	assetHandler := handler.NewAssetHandler(assetSvc)
	api.POST("/assets", assetHandler.Create)
	api.GET("/assets", assetHandler.List)
	api.GET("/assets/summary", assetHandler.Summary)
	api.GET("/assets/:id", assetHandler.Get)
	api.POST("/assets/:id/dispose", assetHandler.Dispose)

	lookupHandler := handler.NewLookupHandler(lookupSvc)
	api.GET("/lookups/categories", lookupHandler.ListCategories)
	api.POST("/lookups/categories", lookupHandler.CreateCategory)
	api.DELETE("/lookups/categories/:id", lookupHandler.DeleteCategory)
	api.GET("/lookups/conditions", lookupHandler.ListConditions)
	api.POST("/lookups/conditions", lookupHandler.CreateCondition)
	api.DELETE("/lookups/conditions/:id", lookupHandler.DeleteCondition)
	api.GET("/lookups/statuses", lookupHandler.ListingStatuses)

	insightsHandler := handler.NewInsightsHandler(insightsSvc)
	api.GET("/insights/health", insightsHandler.Health)
	api.GET("/insights/slow-movers", insightsHandler.SlowMovers)
	api.GET("/insights/categories", insightsHandler.Categories)
	api.GET("/insights/price-ranges", insightsHandler.PriceRanges)
	api.GET("/insights/brands", insightsHandler.Brands)
	api.GET("/insights/seasonal", insightsHandler.Seasonal)
	api.GET("/insights/pricing", insightsHandler.Pricing)

	exportHandler := handler.NewExportHandler(transactionSvc, inventorySvc)
	api.GET("/export/transactions/csv", exportHandler.TransactionsCSV)
	api.GET("/export/transactions/xlsx", exportHandler.TransactionsXLSX)
	api.GET("/export/inventory/csv", exportHandler.InventoryCSV)
	api.GET("/export/inventory/xlsx", exportHandler.InventoryXLSX)

	return r
}
