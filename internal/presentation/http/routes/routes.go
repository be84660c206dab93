package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/galleauto-billing/internal/config"
	domainRepo "github.com/sangkips/galleauto-billing/internal/domain/repository"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/handler"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Item    *handler.ItemHandler
	Stock   *handler.StockHandler
	Invoice *handler.InvoiceHandler
	Report  *handler.ReportHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerItemRoutes(v1, h)
		registerStockRoutes(v1, h)
		registerInvoiceRoutes(v1, h, deps)
		registerReportRoutes(v1, h)
		registerPrinterRoutes(v1, h, deps)
	}

	return router
}

func registerItemRoutes(v1 *gin.RouterGroup, h *Handlers) {
	items := v1.Group("/items")
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/similar", h.Item.Similar)
		items.GET("/overview", h.Item.Overview)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
		items.GET("/:id/stock", h.Item.Stock)
		items.GET("/:id/batches", h.Item.Batches)
	}
}

func registerStockRoutes(v1 *gin.RouterGroup, h *Handlers) {
	stock := v1.Group("/stock")
	{
		stock.POST("/in", h.Stock.StockIn)
		stock.POST("/batches/:id/consume", h.Stock.Consume)
		stock.GET("/transactions", h.Stock.History)
		stock.GET("/transactions/export", h.Stock.ExportHistory)
	}
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := v1.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/next-number", h.Invoice.NextNumber)
		// A retried save with the same key replays the first response
		invoices.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.POST("/daily/pdf", h.Report.ExportPDF)
		reports.POST("/daily/xlsx", h.Report.ExportXLSX)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	limiter := middleware.NewClientRateLimiter(middleware.NewRateLimiterConfig(
		deps.Cfg.RateLimit.Requests,
		deps.Cfg.RateLimit.Duration,
	))

	printerGroup := v1.Group("/printer")
	printerGroup.Use(limiter.Middleware())
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.GET("/printers", h.Printer.ListPrinters)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/invoices/:id", h.Printer.PrintInvoice)
	}
}
