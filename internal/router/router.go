package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "firsgate/docs" // registers the generated OpenAPI spec
	"firsgate/internal/config"
	"firsgate/internal/handler"
	"firsgate/internal/middleware"
	"firsgate/internal/port"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Invoice *handler.InvoiceHandler
	HSN     *handler.HSNHandler
	Logs    *handler.LogHandler
	Health  *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, activity port.ActivityLog, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery(activity))
	r.Use(middleware.CORS())

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(cfg.API))
	v1.Use(middleware.RateLimit(cfg.RateLimit))

	invoice := v1.Group("/invoice")
	invoice.POST("/validate-irn", h.Invoice.ValidateIRN)
	invoice.POST("/validate", h.Invoice.Validate)
	invoice.POST("/sign", h.Invoice.Sign)
	invoice.GET("/download/:irn", h.Invoice.Download)
	invoice.GET("/confirm", h.Invoice.Confirm)
	invoice.POST("/update", h.Invoice.Update)
	invoice.GET("/search", h.Invoice.Search)
	invoice.GET("/hsn-codes", h.HSN.List)
	invoice.GET("/new-request", h.Invoice.Template)

	v1.GET("/system/health", h.Health.Health)

	logs := v1.Group("/logs")
	logs.GET("/recent", h.Logs.Recent)
	logs.GET("/stats", h.Logs.Stats)

	return r
}
