package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/quillbill/invoice_backend/cmd/docs"
	portssvc "github.com/quillbill/invoice_backend/internal/core/ports/services"
	"github.com/quillbill/invoice_backend/internal/middleware"
	"github.com/quillbill/invoice_backend/pkg/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	pdfLimiter *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services, pdfLimiter)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, pdfLimiter *limiter.Limiter) {
	v1 := r.Group("/api/v1")

	v1.GET("/", getHome)
	registerInvoiceRoutes(v1, services.Invoice, middleware.RateLimit(pdfLimiter))
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
