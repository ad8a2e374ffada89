package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/holdco_books/cmd/docs"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/middleware"
	"github.com/SscSPs/holdco_books/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	elements ElementLookup,
) error {
	if err := RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	if err := RegisterAuthRoutes(r, cfg.LoginRateLimit, services.Auth, services.User); err != nil {
		return err
	}

	setupAPIV1Routes(r, cfg, services, elements)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 group and the per-entity routes below it
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	elements ElementLookup,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	RegisterUserRoutes(v1, services.User)
	RegisterTaxonomyRoutes(v1, elements)

	entity := v1.Group("/entities/:entity_id")
	RegisterAccountRoutes(entity, services.Account)
	RegisterJournalEntryRoutes(entity, services.JournalEntry)
	RegisterReportingRoutes(entity, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
