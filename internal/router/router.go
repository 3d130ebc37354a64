package router

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"estatesite/config"
	"estatesite/internal/cache"
	"estatesite/internal/handler"
	"estatesite/internal/middleware"
	"estatesite/internal/repository"
	"estatesite/internal/service"
	"estatesite/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto a gin engine.
// Background work started here stops when ctx is done.
func Setup(ctx context.Context, cfg *config.Config, db *gorm.DB, store storage.Gateway, log *slog.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	limiter := middleware.NewInMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	go limiter.Run(ctx)
	r.Use(middleware.RateLimit(limiter))

	// Repositories
	propertyRepo := repository.NewPropertyRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	contactRepo := repository.NewContactRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	// Services
	readCache := cache.New()
	propertySvc := service.NewPropertyService(propertyRepo, store, readCache, log)
	catalogSvc := service.NewCatalogService(serviceRepo, companyRepo, contactRepo, readCache, log)
	authSvc := service.NewAuthService(cfg, adminRepo)

	// Handlers
	propertyHandler := handler.NewPropertyHandler(propertySvc, cfg.Server.MaxUploadBytes, log)
	catalogHandler := handler.NewCatalogHandler(catalogSvc, log)
	authHandler := handler.NewAuthHandler(authSvc, log)
	healthHandler := handler.NewHealthHandler(db)

	r.GET("/healthz", healthHandler.Check)
	if cfg.Storage.Driver == config.StorageDriverLocal {
		r.Static("/uploads", filepath.Clean(cfg.Storage.LocalDir))
	}

	api := r.Group("/api")
	{
		api.GET("/properties", propertyHandler.List)
		api.GET("/properties/:id", propertyHandler.Get)
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/services/:slug", catalogHandler.GetService)
		api.GET("/company", catalogHandler.GetCompany)
		api.GET("/contacts", catalogHandler.ListContacts)

		api.POST("/admin/login", authHandler.Login)

		admin := api.Group("/admin", middleware.AuthRequired(&cfg.JWT), middleware.AdminRequired())
		{
			admin.GET("/properties", propertyHandler.List)
			admin.POST("/properties", propertyHandler.Create)
			admin.PUT("/properties/:id", propertyHandler.Update)
			admin.DELETE("/properties/:id", propertyHandler.Delete)

			admin.GET("/services", catalogHandler.AdminListServices)
			admin.POST("/services", catalogHandler.CreateService)
			admin.PUT("/services/:id", catalogHandler.UpdateService)
			admin.DELETE("/services/:id", catalogHandler.DeleteService)

			admin.PUT("/company", catalogHandler.UpdateCompany)

			admin.GET("/contacts", catalogHandler.AdminListContacts)
			admin.POST("/contacts", catalogHandler.CreateContact)
			admin.PUT("/contacts/:id", catalogHandler.UpdateContact)
			admin.DELETE("/contacts/:id", catalogHandler.DeleteContact)
		}
	}
	return r
}
