// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/printbazaar/marketplace-backend/internal/catalog"
	"github.com/printbazaar/marketplace-backend/internal/config"
	"github.com/printbazaar/marketplace-backend/internal/handlers"
	"github.com/printbazaar/marketplace-backend/internal/middleware"
	"github.com/printbazaar/marketplace-backend/internal/services"
	"github.com/printbazaar/marketplace-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, log *logrus.Logger) (*gin.Engine, error) {
	// Initialize services
	assetService, err := services.NewAssetService(cfg)
	if err != nil {
		return nil, err
	}
	catalogService := catalog.NewService(db, assetService, log,
		time.Duration(cfg.Catalog.QueryTimeout)*time.Second)
	categoryService := services.NewCategoryService(db)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		designs := v1.Group("/designs")
		designs.Use(middleware.SearchRateLimit())
		{
			designs.GET("", catalogHandler.SearchDesigns)
			designs.GET("/mine", middleware.AuthRequired(), catalogHandler.MyDesigns)
			designs.GET("/:id", middleware.OptionalAuth(), catalogHandler.GetDesign)
		}

		personalizables := v1.Group("/personalizables")
		personalizables.Use(middleware.SearchRateLimit())
		{
			personalizables.GET("", catalogHandler.SearchPersonalizables)
			personalizables.GET("/mine", middleware.AuthRequired(), catalogHandler.MyPersonalizables)
			personalizables.GET("/:id", middleware.OptionalAuth(), catalogHandler.GetPersonalizable)
		}

		products := v1.Group("/products")
		products.Use(middleware.SearchRateLimit())
		{
			products.GET("", catalogHandler.SearchProducts)
			products.GET("/mine", middleware.AuthRequired(), catalogHandler.MyProducts)
			products.GET("/:id", middleware.OptionalAuth(), catalogHandler.GetProduct)
		}

		v1.GET("/categories", categoryHandler.GetCategoryTree)
	}

	return r, nil
}
