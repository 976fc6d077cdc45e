package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apperrors "github.com/shajib07/storefront/common/errors"
	"github.com/shajib07/storefront/common/logger"
	"github.com/shajib07/storefront/fakestore/controllers"
	"github.com/shajib07/storefront/fakestore/middleware"
	"github.com/shajib07/storefront/fakestore/repository"
	"github.com/shajib07/storefront/fakestore/services"
)

// NewRouter wires the demo API: catalog reads and the auth endpoints
// the gateway's refresh contract depends on.
func NewRouter(users repository.UserRepository, tokens *services.TokenService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(logger.RequestLogger())
	router.Use(apperrors.ErrorMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	catalog := services.NewCatalogService()
	authController := controllers.NewAuthController(users, tokens)
	productController := controllers.NewProductController(catalog)

	router.POST("/auth/login", authController.Login)
	router.POST("/auth/refresh", authController.Refresh)

	router.GET("/products", productController.ListProducts)
	router.GET("/products/categories", productController.ListCategories)
	router.GET("/products/category/:category", productController.ListByCategory)
	router.GET("/products/:id", productController.GetProduct)

	return router
}
