package main

import (
	"storefront-service/internal/handler"
	mid "storefront-service/internal/middleware"
	"storefront-service/pkg/config"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting storefront-service", appConfig.LogConfig()...)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Echo instance
	e := echo.New()
	e.Validator = handler.NewRequestValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: appConfig.CORS.AllowOrigins,
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{"*"},
	}))
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(mid.MetricsMiddleware)

	// Admin guard with the credential pair resolved at startup
	adminGuard := mid.AdminAuth(&appConfig.Admin)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// API routes
	api := e.Group("/api")
	api.GET("/", handler.Root)
	api.POST("/admin/login", handler.AdminLogin(&appConfig.Admin))

	// Categories
	api.GET("/categories", handler.ListCategories)
	api.POST("/categories", handler.CreateCategory, adminGuard)
	api.PUT("/categories/:id", handler.UpdateCategory, adminGuard)
	api.DELETE("/categories/:id", handler.DeleteCategory, adminGuard)

	// Products
	api.GET("/products", handler.ListProducts)
	api.GET("/products/:id", handler.GetProduct)
	api.POST("/products", handler.CreateProduct, adminGuard)
	api.PUT("/products/:id", handler.UpdateProduct, adminGuard)
	api.DELETE("/products/:id", handler.DeleteProduct, adminGuard)

	// Promocodes
	api.GET("/promocodes", handler.ListPromocodes, adminGuard)
	api.POST("/promocodes", handler.CreatePromocode, adminGuard)
	api.DELETE("/promocodes/:id", handler.DeletePromocode, adminGuard)
	api.POST("/promocodes/validate", handler.ValidatePromocode)

	// Orders
	api.GET("/orders", handler.ListOrders, adminGuard)
	api.POST("/orders", handler.CreateOrder)

	// Starter catalog
	api.POST("/seed", handler.SeedData)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
