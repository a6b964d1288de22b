package main

import (
	"log"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/handlers"
	"backoffice/internal/middleware"
	"backoffice/internal/migrations"
	"backoffice/internal/redis"
	"backoffice/internal/repository"
	"backoffice/internal/services"
	"backoffice/pkg/uploads"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize upload storage
	store, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to create upload storage:", err)
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	courierRepo := repository.NewCourierRepository(db)
	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	brandingRepo := repository.NewBrandingRepository(db)

	// Initialize services
	jwtSecret := []byte(cfg.JWTSecret)
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	orderService := services.NewOrderService(orderRepo)
	leadService := services.NewLeadService(orderRepo, productRepo)
	userService := services.NewUserService(userRepo, redisClient, jwtSecret, sessionTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	orderHandler := handlers.NewOrderHandler(orderService, store)
	leadHandler := handlers.NewLeadHandler(leadService)
	customerHandler := handlers.NewCustomerHandler(customerRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	courierHandler := handlers.NewCourierHandler(courierRepo)
	userHandler := handlers.NewUserHandler(userService)
	paymentHandler := handlers.NewPaymentHandler(paymentRepo)
	brandingHandler := handlers.NewBrandingHandler(brandingRepo, store)

	// Setup routes
	router := gin.Default()

	router.POST("/api/auth/login", authHandler.Login)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtSecret, redisClient))
	{
		api.POST("/auth/logout", authHandler.Logout)

		api.POST("/orders", orderHandler.Create)
		api.GET("/orders", orderHandler.List)
		api.GET("/orders/:id", orderHandler.Get)
		api.POST("/orders/:id/dispatch", orderHandler.Dispatch)
		api.POST("/orders/:id/cancel", orderHandler.Cancel)
		api.POST("/orders/:id/payment", orderHandler.Payment)
		api.POST("/orders/:id/complete", orderHandler.Complete)
		api.POST("/orders/:id/notes", orderHandler.AppendNote)
		api.GET("/orders/:id/logs", orderHandler.Logs)
		api.GET("/orders/:id/payments", paymentHandler.ByOrder)
		api.GET("/payments", paymentHandler.List)

		api.POST("/leads/import", leadHandler.Import)
		api.GET("/leads", leadHandler.List)
		api.PUT("/leads/:id/status", leadHandler.UpdateStatus)
		api.POST("/leads/:id/convert", leadHandler.Convert)
		api.DELETE("/leads/:id", leadHandler.Delete)

		api.POST("/customers", customerHandler.Create)
		api.GET("/customers", customerHandler.List)
		api.GET("/customers/:id", customerHandler.Get)
		api.PUT("/customers/:id", customerHandler.Update)
		api.DELETE("/customers/:id", customerHandler.Delete)

		api.POST("/products", productHandler.Create)
		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.PUT("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)

		api.POST("/couriers", courierHandler.Create)
		api.GET("/couriers", courierHandler.List)
		api.PUT("/couriers/:id", courierHandler.Update)
		api.DELETE("/couriers/:id", courierHandler.Delete)

		api.GET("/branding", brandingHandler.Get)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/users", userHandler.Create)
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)
			admin.PUT("/branding", brandingHandler.Update)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
