package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/teenxsky/money-flow/internal/config"
	"github.com/teenxsky/money-flow/internal/database"
	"github.com/teenxsky/money-flow/internal/handlers"
	"github.com/teenxsky/money-flow/internal/logger"
	"github.com/teenxsky/money-flow/internal/middleware"
	"github.com/teenxsky/money-flow/internal/services"
	"github.com/teenxsky/money-flow/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/teenxsky/money-flow/internal/docs" // Import swagger docs
)

// @title           Money Flow API
// @version         1.0
// @description     Money Flow is a personal finance tracker with a curated reference vocabulary for classifying transactions.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	transactionTypeService := services.NewTransactionTypeService(db)
	categoryService := services.NewCategoryService(db)
	subcategoryService := services.NewSubcategoryService(db)
	statusService := services.NewStatusService(db)
	transactionService := services.NewTransactionService(db)
	seedService := services.NewSeedService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionTypeHandler := handlers.NewTransactionTypeHandler(transactionTypeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	subcategoryHandler := handlers.NewSubcategoryHandler(subcategoryService)
	statusHandler := handlers.NewStatusHandler(statusService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	referenceHandler := handlers.NewReferenceHandler(seedService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Reference data reads are public; anyone can browse the vocabulary
	reference := v1.Group("/reference")
	reference.GET("/transaction-types", transactionTypeHandler.List)
	reference.GET("/transaction-types/:id", transactionTypeHandler.GetByID)
	reference.GET("/categories", categoryHandler.List)
	reference.GET("/categories/:id", categoryHandler.GetByID)
	reference.GET("/subcategories", subcategoryHandler.List)
	reference.GET("/subcategories/:id", subcategoryHandler.GetByID)
	reference.GET("/statuses", statusHandler.List)
	reference.GET("/statuses/:id", statusHandler.GetByID)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:id", transactionHandler.GetByID)
	transactions.PATCH("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// Reference data mutations require administrator privileges
	admin := protected.Group("/reference")
	admin.Use(middleware.AdminRequired())

	admin.POST("/transaction-types", transactionTypeHandler.Create)
	admin.PUT("/transaction-types/:id", transactionTypeHandler.Update)
	admin.DELETE("/transaction-types/:id", transactionTypeHandler.Delete)

	admin.POST("/categories", categoryHandler.Create)
	admin.PUT("/categories/:id", categoryHandler.Update)
	admin.DELETE("/categories/:id", categoryHandler.Delete)

	admin.POST("/subcategories", subcategoryHandler.Create)
	admin.PUT("/subcategories/:id", subcategoryHandler.Update)
	admin.DELETE("/subcategories/:id", subcategoryHandler.Delete)

	admin.POST("/statuses", statusHandler.Create)
	admin.PUT("/statuses/:id", statusHandler.Update)
	admin.DELETE("/statuses/:id", statusHandler.Delete)

	admin.POST("/seed", referenceHandler.Seed)

	log.Infof("Starting Money Flow backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
