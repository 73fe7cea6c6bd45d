package main

import (
	"log"
	"os"

	_ "hrms/api/swagger" // swagger docs

	"hrms/internal/approval"
	"hrms/internal/cache"
	"hrms/internal/database"
	"hrms/internal/handler"
	"hrms/internal/middleware"
	"hrms/internal/repository"
	"hrms/internal/service"
	"hrms/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           Staff Loan API
// @version         1.0
// @description     HR back-office API for the staff loan lifecycle and repayment engine.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbName := getenv("DB_NAME", "postgres")
	dbSslMode := getenv("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// External collaborators
	engine := approval.NewHTTPEngine(getenv("APPROVAL_ENGINE_URL", "http://localhost:9090"))
	statsCache := cache.NewRedisCache(getenv("REDIS_ADDR", "localhost:6379"))

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	staffRepo := repository.NewStaffRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	repaymentRepo := repository.NewRepaymentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	staffService := service.NewStaffService(staffRepo, branchRepo, auditRepo)
	repaymentService := service.NewRepaymentService(loanRepo, repaymentRepo, auditRepo, txManager)
	loanService := service.NewLoanService(loanRepo, staffRepo, auditRepo, txManager, engine, repaymentService, wsHub)
	payrollService := service.NewPayrollService(repaymentRepo, repaymentService, auditRepo, wsHub)
	statisticsService := service.NewStatisticsService(db, statsCache)

	// Initialize Handlers
	staffHandler := handler.NewStaffHandler(staffService)
	loanHandler := handler.NewLoanHandler(loanService)
	repaymentHandler := handler.NewRepaymentHandler(repaymentService)
	payrollHandler := handler.NewPayrollHandler(payrollService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	webhookHandler := handler.NewWebhookHandler(loanService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	staffHandler.RegisterRoutes(router.Group(""))
	loanHandler.RegisterRoutes(router.Group(""))
	repaymentHandler.RegisterRoutes(router.Group(""))
	payrollHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))
	webhookHandler.RegisterRoutes(router.Group(""))

	port := getenv("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
