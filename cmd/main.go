package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/RahulRajeev-0/employee-management-system/internal/caching"
	"github.com/RahulRajeev-0/employee-management-system/internal/config"
	"github.com/RahulRajeev-0/employee-management-system/internal/handlers"
	"github.com/RahulRajeev-0/employee-management-system/internal/jobs/background"
	"github.com/RahulRajeev-0/employee-management-system/internal/middleware"
	"github.com/RahulRajeev-0/employee-management-system/internal/repositories"
	"github.com/RahulRajeev-0/employee-management-system/internal/services"
	"github.com/RahulRajeev-0/employee-management-system/pkg/database"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32) // Generate random secret for development
		logger.Printf("WARNING: JWT_SECRET not set, using a generated secret")
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	mediaSvc, err := services.NewMinioMediaService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MediaBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	if err := mediaSvc.EnsureBucketExists(context.Background()); err != nil {
		logger.Printf("WARNING: could not ensure media bucket exists: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	profileRepo := repositories.NewProfileRepo(pool)
	formRepo := repositories.NewFormRepo(pool)

	// Create services
	authSvc := services.NewAuthService(cacheSvc, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	accountSvc := services.NewAccountService(userRepo, profileRepo, authSvc, logger)
	formSvc := services.NewFormService(formRepo)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(accountSvc, authSvc, logger)
	userHandlers := handlers.NewUserHandlers(accountSvc, mediaSvc, logger)
	formHandlers := handlers.NewFormHandlers(formSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background maintenance jobs
	scheduler, err := background.NewJobScheduler(profileRepo, mediaSvc, logger)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	jwtMiddleware := middleware.JWT(authSvc)

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// User routes
	user := e.Group("/user")
	user.POST("/api/token", authHandlers.TokenObtainPair)
	user.POST("/api/token/refresh", authHandlers.TokenRefresh)
	user.POST("/signup", authHandlers.Signup)
	user.POST("/login", authHandlers.Login)

	details := user.Group("/details", jwtMiddleware)
	details.GET("", userHandlers.GetDetails)
	details.PUT("", userHandlers.UpdateDetails)
	details.PATCH("", userHandlers.ChangePassword)

	// Form template routes
	employee := e.Group("/employee", jwtMiddleware)
	employee.POST("/forms", formHandlers.CreateTemplate)
	employee.GET("/forms", formHandlers.ListTemplates)
	employee.GET("/forms/:id", formHandlers.GetTemplate)

	logger.Printf("Employee management server v%s starting on port %s", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", cfg.Port)))
}
