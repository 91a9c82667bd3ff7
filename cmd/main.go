package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/edustream/backend/docs"
	authMiddleware "github.com/edustream/backend/internal/auth/middleware"
	authService "github.com/edustream/backend/internal/auth/service"
	"github.com/edustream/backend/internal/cart"
	"github.com/edustream/backend/internal/config"
	"github.com/edustream/backend/internal/handlers"
	"github.com/edustream/backend/internal/logger"
	"github.com/edustream/backend/internal/middlewares"
	"github.com/edustream/backend/internal/realtime"
	"github.com/edustream/backend/internal/repositories"
	"github.com/edustream/backend/internal/services"
)

// @title EduStream API
// @version 1.0
// @description API for the EduStream course marketplace

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting EduStream API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis (cart storage and insert notifications)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	pingCancel()

	// Initialize JWT token generator
	tokenGenerator := authService.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
	)

	// Initialize repositories
	courseRepo := repositories.NewCourseRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	progressRepo := repositories.NewProgressRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	profileRepo := repositories.NewProfileRepository(db)

	// Initialize realtime notifier
	notifier := realtime.NewNotifier(redisClient, realtime.DefaultChannel, logger.Logger)

	// Dashboard clients refetch on purchase and review inserts; keep a
	// server-side subscription for visibility into the event stream
	subCtx, subCancel := context.WithCancel(context.Background())
	defer subCancel()
	go func() {
		err := notifier.Subscribe(subCtx, []string{"purchases", "reviews"}, func() {
			logger.Logger.Debug("dashboard data invalidated")
		})
		if err != nil && subCtx.Err() == nil {
			logger.Logger.Error("insert event subscription ended", zap.Error(err))
		}
	}()

	// Initialize services
	courseService := services.NewCourseService(courseRepo)
	lessonService := services.NewLessonService(courseRepo, lessonRepo)
	enrollmentService := services.NewEnrollmentService(courseRepo, lessonRepo, purchaseRepo, notifier)
	progressService := services.NewProgressService(lessonRepo, progressRepo)
	reviewService := services.NewReviewService(courseRepo, purchaseRepo, reviewRepo, profileRepo, notifier)
	analyticsService := services.NewAnalyticsService(courseRepo, purchaseRepo, reviewRepo)
	uploadService := services.NewUploadService(cfg.Cloudinary)

	// Initialize cart storage
	cartStore := cart.NewRedisStore(redisClient, cart.DefaultCartTTL)
	cartManager := cart.NewManager(cartStore, courseRepo)

	// Initialize handlers
	courseHandler := handlers.NewCourseHandler(courseService, logger.Logger)
	lessonHandler := handlers.NewLessonHandler(lessonService, logger.Logger)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, logger.Logger)
	progressHandler := handlers.NewProgressHandler(progressService, enrollmentService, logger.Logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger.Logger)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, logger.Logger)
	uploadHandler := handlers.NewUploadHandler(uploadService, logger.Logger)
	cartHandler := handlers.NewCartHandler(cartManager, logger.Logger)

	// Initialize auth middleware
	auth := authMiddleware.AuthMiddleware(tokenGenerator)
	optionalAuth := authMiddleware.OptionalAuthMiddleware(tokenGenerator)
	instructorOnly := authMiddleware.RoleMiddleware(tokenGenerator, authService.RoleInstructor)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		courseHandler.RegisterRoutes(r, instructorOnly)
		lessonHandler.RegisterRoutes(r, instructorOnly)
		enrollmentHandler.RegisterRoutes(r, auth, optionalAuth)
		progressHandler.RegisterRoutes(r, auth)
		reviewHandler.RegisterRoutes(r, auth)
		analyticsHandler.RegisterRoutes(r, instructorOnly)
		uploadHandler.RegisterRoutes(r, instructorOnly)
		cartHandler.RegisterRoutes(r, auth)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
