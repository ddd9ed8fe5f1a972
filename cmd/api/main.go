// @title           Custom Field Service API
// @version         1.0
// @description     Custom field definition and validation API for boards

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8003
// @BasePath  /api/custom-fields

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "custom-field-api/docs" // Swagger docs import

	"custom-field-api/internal/config"
	"custom-field-api/internal/database"
	"custom-field-api/internal/job"
	"custom-field-api/internal/metrics"
	"custom-field-api/internal/repository"
	"custom-field-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Custom Field Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize database. A failed connection does not abort startup so the
	// pod can come up and retry in the background.
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, logger)
	} else {
		logger.Info("Database connected successfully")

		if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	// Database metrics callbacks and connection pool stats
	var statsDone chan struct{}
	if db != nil {
		database.RegisterMetricsCallbacks(db, m)
		statsDone = database.StartDBStatsCollector(db, m)
	}

	// Business metrics collector
	collector := metrics.NewBusinessMetricsCollector(db, m, logger)
	collector.Start()

	// Initialize Redis for the definition cache (optional)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedis(database.RedisConfig{
			URL:      cfg.Redis.URL,
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("Failed to connect to Redis, definition cache disabled", zap.Error(err))
			redisClient = nil
		}
	} else {
		logger.Info("Redis not configured, definition cache disabled")
	}

	// Schedule the orphaned field value cleanup
	cronRunner := cron.New()
	if db != nil {
		cleanupJob := job.NewOrphanCleanupJob(
			repository.NewTaskRepository(db),
			repository.NewFieldDefinitionRepository(db),
			m,
			logger,
		)
		if _, err := cronRunner.AddJob(cfg.Job.OrphanCleanupSchedule, cleanupJob); err != nil {
			logger.Warn("Failed to schedule orphan cleanup job", zap.Error(err))
		} else {
			logger.Info("Orphan cleanup job scheduled",
				zap.String("schedule", cfg.Job.OrphanCleanupSchedule))
		}
	}
	cronRunner.Start()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:             db,
		RedisClient:    redisClient,
		Logger:         logger,
		JWTSecret:      cfg.JWT.Secret,
		BasePath:       cfg.Server.BasePath,
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Custom Field Service started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Stop background workers before draining requests
	cronRunner.Stop()
	collector.Stop()
	if statsDone != nil {
		close(statsDone)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
