package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"custom-field-api/internal/cache"
	"custom-field-api/internal/domain"
	"custom-field-api/internal/handler"
	"custom-field-api/internal/metrics"
	"custom-field-api/internal/middleware"
	"custom-field-api/internal/notifier"
	"custom-field-api/internal/repository"
	"custom-field-api/internal/service"
)

// Config holds the dependencies for the router
type Config struct {
	DB             *gorm.DB
	RedisClient    *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	CacheTTL       time.Duration
}

// Setup wires repositories, services, and handlers into a gin engine
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	boardRepo := repository.NewBoardRepository(cfg.DB)
	defRepo := repository.NewFieldDefinitionRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)

	// Definition cache (a nil Redis client disables caching)
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	defCache := cache.NewFieldDefinitionCache(cfg.RedisClient, cacheTTL, cfg.Logger)

	// WebSocket hub for field change events
	hub := notifier.NewHub(boardRepo, func(token string) (*domain.AuthContext, error) {
		return middleware.ParseToken(cfg.JWTSecret, token)
	}, cfg.Logger)

	// Services
	boardService := service.NewBoardService(boardRepo, cfg.Logger)
	fieldDefinitionService := service.NewFieldDefinitionService(
		defRepo, boardRepo, taskRepo, defCache, hub, cfg.Metrics, cfg.Logger)
	fieldValueService := service.NewFieldValueService(defRepo, defCache, cfg.Metrics, cfg.Logger)
	taskService := service.NewTaskService(taskRepo, boardRepo, defRepo, cfg.Metrics, cfg.Logger)

	// Handlers
	boardHandler := handler.NewBoardHandler(boardService)
	fieldDefinitionHandler := handler.NewFieldDefinitionHandler(fieldDefinitionService)
	fieldValueHandler := handler.NewFieldValueHandler(fieldValueService)
	taskHandler := handler.NewTaskHandler(taskService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.RedisClient)

	// Health and metrics endpoints at root (no auth, for probes and scraping).
	// When a base path is set the same endpoints are also registered under it.
	if cfg.BasePath != "" {
		r.GET("/health", healthHandler.Health)
		r.GET("/ready", healthHandler.Ready)
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	registerRoutes := func(g *gin.RouterGroup) {
		g.GET("/health", healthHandler.Health)
		g.GET("/ready", healthHandler.Ready)
		g.GET("/metrics", gin.WrapH(promhttp.Handler()))
		g.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Field change events (token passed as query param)
		g.GET("/ws/boards/:boardId", hub.HandleBoardWebSocket)

		authenticated := g.Group("")
		authenticated.Use(middleware.Auth(cfg.JWTSecret))
		{
			authenticated.POST("/boards", boardHandler.CreateBoard)
			authenticated.GET("/boards/:boardId", boardHandler.GetBoard)
			authenticated.GET("/organizations/:orgId/boards", boardHandler.GetBoardsByOrganization)

			authenticated.POST("/boards/:boardId/fields", fieldDefinitionHandler.CreateFieldDefinition)
			authenticated.GET("/boards/:boardId/fields", fieldDefinitionHandler.GetFieldDefinitions)
			authenticated.PUT("/boards/:boardId/fields/reorder", fieldDefinitionHandler.ReorderFieldDefinitions)
			authenticated.PUT("/fields/:fieldId", fieldDefinitionHandler.UpdateFieldDefinition)
			authenticated.DELETE("/fields/:fieldId", fieldDefinitionHandler.DeleteFieldDefinition)

			authenticated.POST("/fields/:fieldId/validate", fieldValueHandler.ValidateFieldValue)

			authenticated.POST("/boards/:boardId/tasks", taskHandler.CreateTask)
			authenticated.GET("/boards/:boardId/tasks", taskHandler.GetTasksByBoard)
			authenticated.GET("/tasks/:taskId", taskHandler.GetTask)
			authenticated.PUT("/tasks/:taskId", taskHandler.UpdateTask)
			authenticated.DELETE("/tasks/:taskId", taskHandler.DeleteTask)
		}
	}

	registerRoutes(r.Group(cfg.BasePath))

	return r
}
