package handlers

import (
	"time"

	"todo-manager/backend/internal/cache"
	"todo-manager/backend/internal/config"
	"todo-manager/backend/internal/middleware"
	"todo-manager/backend/internal/monitoring"
	"todo-manager/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RouterDeps bundles everything SetupRouter needs. SuggestService may be
// nil (no Gemini credential); Cache may be nil (no redis).
type RouterDeps struct {
	DB             *gorm.DB
	Cache          cache.Cache
	TodoService    services.TodoService
	SearchService  services.SearchService
	StatsService   services.StatsService
	BulkService    services.BulkService
	IOService      services.ImportExportService
	SuggestService services.SuggestService
	HealthChecker  *monitoring.HealthChecker
}

func SetupRouter(cfg *config.Config, deps RouterDeps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	}

	todoHandler := NewTodoHandler(deps.DB, deps.TodoService)
	searchHandler := NewSearchHandler(deps.DB, deps.SearchService)
	statsHandler := NewStatsHandler(deps.DB, deps.StatsService)
	bulkHandler := NewBulkHandler(deps.DB, deps.BulkService, deps.Cache)
	exportHandler := NewExportHandler(deps.DB, deps.IOService, deps.Cache)
	suggestHandler := NewSuggestHandler(deps.SuggestService)

	todos := router.Group("/todos")
	{
		todos.GET("", todoHandler.GetTodos)
		todos.POST("", todoHandler.CreateTodo)
		todos.GET("/search", searchHandler.SearchTodos)
		todos.GET("/stats", statsHandler.GetStatistics)
		todos.POST("/bulk", bulkHandler.BulkAction)
		todos.GET("/export", exportHandler.ExportTodos)
		todos.POST("/export", exportHandler.ImportTodos)
		todos.GET("/:id", todoHandler.GetTodoByID)
		todos.PUT("/:id", todoHandler.UpdateTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
		todos.PATCH("/:id/toggle", todoHandler.ToggleTodo)
	}

	router.POST("/ai-suggest", suggestHandler.Suggest)

	router.GET("/metrics", monitoring.MetricsHandler)
	if deps.HealthChecker != nil {
		router.GET("/health", deps.HealthChecker.Handler)
	}

	return router
}
