package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"todo-manager/backend/internal/ai"
	"todo-manager/backend/internal/cache"
	"todo-manager/backend/internal/config"
	"todo-manager/backend/internal/database"
	"todo-manager/backend/internal/handlers"
	"todo-manager/backend/internal/monitoring"
	"todo-manager/backend/internal/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(&database.PoolConfig{
		DSN:             cfg.GetDatabaseDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		LogLevel:        database.DefaultPoolConfig().LogLevel,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it the API serves every request straight
	// from the store.
	var cacheInstance cache.Cache
	redisCache := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err := redisCache.Health(); err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
		redisCache.Close()
	} else {
		cacheInstance = redisCache
		defer redisCache.Close()
	}

	var todoService services.TodoService = services.NewTodoService()
	var statsService services.StatsService = services.NewStatsService()
	if cacheInstance != nil {
		todoService = services.NewCachedTodoService(todoService, cacheInstance)
		statsService = services.NewCachedStatsService(statsService, cacheInstance)
	}

	// The suggestion endpoint is the only part of the API that needs the
	// Gemini credential; everything else runs without it.
	var suggestService services.SuggestService
	if cfg.HasGeminiKey() {
		generator, err := ai.NewGeminiGenerator(ctx, cfg.AI)
		if err != nil {
			log.Printf("Gemini unavailable, /ai-suggest disabled: %v", err)
		} else {
			suggestService = services.NewSuggestService(
				ai.NewBreakerGenerator(generator, ai.DefaultBreakerConfig()),
			)
		}
	} else {
		log.Printf("GOOGLE_GEMINI_API not set, /ai-suggest disabled")
	}

	healthChecker := monitoring.NewHealthChecker()
	healthChecker.Register("database", func() error { return database.Ping(db) })
	if cacheInstance != nil {
		healthChecker.Register("redis", cacheInstance.Health)
	}

	router := handlers.SetupRouter(cfg, handlers.RouterDeps{
		DB:             db,
		Cache:          cacheInstance,
		TodoService:    todoService,
		SearchService:  services.NewSearchService(),
		StatsService:   statsService,
		BulkService:    services.NewBulkService(),
		IOService:      services.NewImportExportService(),
		SuggestService: suggestService,
		HealthChecker:  healthChecker,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
