package services

import (
	"time"

	"todo-manager/backend/internal/cache"
	"todo-manager/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	todoListCacheKey = "todos:list"
	todoCacheTTL     = 30 * time.Minute
	todoListCacheTTL = 10 * time.Minute
	statsCacheKey    = "stats:summary"
	statsCacheTTL    = 5 * time.Minute
)

func todoCacheKey(id uuid.UUID) string {
	return "todo:" + id.String()
}

// FlushTodoCaches drops every derived cache entry. Mutation paths that
// bypass the cached services (bulk actions, imports) call this so stale
// lists and stats never outlive a write.
func FlushTodoCaches(c cache.Cache) {
	if c == nil {
		return
	}
	_ = c.DeletePattern("todo:*")
	_ = c.DeletePattern("todos:*")
	_ = c.Delete(statsCacheKey)
}

// CachedTodoService decorates a TodoService with redis-backed read caching.
// Cache failures fall through to the store; they are never surfaced.
type CachedTodoService struct {
	todoService TodoService
	cache       cache.Cache
}

func NewCachedTodoService(todoService TodoService, cacheInstance cache.Cache) *CachedTodoService {
	return &CachedTodoService{
		todoService: todoService,
		cache:       cacheInstance,
	}
}

func (s *CachedTodoService) CreateTodo(db *gorm.DB, input CreateTodoInput) (models.Todo, error) {
	todo, err := s.todoService.CreateTodo(db, input)
	if err != nil {
		return todo, err
	}

	FlushTodoCaches(s.cache)
	_ = s.cache.Set(todoCacheKey(todo.ID), todo, todoCacheTTL)

	return todo, nil
}

func (s *CachedTodoService) GetTodos(db *gorm.DB) ([]models.Todo, error) {
	var cached []models.Todo
	if err := s.cache.Get(todoListCacheKey, &cached); err == nil {
		return cached, nil
	}

	todos, err := s.todoService.GetTodos(db)
	if err != nil {
		return todos, err
	}

	_ = s.cache.Set(todoListCacheKey, todos, todoListCacheTTL)

	return todos, nil
}

func (s *CachedTodoService) GetTodoByID(db *gorm.DB, id uuid.UUID) (models.Todo, error) {
	var cached models.Todo
	if err := s.cache.Get(todoCacheKey(id), &cached); err == nil {
		return cached, nil
	}

	todo, err := s.todoService.GetTodoByID(db, id)
	if err != nil {
		return todo, err
	}

	_ = s.cache.Set(todoCacheKey(id), todo, todoCacheTTL)

	return todo, nil
}

func (s *CachedTodoService) UpdateTodo(db *gorm.DB, id uuid.UUID, input UpdateTodoInput) (models.Todo, error) {
	todo, err := s.todoService.UpdateTodo(db, id, input)
	if err != nil {
		return todo, err
	}

	FlushTodoCaches(s.cache)

	return todo, nil
}

func (s *CachedTodoService) DeleteTodo(db *gorm.DB, id uuid.UUID) error {
	if err := s.todoService.DeleteTodo(db, id); err != nil {
		return err
	}

	FlushTodoCaches(s.cache)

	return nil
}

func (s *CachedTodoService) ToggleTodo(db *gorm.DB, id uuid.UUID) (models.Todo, error) {
	todo, err := s.todoService.ToggleTodo(db, id)
	if err != nil {
		return todo, err
	}

	FlushTodoCaches(s.cache)

	return todo, nil
}

// CachedStatsService decorates a StatsService with a short-TTL cache; the
// dashboard polls stats far more often than the task set changes.
type CachedStatsService struct {
	statsService StatsService
	cache        cache.Cache
}

func NewCachedStatsService(statsService StatsService, cacheInstance cache.Cache) *CachedStatsService {
	return &CachedStatsService{
		statsService: statsService,
		cache:        cacheInstance,
	}
}

func (s *CachedStatsService) GetStatistics(db *gorm.DB) (Statistics, error) {
	var cached Statistics
	if err := s.cache.Get(statsCacheKey, &cached); err == nil {
		return cached, nil
	}

	stats, err := s.statsService.GetStatistics(db)
	if err != nil {
		return stats, err
	}

	_ = s.cache.Set(statsCacheKey, stats, statsCacheTTL)

	return stats, nil
}
