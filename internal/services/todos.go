package services

import (
	"errors"
	"strings"
	"time"

	"todo-manager/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var ErrTitleRequired = errors.New("title is required")

// CreateTodoInput carries the writable fields of a new todo. DueDate is an
// RFC3339 or YYYY-MM-DD string; anything unparsable is ignored.
type CreateTodoInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DueDate     string `json:"dueDate"`
}

// UpdateTodoInput uses pointers so absent fields are left untouched. An
// empty DueDate string clears the due date.
type UpdateTodoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
	DueDate     *string `json:"dueDate"`
}

type TodoService interface {
	CreateTodo(db *gorm.DB, input CreateTodoInput) (models.Todo, error)
	GetTodos(db *gorm.DB) ([]models.Todo, error)
	GetTodoByID(db *gorm.DB, id uuid.UUID) (models.Todo, error)
	UpdateTodo(db *gorm.DB, id uuid.UUID, input UpdateTodoInput) (models.Todo, error)
	DeleteTodo(db *gorm.DB, id uuid.UUID) error
	ToggleTodo(db *gorm.DB, id uuid.UUID) (models.Todo, error)
}

type TodoServiceImpl struct{}

func NewTodoService() *TodoServiceImpl {
	return &TodoServiceImpl{}
}

func (s *TodoServiceImpl) CreateTodo(db *gorm.DB, input CreateTodoInput) (models.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Todo{}, ErrTitleRequired
	}

	todo := models.Todo{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Completed:   false,
	}

	if due := parseDueDate(input.DueDate); due != nil {
		todo.DueDate = due
	}

	if err := db.Create(&todo).Error; err != nil {
		return models.Todo{}, err
	}

	return todo, nil
}

func (s *TodoServiceImpl) GetTodos(db *gorm.DB) ([]models.Todo, error) {
	var todos []models.Todo
	if err := db.Order("created_at DESC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *TodoServiceImpl) GetTodoByID(db *gorm.DB, id uuid.UUID) (models.Todo, error) {
	var todo models.Todo
	if err := db.First(&todo, "id = ?", id).Error; err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (s *TodoServiceImpl) UpdateTodo(db *gorm.DB, id uuid.UUID, input UpdateTodoInput) (models.Todo, error) {
	todo, err := s.GetTodoByID(db, id)
	if err != nil {
		return models.Todo{}, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return models.Todo{}, ErrTitleRequired
		}
		updates["title"] = title
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Completed != nil {
		updates["completed"] = *input.Completed
	}
	if input.DueDate != nil {
		updates["due_date"] = parseDueDate(*input.DueDate)
	}

	if len(updates) == 0 {
		return todo, nil
	}

	if err := db.Model(&todo).Updates(updates).Error; err != nil {
		return models.Todo{}, err
	}

	return s.GetTodoByID(db, id)
}

func (s *TodoServiceImpl) DeleteTodo(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&models.Todo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *TodoServiceImpl) ToggleTodo(db *gorm.DB, id uuid.UUID) (models.Todo, error) {
	todo, err := s.GetTodoByID(db, id)
	if err != nil {
		return models.Todo{}, err
	}

	if err := db.Model(&todo).Update("completed", !todo.Completed).Error; err != nil {
		return models.Todo{}, err
	}

	return s.GetTodoByID(db, id)
}

// parseDueDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
// Empty or unparsable values yield nil.
func parseDueDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	return nil
}
