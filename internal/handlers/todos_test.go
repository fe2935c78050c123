package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"todo-manager/backend/internal/handlers"
	"todo-manager/backend/internal/models"
	"todo-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MockTodoService struct {
	shouldReturnError bool
	returnNotFound    bool
	todos             []models.Todo
}

func (m *MockTodoService) CreateTodo(db *gorm.DB, input services.CreateTodoInput) (models.Todo, error) {
	if m.shouldReturnError {
		return models.Todo{}, gorm.ErrInvalidData
	}
	if input.Title == "" {
		return models.Todo{}, services.ErrTitleRequired
	}
	todo := models.Todo{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
	}
	m.todos = append(m.todos, todo)
	return todo, nil
}

func (m *MockTodoService) GetTodos(db *gorm.DB) ([]models.Todo, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	return m.todos, nil
}

func (m *MockTodoService) GetTodoByID(db *gorm.DB, id uuid.UUID) (models.Todo, error) {
	if m.shouldReturnError {
		return models.Todo{}, gorm.ErrInvalidData
	}
	if m.returnNotFound {
		return models.Todo{}, gorm.ErrRecordNotFound
	}

	for _, todo := range m.todos {
		if todo.ID == id {
			return todo, nil
		}
	}
	return models.Todo{ID: id, Title: "Test Todo"}, nil
}

func (m *MockTodoService) UpdateTodo(db *gorm.DB, id uuid.UUID, input services.UpdateTodoInput) (models.Todo, error) {
	if m.shouldReturnError {
		return models.Todo{}, gorm.ErrInvalidData
	}
	if m.returnNotFound {
		return models.Todo{}, gorm.ErrRecordNotFound
	}
	todo := models.Todo{ID: id, Title: "Test Todo"}
	if input.Title != nil {
		if *input.Title == "" {
			return models.Todo{}, services.ErrTitleRequired
		}
		todo.Title = *input.Title
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	return todo, nil
}

func (m *MockTodoService) DeleteTodo(db *gorm.DB, id uuid.UUID) error {
	if m.shouldReturnError {
		return gorm.ErrInvalidData
	}
	if m.returnNotFound {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *MockTodoService) ToggleTodo(db *gorm.DB, id uuid.UUID) (models.Todo, error) {
	if m.shouldReturnError {
		return models.Todo{}, gorm.ErrInvalidData
	}
	if m.returnNotFound {
		return models.Todo{}, gorm.ErrRecordNotFound
	}
	return models.Todo{ID: id, Title: "Test Todo", Completed: true}, nil
}

func setupTodoHandler() (*handlers.TodoHandler, *MockTodoService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	mockService := &MockTodoService{}
	handler := handlers.NewTodoHandler(nil, mockService)
	router := gin.New()
	return handler, mockService, router
}

func TestCreateTodo(t *testing.T) {
	handler, _, router := setupTodoHandler()

	router.POST("/todos", handler.CreateTodo)

	input := services.CreateTodoInput{
		Title:       "Test Todo",
		Description: "Test Description",
		Category:    "Work",
	}

	inputJSON, _ := json.Marshal(input)
	req, _ := http.NewRequest("POST", "/todos", bytes.NewBuffer(inputJSON))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var created models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if created.Title != "Test Todo" {
		t.Errorf("Expected title 'Test Todo', got '%s'", created.Title)
	}
}

func TestCreateTodoMissingTitle(t *testing.T) {
	handler, _, router := setupTodoHandler()

	router.POST("/todos", handler.CreateTodo)

	inputJSON, _ := json.Marshal(services.CreateTodoInput{Description: "no title"})
	req, _ := http.NewRequest("POST", "/todos", bytes.NewBuffer(inputJSON))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if response["error"] != "Title is required" {
		t.Errorf("Expected error 'Title is required', got '%s'", response["error"])
	}
}

func TestCreateTodoInvalidJSON(t *testing.T) {
	handler, _, router := setupTodoHandler()

	router.POST("/todos", handler.CreateTodo)

	req, _ := http.NewRequest("POST", "/todos", bytes.NewBuffer([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetTodos(t *testing.T) {
	handler, mockService, router := setupTodoHandler()

	router.GET("/todos", handler.GetTodos)

	mockService.todos = []models.Todo{
		{ID: uuid.Must(uuid.NewV4()), Title: "Todo 1"},
		{ID: uuid.Must(uuid.NewV4()), Title: "Todo 2", Completed: true},
	}

	req, _ := http.NewRequest("GET", "/todos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var todos []models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todos); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if len(todos) != 2 {
		t.Errorf("Expected 2 todos, got %d", len(todos))
	}
}

func TestGetTodoByID(t *testing.T) {
	handler, _, router := setupTodoHandler()

	router.GET("/todos/:id", handler.GetTodoByID)

	todoID := uuid.Must(uuid.NewV4())

	req, _ := http.NewRequest("GET", "/todos/"+todoID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var todo models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todo); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if todo.Title != "Test Todo" {
		t.Errorf("Expected title 'Test Todo', got '%s'", todo.Title)
	}
}

func TestGetTodoByIDNotFound(t *testing.T) {
	handler, mockService, router := setupTodoHandler()

	router.GET("/todos/:id", handler.GetTodoByID)

	mockService.returnNotFound = true

	req, _ := http.NewRequest("GET", "/todos/"+uuid.Must(uuid.NewV4()).String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetTodoByIDInvalidID(t *testing.T) {
	handler, _, router := setupTodoHandler()

	router.GET("/todos/:id", handler.GetTodoByID)

	req, _ := http.NewRequest("GET", "/todos/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUpdateTodo(t *testing.T) {
	handler, _, router := setupTodoHandler()

	router.PUT("/todos/:id", handler.UpdateTodo)

	todoID := uuid.Must(uuid.NewV4())
	title := "Updated Todo"
	completed := true

	updateJSON, _ := json.Marshal(services.UpdateTodoInput{Title: &title, Completed: &completed})
	req, _ := http.NewRequest("PUT", "/todos/"+todoID.String(), bytes.NewBuffer(updateJSON))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var todo models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todo); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if todo.Title != "Updated Todo" {
		t.Errorf("Expected title 'Updated Todo', got '%s'", todo.Title)
	}
	if !todo.Completed {
		t.Error("Expected todo to be completed")
	}
}

func TestUpdateTodoBlankTitle(t *testing.T) {
	handler, _, router := setupTodoHandler()

	router.PUT("/todos/:id", handler.UpdateTodo)

	blank := ""

	updateJSON, _ := json.Marshal(services.UpdateTodoInput{Title: &blank})
	req, _ := http.NewRequest("PUT", "/todos/"+uuid.Must(uuid.NewV4()).String(), bytes.NewBuffer(updateJSON))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if response["error"] != "Title is required" {
		t.Errorf("Expected error 'Title is required', got '%s'", response["error"])
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	handler, mockService, router := setupTodoHandler()

	router.PUT("/todos/:id", handler.UpdateTodo)

	mockService.returnNotFound = true
	title := "Updated Todo"

	updateJSON, _ := json.Marshal(services.UpdateTodoInput{Title: &title})
	req, _ := http.NewRequest("PUT", "/todos/"+uuid.Must(uuid.NewV4()).String(), bytes.NewBuffer(updateJSON))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDeleteTodo(t *testing.T) {
	handler, _, router := setupTodoHandler()

	router.DELETE("/todos/:id", handler.DeleteTodo)

	req, _ := http.NewRequest("DELETE", "/todos/"+uuid.Must(uuid.NewV4()).String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestDeleteTodoNotFound(t *testing.T) {
	handler, mockService, router := setupTodoHandler()

	router.DELETE("/todos/:id", handler.DeleteTodo)

	mockService.returnNotFound = true

	req, _ := http.NewRequest("DELETE", "/todos/"+uuid.Must(uuid.NewV4()).String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestToggleTodo(t *testing.T) {
	handler, _, router := setupTodoHandler()

	router.PATCH("/todos/:id/toggle", handler.ToggleTodo)

	todoID := uuid.Must(uuid.NewV4())

	req, _ := http.NewRequest("PATCH", "/todos/"+todoID.String()+"/toggle", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var todo models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todo); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if !todo.Completed {
		t.Error("Expected toggled todo to be completed")
	}
}
