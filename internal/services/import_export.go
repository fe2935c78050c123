package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"todo-manager/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	ImportModeMerge   = "merge"
	ImportModeReplace = "replace"
)

var ErrInvalidImportMode = errors.New("invalid import mode")

// ExportTask is the portable record format: plain strings, ISO-8601
// timestamps, null dueDate when unset.
type ExportTask struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"dueDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type ExportEnvelope struct {
	ExportDate     string       `json:"exportDate"`
	TotalTasks     int          `json:"totalTasks"`
	CompletedTasks int          `json:"completedTasks"`
	Tasks          []ExportTask `json:"tasks"`
}

// ImportTask tolerates loosely-typed input: Completed may arrive as a bool,
// string, or number and is coerced.
type ImportTask struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Completed   interface{} `json:"completed"`
	DueDate     string      `json:"dueDate"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

type ImportExportService interface {
	ExportTodos(db *gorm.DB) (ExportEnvelope, error)
	ImportTodos(db *gorm.DB, tasks []ImportTask, mode string) (ImportResult, error)
}

type ImportExportServiceImpl struct{}

func NewImportExportService() *ImportExportServiceImpl {
	return &ImportExportServiceImpl{}
}

// ExportTodos snapshots every todo, newest-created first. Pure read.
func (s *ImportExportServiceImpl) ExportTodos(db *gorm.DB) (ExportEnvelope, error) {
	var todos []models.Todo
	if err := db.Order("created_at DESC").Find(&todos).Error; err != nil {
		return ExportEnvelope{}, err
	}

	envelope := ExportEnvelope{
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		TotalTasks: len(todos),
		Tasks:      make([]ExportTask, 0, len(todos)),
	}

	for _, todo := range todos {
		if todo.Completed {
			envelope.CompletedTasks++
		}

		record := ExportTask{
			Title:       todo.Title,
			Description: todo.Description,
			Category:    todo.Category,
			Completed:   todo.Completed,
			CreatedAt:   todo.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:   todo.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if todo.DueDate != nil {
			due := todo.DueDate.UTC().Format(time.RFC3339)
			record.DueDate = &due
		}
		envelope.Tasks = append(envelope.Tasks, record)
	}

	return envelope, nil
}

// ImportTodos reconciles the incoming task list with the store. In replace
// mode every existing todo is purged first (irreversibly); in merge mode an
// incoming task whose (title, description, category) triple already exists
// is skipped. Items are processed independently: a missing title or a store
// failure counts as an error and processing moves on. The tally always sums
// to the input length in merge mode; replace mode has no skip path.
func (s *ImportExportServiceImpl) ImportTodos(db *gorm.DB, tasks []ImportTask, mode string) (ImportResult, error) {
	if mode == "" {
		mode = ImportModeMerge
	}
	if mode != ImportModeMerge && mode != ImportModeReplace {
		return ImportResult{}, ErrInvalidImportMode
	}

	if mode == ImportModeReplace {
		err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Todo{}).Error
		if err != nil {
			return ImportResult{}, err
		}
	}

	var result ImportResult
	for _, task := range tasks {
		title := strings.TrimSpace(task.Title)
		if title == "" {
			result.Errors++
			continue
		}

		description := strings.TrimSpace(task.Description)
		category := strings.TrimSpace(task.Category)

		if mode == ImportModeMerge {
			var existing models.Todo
			err := db.Where("title = ? AND description = ? AND category = ?",
				title, description, category).First(&existing).Error
			if err == nil {
				result.Skipped++
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				result.Errors++
				continue
			}
		}

		todo := models.Todo{
			ID:          uuid.Must(uuid.NewV4()),
			Title:       title,
			Description: description,
			Category:    category,
			Completed:   coerceBool(task.Completed),
		}
		if due := parseDueDate(task.DueDate); due != nil {
			todo.DueDate = due
		}

		if err := db.Create(&todo).Error; err != nil {
			result.Errors++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// coerceBool mirrors loose JSON truthiness for the completed flag.
func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	case float64:
		return v != 0
	default:
		return false
	}
}
