package services

import (
	"testing"
	"time"

	"todo-manager/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled :memory: connection would open a fresh empty database per
	// connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Todo{}))

	return db
}

type seedTodo struct {
	title       string
	description string
	category    string
	completed   bool
	dueIn       *int // days from now; nil means no due date
	createdAt   time.Time
}

func seed(t *testing.T, db *gorm.DB, todos ...seedTodo) []models.Todo {
	t.Helper()

	created := make([]models.Todo, 0, len(todos))
	for _, s := range todos {
		todo := models.Todo{
			ID:          uuid.Must(uuid.NewV4()),
			Title:       s.title,
			Description: s.description,
			Category:    s.category,
			Completed:   s.completed,
		}
		if s.dueIn != nil {
			due := time.Now().AddDate(0, 0, *s.dueIn)
			todo.DueDate = &due
		}
		require.NoError(t, db.Create(&todo).Error)

		if !s.createdAt.IsZero() {
			require.NoError(t, db.Model(&todo).UpdateColumn("created_at", s.createdAt).Error)
			todo.CreatedAt = s.createdAt
		}
		created = append(created, todo)
	}
	return created
}

func days(n int) *int {
	return &n
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return id
}
