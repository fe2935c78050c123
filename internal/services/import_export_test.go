package services

import (
	"testing"
	"time"

	"todo-manager/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportTodos_Envelope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportExportService()

	now := time.Now()
	seed(t, db,
		seedTodo{title: "old", completed: true, createdAt: now.Add(-time.Hour)},
		seedTodo{title: "new", dueIn: days(5), createdAt: now},
	)

	envelope, err := svc.ExportTodos(db)
	require.NoError(t, err)

	assert.Equal(t, 2, envelope.TotalTasks)
	assert.Equal(t, 1, envelope.CompletedTasks)
	require.Len(t, envelope.Tasks, 2)

	assert.Equal(t, "new", envelope.Tasks[0].Title, "newest created first")
	assert.Equal(t, "old", envelope.Tasks[1].Title)

	require.NotNil(t, envelope.Tasks[0].DueDate)
	_, err = time.Parse(time.RFC3339, *envelope.Tasks[0].DueDate)
	assert.NoError(t, err, "due date serializes as ISO-8601")
	assert.Nil(t, envelope.Tasks[1].DueDate, "absent due date exports as null")

	_, err = time.Parse(time.RFC3339, envelope.ExportDate)
	assert.NoError(t, err)
}

func TestExportTodos_Empty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportExportService()

	envelope, err := svc.ExportTodos(db)
	require.NoError(t, err)

	assert.Zero(t, envelope.TotalTasks)
	assert.NotNil(t, envelope.Tasks, "tasks is an empty array, not null")
}

func TestImportTodos_Merge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportExportService()

	seed(t, db, seedTodo{title: "existing", description: "desc", category: "Work"})

	result, err := svc.ImportTodos(db, []ImportTask{
		{Title: "existing", Description: "desc", Category: "Work"},   // duplicate triple
		{Title: "existing", Description: "other", Category: "Work"},  // differing description
		{Title: "brand new", Completed: true, DueDate: "2026-01-15"}, // fresh
		{Title: "   "}, // missing title
	}, ImportModeMerge)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 4, result.Imported+result.Skipped+result.Errors,
		"merge tally covers every input item")

	var count int64
	db.Model(&models.Todo{}).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestImportTodos_MergeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportExportService()

	tasks := []ImportTask{
		{Title: "one", Category: "Work"},
		{Title: "two", Category: "Personal"},
	}

	first, err := svc.ImportTodos(db, tasks, ImportModeMerge)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := svc.ImportTodos(db, tasks, ImportModeMerge)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)

	var count int64
	db.Model(&models.Todo{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestImportTodos_Replace(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportExportService()

	seed(t, db,
		seedTodo{title: "doomed 1"},
		seedTodo{title: "doomed 2"},
	)

	result, err := svc.ImportTodos(db, []ImportTask{
		{Title: "fresh", Completed: "true"},
		{Title: ""}, // invalid
	}, ImportModeReplace)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped, "replace mode has no skip path")
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 2, result.Imported+result.Errors)

	var todos []models.Todo
	require.NoError(t, db.Find(&todos).Error)
	require.Len(t, todos, 1, "store contains exactly the valid imported items")
	assert.Equal(t, "fresh", todos[0].Title)
	assert.True(t, todos[0].Completed, "string completed coerces to bool")
}

func TestImportTodos_ReplaceDuplicatesAllowed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportExportService()

	result, err := svc.ImportTodos(db, []ImportTask{
		{Title: "same", Category: "Work"},
		{Title: "same", Category: "Work"},
	}, ImportModeReplace)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported, "replace mode performs no duplicate check")
}

func TestImportTodos_InvalidMode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportExportService()

	seed(t, db, seedTodo{title: "survivor"})

	_, err := svc.ImportTodos(db, []ImportTask{{Title: "x"}}, "upsert")
	assert.ErrorIs(t, err, ErrInvalidImportMode)

	var count int64
	db.Model(&models.Todo{}).Count(&count)
	assert.EqualValues(t, 1, count, "invalid mode mutates nothing")
}

func TestImportTodos_DefaultModeIsMerge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportExportService()

	seed(t, db, seedTodo{title: "existing"})

	result, err := svc.ImportTodos(db, []ImportTask{{Title: "existing"}}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportTodos_Normalization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportExportService()

	result, err := svc.ImportTodos(db, []ImportTask{
		{Title: "  padded  ", Description: " d ", Category: " c ", Completed: float64(1), DueDate: "2026-03-01"},
	}, ImportModeMerge)
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)

	var todo models.Todo
	require.NoError(t, db.First(&todo).Error)
	assert.Equal(t, "padded", todo.Title)
	assert.Equal(t, "d", todo.Description)
	assert.Equal(t, "c", todo.Category)
	assert.True(t, todo.Completed, "numeric completed coerces to bool")
	require.NotNil(t, todo.DueDate)
	assert.Equal(t, "2026-03-01", todo.DueDate.Format("2006-01-02"))
}

func TestCoerceBool(t *testing.T) {
	cases := []struct {
		in   interface{}
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"false", false},
		{"yes", false},
		{float64(0), false},
		{float64(2), true},
		{nil, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, coerceBool(tc.in), "coerceBool(%v)", tc.in)
	}
}
