package services

import (
	"errors"

	"todo-manager/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	BulkActionMarkCompleted = "markCompleted"
	BulkActionMarkPending   = "markPending"
	BulkActionDelete        = "delete"
)

var (
	ErrInvalidAction = errors.New("invalid bulk action")
	ErrInvalidInput  = errors.New("invalid input")
)

type BulkService interface {
	ApplyBulkAction(db *gorm.DB, action string, todoIDs []string) (int64, error)
}

type BulkServiceImpl struct{}

func NewBulkService() *BulkServiceImpl {
	return &BulkServiceImpl{}
}

// ApplyBulkAction applies one action to every todo in the id set as a single
// batch statement. Unknown and malformed ids are silently ignored, duplicates
// are collapsed, and the returned count is the number of rows actually
// changed or deleted, not the size of the input. The statement is whatever
// the store makes of one UPDATE/DELETE; no per-item transaction or rollback
// is layered on top.
func (s *BulkServiceImpl) ApplyBulkAction(db *gorm.DB, action string, todoIDs []string) (int64, error) {
	if todoIDs == nil {
		return 0, ErrInvalidInput
	}

	switch action {
	case BulkActionMarkCompleted, BulkActionMarkPending, BulkActionDelete:
	default:
		return 0, ErrInvalidAction
	}

	ids := parseIDSet(todoIDs)
	if len(ids) == 0 {
		return 0, nil
	}

	var result *gorm.DB
	switch action {
	case BulkActionMarkCompleted:
		result = db.Model(&models.Todo{}).
			Where("id IN ? AND completed = ?", ids, false).
			Update("completed", true)
	case BulkActionMarkPending:
		result = db.Model(&models.Todo{}).
			Where("id IN ? AND completed = ?", ids, true).
			Update("completed", false)
	case BulkActionDelete:
		result = db.Where("id IN ?", ids).Delete(&models.Todo{})
	}

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// parseIDSet deduplicates and parses the incoming id strings. Malformed ids
// are dropped, matching how ids absent from the store are treated.
func parseIDSet(todoIDs []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(todoIDs))
	ids := make([]uuid.UUID, 0, len(todoIDs))
	for _, raw := range todoIDs {
		id, err := uuid.FromString(raw)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
