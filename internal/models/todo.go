package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Todo is the single persisted entity. IDs are assigned by the application
// on insert and never change; CreatedAt/UpdatedAt are maintained by GORM.
type Todo struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsOverdue reports whether the todo has a due date in the past and is
// still incomplete.
func (t Todo) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// IsUpcoming reports whether the todo is incomplete and due within the
// next seven days (inclusive).
func (t Todo) IsUpcoming(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return !t.DueDate.Before(now) && !t.DueDate.After(now.AddDate(0, 0, 7))
}
