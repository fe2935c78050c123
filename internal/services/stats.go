package services

import (
	"math"
	"time"

	"todo-manager/backend/internal/models"

	"gorm.io/gorm"
)

// uncategorizedBucket labels the category group for todos with an empty
// category.
const uncategorizedBucket = "uncategorized"

type CategoryStats struct {
	Category  string `json:"category"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Pending   int64  `json:"pending"`
}

type Statistics struct {
	Total          int64           `json:"total"`
	Completed      int64           `json:"completed"`
	Pending        int64           `json:"pending"`
	Overdue        int64           `json:"overdue"`
	Upcoming       int64           `json:"upcoming"`
	CompletionRate int             `json:"completionRate"`
	Categories     []CategoryStats `json:"categories"`
}

type StatsService interface {
	GetStatistics(db *gorm.DB) (Statistics, error)
}

type StatsServiceImpl struct{}

func NewStatsService() *StatsServiceImpl {
	return &StatsServiceImpl{}
}

// GetStatistics derives the dashboard counters from the current task set.
// Overdue and upcoming are disjoint by construction: overdue is strictly
// before now, upcoming is now through now+7d, and both exclude completed
// todos.
func (s *StatsServiceImpl) GetStatistics(db *gorm.DB) (Statistics, error) {
	var stats Statistics
	now := time.Now()
	nextWeek := now.AddDate(0, 0, 7)

	if err := db.Model(&models.Todo{}).Count(&stats.Total).Error; err != nil {
		return Statistics{}, err
	}

	if err := db.Model(&models.Todo{}).Where("completed = ?", true).Count(&stats.Completed).Error; err != nil {
		return Statistics{}, err
	}
	stats.Pending = stats.Total - stats.Completed

	err := db.Model(&models.Todo{}).
		Where("completed = ? AND due_date IS NOT NULL AND due_date < ?", false, now).
		Count(&stats.Overdue).Error
	if err != nil {
		return Statistics{}, err
	}

	err = db.Model(&models.Todo{}).
		Where("completed = ? AND due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", false, now, nextWeek).
		Count(&stats.Upcoming).Error
	if err != nil {
		return Statistics{}, err
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	categories, err := s.categoryBreakdown(db)
	if err != nil {
		return Statistics{}, err
	}
	stats.Categories = categories

	return stats, nil
}

func (s *StatsServiceImpl) categoryBreakdown(db *gorm.DB) ([]CategoryStats, error) {
	var rows []CategoryStats
	err := db.Model(&models.Todo{}).
		Select("category, COUNT(*) AS total, SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Group("category").
		Order("total DESC, category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if rows[i].Category == "" {
			rows[i].Category = uncategorizedBucket
		}
		rows[i].Pending = rows[i].Total - rows[i].Completed
	}

	return rows, nil
}
