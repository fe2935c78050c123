package services

import (
	"strconv"
	"strings"
	"time"

	"todo-manager/backend/internal/models"

	"gorm.io/gorm"
)

const defaultPageSize = 20

// SearchParams holds the raw query parameters of a search request. All
// fields are optional; Normalize fills in defaults and clamps nonsense.
type SearchParams struct {
	Query     string
	Category  string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type SearchResult struct {
	Todos      []models.Todo `json:"todos"`
	Pagination Pagination    `json:"pagination"`
}

// sortColumns whitelists the sortable fields, mapping the API's camelCase
// names to store columns. Anything else falls back to createdAt.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"title":     "title",
	"category":  "category",
}

// ParseSearchParams builds SearchParams from raw query string values.
// Unparsable page/limit values fall back to their defaults.
func ParseSearchParams(query, category, status, sortBy, sortOrder, page, limit string) SearchParams {
	p := SearchParams{
		Query:     query,
		Category:  category,
		Status:    status,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      1,
		Limit:     defaultPageSize,
	}
	if n, err := strconv.Atoi(page); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil {
		p.Limit = n
	}
	p.Normalize()
	return p
}

// Normalize clamps pagination to sane minimums and resolves the sort plan.
// A zero or negative limit would otherwise make the page arithmetic divide
// by zero.
func (p *SearchParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageSize
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "createdAt"
	}
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
}

// scope applies the AND-composed filter set: free-text substring match over
// title/description/category, category substring match, and status.
func (p SearchParams) scope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Query != "" {
			like := "%" + strings.ToLower(p.Query) + "%"
			db = db.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
				like, like, like,
			)
		}

		if p.Category != "" {
			db = db.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(p.Category)+"%")
		}

		switch p.Status {
		case "completed":
			db = db.Where("completed = ?", true)
		case "pending":
			db = db.Where("completed = ?", false)
		case "overdue":
			db = db.Where("completed = ? AND due_date IS NOT NULL AND due_date < ?", false, now)
		}

		return db
	}
}

type SearchService interface {
	SearchTodos(db *gorm.DB, params SearchParams) (SearchResult, error)
}

type SearchServiceImpl struct{}

func NewSearchService() *SearchServiceImpl {
	return &SearchServiceImpl{}
}

// SearchTodos runs the filter plan twice against the store: once for the
// page of rows, once for the total count. It never mutates state.
func (s *SearchServiceImpl) SearchTodos(db *gorm.DB, params SearchParams) (SearchResult, error) {
	params.Normalize()
	now := time.Now()

	var totalCount int64
	if err := db.Model(&models.Todo{}).Scopes(params.scope(now)).Count(&totalCount).Error; err != nil {
		return SearchResult{}, err
	}

	order := sortColumns[params.SortBy] + " " + strings.ToUpper(params.SortOrder)
	skip := (params.Page - 1) * params.Limit

	todos := []models.Todo{}
	err := db.Model(&models.Todo{}).
		Scopes(params.scope(now)).
		Order(order).
		Offset(skip).
		Limit(params.Limit).
		Find(&todos).Error
	if err != nil {
		return SearchResult{}, err
	}

	totalPages := int((totalCount + int64(params.Limit) - 1) / int64(params.Limit))

	return SearchResult{
		Todos: todos,
		Pagination: Pagination{
			CurrentPage: params.Page,
			TotalPages:  totalPages,
			TotalCount:  totalCount,
			HasNext:     params.Page < totalPages,
			HasPrev:     params.Page > 1,
		},
	}, nil
}
