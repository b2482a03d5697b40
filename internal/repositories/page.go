package repositories

import (
	"context"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageMeta defines the pagination metadata returned with every page.
type PageMeta struct {
	TotalItems      int64 `json:"total_items"`
	TotalPages      int   `json:"total_pages"`
	CurrentPage     int   `json:"current_page"`
	PageSize        int   `json:"page_size"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// Page is a paginated list of any entity.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// NormalizePage clamps a 1-based page number and a page size to sane bounds.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// NewPage creates a new Page.
func NewPage[T any](items []T, totalItems int64, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := (int(totalItems) + size - 1) / size
	return Page[T]{
		Items: items,
		Meta: PageMeta{
			TotalItems:      totalItems,
			TotalPages:      totalPages,
			CurrentPage:     page,
			PageSize:        size,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}
}

// Paginate counts the rows matched by q and fetches one page of them. decorate adds
// ordering and preloads to the fetch only; q itself should carry just the filter.
func Paginate[T any](ctx context.Context, q *gorm.DB, page, size int, decorate func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	page, size = NormalizePage(page, size)

	var totalItems int64
	if err := q.Session(&gorm.Session{Context: ctx}).Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, err
	}

	fetch := q.Session(&gorm.Session{Context: ctx})
	if decorate != nil {
		fetch = decorate(fetch)
	}

	var results []T
	offset := (page - 1) * size
	if err := fetch.Offset(offset).Limit(size).Find(&results).Error; err != nil {
		return nil, err
	}

	p := NewPage(results, totalItems, page, size)
	return &p, nil
}
