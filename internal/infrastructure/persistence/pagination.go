package persistence

import (
	"github.com/simpleaccounting/backend/internal/domain/shared"
)

// newPaginated assembles a paginated result from a page of items and the
// unpaginated total.
func newPaginated[T any](items []T, total int64, filter shared.Filter) *shared.Paginated[T] {
	totalPages := 0
	if filter.PageSize > 0 {
		totalPages = int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	}
	return &shared.Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}
}
