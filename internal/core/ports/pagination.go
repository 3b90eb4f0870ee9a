// internal/core/ports/pagination.go
package ports

// ListParams holds pagination input. Limit 0 means "return everything".
type ListParams struct {
	Page  int
	Limit int
}

// Unpaged reports whether the caller asked for all rows.
func (p ListParams) Unpaged() bool { return p.Limit <= 0 }

// Offset returns the row offset for the requested page.
func (p ListParams) Offset() int {
	if p.Unpaged() || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ListResult holds one page of results
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewListResult fills in the derived paging fields.
func NewListResult[T any](items []T, total int64, params ListParams) *ListResult[T] {
	if items == nil {
		items = []T{}
	}
	result := &ListResult[T]{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
		TotalPages: 1,
	}
	if params.Unpaged() {
		result.Page = 1
		result.PageSize = len(items)
		return result
	}
	result.TotalPages = int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		result.TotalPages++
	}
	return result
}
