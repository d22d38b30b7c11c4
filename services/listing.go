package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize is the number of rows per list page
	DefaultPageSize = 9
	// MaxPageSize caps client-supplied page sizes
	MaxPageSize = 100
	// PageWindowSize is the number of page links shown in the pagination control
	PageWindowSize = 5
)

// ListParams carries the client-controlled list state: current page (1-indexed),
// page size and free-text search term.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
}

// Normalized returns params with defaults applied and bounds enforced
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// ListOptions is the per-resource configuration of the list controller: which
// text columns the search term matches against, the default ordering and the
// relationships to preload.
type ListOptions struct {
	SearchColumns []string
	Order         string
	Preloads      []string
}

// PageResult is one fetched window of a resource list. Page is the effective
// page after clamping, which may be lower than the requested page when rows
// were deleted or a search shrank the result set.
type PageResult[T any] struct {
	Items      []T
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}

// PageNumbers returns the window of page links for the result
func (r *PageResult[T]) PageNumbers() []int {
	return PageNumbers(r.Page, r.TotalPages)
}

// Meta returns the pagination metadata for list responses
func (r *PageResult[T]) Meta() map[string]interface{} {
	return map[string]interface{}{
		"page":         r.Page,
		"limit":        r.PageSize,
		"total":        r.TotalCount,
		"total_pages":  r.TotalPages,
		"page_numbers": r.PageNumbers(),
	}
}

// FetchPage produces one correctly paginated, optionally filtered window of a
// resource list. The query must already be scoped to the current owner; search,
// ordering, count and the offset/limit window are applied here so every resource
// shares the same list behavior.
func FetchPage[T any](query *gorm.DB, params ListParams, opts ListOptions) (*PageResult[T], error) {
	params = params.Normalized()

	if params.Search != "" && len(opts.SearchColumns) > 0 {
		cond, args := searchCondition(opts.SearchColumns, params.Search)
		query = query.Where(cond, args...)
	}

	var model T
	var total int64
	if err := query.Model(&model).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	totalPages := TotalPages(total, params.PageSize)

	// Clamp the requested page into range: deleting the last row of page N>1
	// or searching down to a smaller result set lands on the last real page
	// instead of an empty one.
	page := params.Page
	if page > totalPages {
		page = totalPages
	}

	for _, preload := range opts.Preloads {
		query = query.Preload(preload)
	}
	if opts.Order != "" {
		query = query.Order(opts.Order)
	}

	offset := (page - 1) * params.PageSize

	var items []T
	if err := query.Limit(params.PageSize).Offset(offset).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}

	return &PageResult[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// searchCondition builds a case-insensitive substring OR-match across the
// resource's search columns. Columns are code-supplied identifiers, never input.
func searchCondition(columns []string, term string) (string, []interface{}) {
	pattern := "%" + strings.ToLower(term) + "%"

	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
		args[i] = pattern
	}
	return strings.Join(clauses, " OR "), args
}

// TotalPages computes the page count for a total row count: always at least 1
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// PageNumbers returns the visible page-number window: all pages when there are
// five or fewer, the first five when near the start, the last five when near
// the end, otherwise a window centered on the current page.
func PageNumbers(page, totalPages int) []int {
	count := PageWindowSize
	if totalPages < count {
		count = totalPages
	}

	numbers := make([]int, 0, count)
	for i := 0; i < count; i++ {
		var n int
		switch {
		case totalPages <= PageWindowSize:
			n = i + 1
		case page <= 3:
			n = i + 1
		case page >= totalPages-2:
			n = totalPages - 4 + i
		default:
			n = page - 2 + i
		}
		numbers = append(numbers, n)
	}
	return numbers
}
