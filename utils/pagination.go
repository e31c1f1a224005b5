package utils

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination clamps page and limit to sane values and derives the page
// count from the total row count.
func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
	}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// InRange reports whether the requested page actually exists. Requests past
// the last page get an empty result, not an error.
func (p Pagination) InRange() bool {
	return p.Total > 0 && p.Page <= p.TotalPages
}

// ParsePageQuery reads page/limit query values, falling back to defaults on
// anything unparsable.
func ParsePageQuery(pageStr, limitStr string) (int, int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}
