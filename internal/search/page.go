package search

import "math"

// Page limits. MaxPage keeps Offset from overflowing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = math.MaxInt / MaxPageSize
)

// PageRequest is a normalized 1-based page request.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest normalizes raw values: page < 1 becomes 1, a size < 1 becomes
// DefaultPageSize, and sizes above MaxPageSize are clamped. Pages past MaxPage
// are clamped and come back empty.
func NewPageRequest(page, pageSize int) PageRequest {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Offset is the number of rows preceding this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit is the maximum number of rows on this page.
func (p PageRequest) Limit() int {
	return p.PageSize
}

// Pagination is the page metadata returned with every list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes metadata for a page given the total match count.
func NewPagination(p PageRequest, total int) Pagination {
	return Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, p.PageSize),
	}
}

// TotalPages returns ceil(total / pageSize), or 0 when there is nothing to show.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
