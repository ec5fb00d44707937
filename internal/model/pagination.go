package model

// Default page sizes for list operations.
const (
	DefaultPageLimit  = 20
	DefaultReplyLimit = 10
	MaxPageLimit      = 100
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes the envelope for a page of total rows.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Page is the standard list envelope: {data, pagination}.
type Page struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPage wraps data with its pagination envelope.
func NewPage(data any, page, limit, total int) *Page {
	return &Page{Data: data, Pagination: NewPagination(page, limit, total)}
}

// NormalizePage clamps page and limit to positive values with the given default limit.
func NormalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
