package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params holds the sanitized page/limit pair extracted from a request.
type Params struct {
	Page  int
	Limit int
}

// Parse builds Params from raw query values. Absent, non-numeric or
// non-positive values fall back to the defaults; limit is capped at MaxLimit.
func Parse(pageStr, limitStr string) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the pagination block attached to list responses.
type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// NewPage computes totalPages as ceil(total/limit) and flags hasMore while
// the requested page is before the last one.
func NewPage(p Params, total int64) Page {
	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return Page{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    p.Page < totalPages,
	}
}

// NewOffsetPage is the variant used by the payment list: hasMore is true when
// rows beyond the returned window still exist.
func NewOffsetPage(p Params, total int64, returned int) Page {
	page := NewPage(p, total)
	page.HasMore = int64(p.Offset()+returned) < total
	return page
}
