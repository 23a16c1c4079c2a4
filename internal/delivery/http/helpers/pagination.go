package helpers

import (
	"net/http"
	"strconv"

	"secretsanta/internal/domain"
)

// Dispatch log paging. A default page holds a full default-sized draw.
const (
	DefaultPage     = 1
	DefaultPageSize = domain.DefaultMaxParticipants
	MaxPageSize     = 50
)

// ParsePagination reads page and page_size from the query string. Missing,
// malformed or non-positive values fall back to the defaults; page_size is capped.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     positiveQueryInt(q.Get("page"), DefaultPage),
		PageSize: min(positiveQueryInt(q.Get("page_size"), DefaultPageSize), MaxPageSize),
	}
}

func positiveQueryInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// PaginationMeta accompanies a page of dispatch records.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta describes page out of total records; TotalPages is 0 when pageSize is.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	meta := PaginationMeta{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		meta.TotalPages = (total + pageSize - 1) / pageSize
	}
	return meta
}
