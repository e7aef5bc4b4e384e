// Package model defines the persistence-agnostic domain types shared by every
// service layer: links, access events, and admin sessions.
package model

import "time"

// LinkStatus controls whether a link's redirect path is live.
type LinkStatus int

const (
	// StatusEnabled links redirect normally.
	StatusEnabled LinkStatus = 0
	// StatusDisabled links still resolve for the admin API but the redirect
	// path treats them as not found.
	StatusDisabled LinkStatus = 1
)

// Link maps a short code to an original URL.
type Link struct {
	ID          int64
	Code        string
	OriginalURL string
	Description string
	Status      LinkStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Enabled reports whether the redirect path should honor this link.
func (l *Link) Enabled() bool {
	return l.Status == StatusEnabled
}

// LinkPatch carries the optional fields accepted by Update. A nil field is
// left untouched.
type LinkPatch struct {
	OriginalURL *string
	Description *string
	Status      *LinkStatus
}

// LinkFilter narrows ListLinks results.
type LinkFilter struct {
	Code            string
	OriginalURLLike string
	Status          *LinkStatus
}

// SortKey enumerates the sort columns ListLinks/ListEvents accept.
type SortKey string

const (
	SortByID        SortKey = "id"
	SortByCreatedAt SortKey = "created_at"
	SortByUpdatedAt SortKey = "updated_at"
	SortByCode      SortKey = "code"
)

// SortOrder is either ascending or descending.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Page describes pagination + sort parameters common to every list operation.
type Page struct {
	Number  int // 1-based
	PerPage int
	SortBy  SortKey
	Order   SortOrder
}

// Normalize fills in defaults and clamps out-of-range values.
func (p Page) Normalize(defaultSort SortKey) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 10
	}
	if p.PerPage > 200 {
		p.PerPage = 200
	}
	if p.SortBy == "" {
		p.SortBy = defaultSort
	}
	if p.Order != OrderAsc && p.Order != OrderDesc {
		p.Order = OrderDesc
	}
	return p
}

// Offset returns the SQL OFFSET for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// PageMeta is the envelope metadata returned alongside list results.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Count      int   `json:"count"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// NewPageMeta computes the envelope metadata for a page of results.
func NewPageMeta(p Page, count int, total int64) PageMeta {
	totalPages := total / int64(p.PerPage)
	if total%int64(p.PerPage) != 0 {
		totalPages++
	}
	return PageMeta{
		Page:       p.Number,
		PerPage:    p.PerPage,
		Count:      count,
		Total:      total,
		TotalPages: totalPages,
	}
}
