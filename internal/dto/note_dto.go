package dto

import (
	"math"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type PageQuery struct {
	Page  int `query:"page" validate:"min=1,max=1000000"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// Offset converts the 1-based page into a row offset.
func (q PageQuery) Offset() int {
	return PageOffset(q.Page, q.Limit)
}

// PageOffset returns (page-1)*limit, saturating at math.MaxInt instead of
// wrapping. Pages below 1 and non-positive limits give 0.
func PageOffset(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"required,notblank"`
}

type UpdateNoteRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Content  *string `json:"content" validate:"omitempty,notblank"`
	IsPublic *bool   `json:"is_public"`
}

func (r UpdateNoteRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.IsPublic == nil
}

type PrivateNoteResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PublicNoteResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsPublic  bool      `json:"is_public"`
}

type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// InferPagination builds pagination for a window whose total size is unknown.
// A full page means more rows probably exist; the total is an estimate of
// offset + returned (+1 when another page is likely), never an exact count.
func InferPagination(page, limit, returned int) Pagination {
	offset := PageOffset(page, limit)
	hasNext := returned == limit
	total := offset
	if extra := returned + btoi(hasNext); total <= math.MaxInt-extra {
		total += extra
	} else {
		total = math.MaxInt
	}
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasNext: hasNext,
		HasPrev: page > 1,
	}
}

// ExactPagination is used when the full result set is known.
func ExactPagination(page, limit, total int) Pagination {
	offset := PageOffset(page, limit)
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasNext: offset < total && total-offset > limit,
		HasPrev: page > 1,
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

type PublicNoteListData struct {
	Notes      []PublicNoteResponse `json:"notes"`
	Pagination Pagination           `json:"pagination"`
}

type PrivateNoteListData struct {
	Notes      []PrivateNoteResponse `json:"notes"`
	Pagination Pagination            `json:"pagination"`
}
