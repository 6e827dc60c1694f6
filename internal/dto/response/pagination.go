package response

import (
	"filmoteka/pkg/utils"
)

type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// NewPaginatedResponse assembles page metadata from the filtered total.
// HasMore is true while pages served so far have not exhausted the total.
func NewPaginatedResponse[T any](data []T, page, perPage int, total int64) *PaginatedResponse[T] {
	offset := utils.CalculateOffset(page, perPage)

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			Total:      total,
			Page:       page,
			TotalPages: utils.CalculateTotalPages(total, perPage),
			HasMore:    int64(offset+len(data)) < total,
		},
	}
}
