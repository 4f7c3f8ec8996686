package models

import (
	"time"

	"github.com/google/uuid"
)

// Base общие поля всех строк: идентификатор, метки времени и мягкое удаление
type Base struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (b Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// Pagination описывает страницу выборки
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

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
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// PageWindow нормализует limit/offset/page так же для всех списков.
// offset имеет приоритет над page; page выводится из offset.
func PageWindow(limit, offset, page, defaultLimit, maxLimit int) (int, int, int) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	if offset > 0 {
		return limit, offset, offset/limit + 1
	}

	if page < 1 {
		page = 1
	}

	return limit, (page - 1) * limit, page
}
