package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ParsePagination reads ?page and ?limit, falling back to page 1 of 10.
func ParsePagination(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// WithTotal fills in the total and page count.
func (p Pagination) WithTotal(total int64) Pagination {
	p.Total = total
	p.Pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	return p
}

// SortOrder normalises a user-supplied direction to asc or desc.
func SortOrder(value, fallback string) string {
	switch value {
	case "asc", "desc":
		return value
	}
	return fallback
}
