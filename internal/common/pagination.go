package common

import "github.com/gofiber/fiber/v2"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Pagination struct {
	TotalRecords int64 `json:"totalRecords"`
	CurrentPage  int   `json:"currentPage"`
	PageSize     int   `json:"pageSize"`
	TotalPages   int   `json:"totalPages"`
	NextPage     *int  `json:"nextPage"`
	PreviousPage *int  `json:"previousPage"`
}

// PageParams - ?page= ve ?pageSize= parametrelerini sınırlarla okur.
func PageParams(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func BuildPagination(total int64, page, pageSize int) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	p := Pagination{
		TotalRecords: total,
		CurrentPage:  page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
	}
	if page > 1 && page <= totalPages+1 {
		prev := page - 1
		p.PreviousPage = &prev
	}
	if page < totalPages {
		next := page + 1
		p.NextPage = &next
	}
	return p
}
