package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyportal/internal/app/models/dto"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 60
	DefaultPage     = 1 // pages are 1-based
	// MaxPage caps client page numbers so offsets stay far from int overflow.
	MaxPage = 1_000_000
)

// PageLimits bounds the page size accepted from clients.
type PageLimits struct {
	Default int
	Max     int
}

// DefaultPageLimits are used when the portal config does not override them.
var DefaultPageLimits = PageLimits{Default: DefaultPageSize, Max: MaxPageSize}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams extracts and validates pagination parameters from the request
func ParsePaginationParams(c *gin.Context, limits PageLimits) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}

	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(limits.Default)))
	if err != nil || size <= 0 || size > limits.Max {
		size = limits.Default
	}

	return page, size
}

// CalculateSliceIndices calculates the start and end indices for slicing an array for pagination
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	if totalItems <= 0 {
		return 0, 0
	}
	// Checked by division so a huge page cannot overflow the multiplication.
	if page-1 >= (totalItems+size-1)/size {
		return totalItems, totalItems
	}

	start = (page - 1) * size
	end = start + size
	if end > totalItems {
		end = totalItems
	}
	return start, end
}

// PageOffset is the number of rows before page, for SQL OFFSET. page is capped at
// MaxPage.
func PageOffset(page, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	return (page - 1) * size
}

// Paginate returns the requested page of items together with its pagination info.
// Pages past the end are empty.
func Paginate[T any](items []T, page, size int) ([]T, dto.PaginationInfo) {
	start, end := CalculateSliceIndices(page, size, len(items))
	info := NewPaginationInfo(len(items), page, size)
	return items[start:end], info
}
