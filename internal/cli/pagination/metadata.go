package pagination

import "math"

// Meta describes one page of results.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewMeta computes page metadata for totalCount items.
func NewMeta(p Params, totalCount int) Meta {
	offset, pageSize := p.OffsetLimit()
	if pageSize == 0 {
		pageSize = totalCount
	}

	currentPage := 1
	if pageSize > 0 {
		currentPage = offset/pageSize + 1
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(totalCount) / float64(pageSize)))
	}

	return Meta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
