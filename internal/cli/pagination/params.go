package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Pagination defaults and limits.
const (
	DefaultLimit     = 20
	MaxLimit         = 10000
	MaxPageSize      = 1000
	DefaultSortField = "date"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

const sortPartsMax = 2

// Validation errors.
var (
	ErrInvalidLimit         = fmt.Errorf("limit must be between 0 and %d", MaxLimit)
	ErrInvalidPageSize      = fmt.Errorf("page-size must be between 1 and %d", MaxPageSize)
	ErrInvalidOffset        = errors.New("offset must be non-negative")
	ErrInvalidPage          = errors.New("page must be >= 1")
	ErrMixedPaginationModes = errors.New("cannot use both --offset and --page")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'carbon:desc')")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
)

// Params holds pagination flags. Offset mode (--limit/--offset) and page
// mode (--page/--page-size) are mutually exclusive. A zero Limit means no
// limit.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
	Sort     string
}

// NewParams returns Params with defaults.
func NewParams() *Params {
	return &Params{Limit: DefaultLimit}
}

// AddFlags registers the pagination flags on cmd.
func (p *Params) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.Limit, "limit", p.Limit, "maximum number of items (0 = all)")
	cmd.Flags().IntVar(&p.Offset, "offset", p.Offset, "number of items to skip")
	cmd.Flags().IntVar(&p.Page, "page", p.Page, "1-based page number (use with --page-size)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", p.PageSize, "items per page")
	cmd.Flags().StringVar(&p.Sort, "sort", p.Sort, "sort as field[:asc|desc] (date, carbon, category, type)")
}

// Validate checks bounds and mode consistency.
func (p Params) Validate() error {
	switch {
	case p.Limit < 0 || p.Limit > MaxLimit:
		return ErrInvalidLimit
	case p.Offset < 0:
		return ErrInvalidOffset
	case p.Page < 0:
		return ErrInvalidPage
	case p.Page > 0 && p.Offset > 0:
		return ErrMixedPaginationModes
	case p.PageSize != 0 && p.Page == 0:
		return ErrPageSizeWithoutPage
	case p.Page > 0 && (p.PageSize < 1 || p.PageSize > MaxPageSize):
		return ErrInvalidPageSize
	}
	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// IsPageBased reports whether page mode is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// OffsetLimit returns the effective offset and limit; limit 0 means all.
//
//nolint:nonamedreturns // Named returns document the pair.
func (p Params) OffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the window of items selected by p.
func Apply[T any](p Params, items []T) []T {
	offset, limit := p.OffsetLimit()
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// ParseSort parses "field" or "field:order". An empty string yields the
// default field in descending order; a bare field defaults to descending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(expr string) (field, order string, err error) {
	if strings.TrimSpace(expr) == "" {
		return DefaultSortField, SortOrderDesc, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortField
	}

	order = SortOrderDesc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
