package pagination

import (
	"fmt"
	"strings"
)

// Page size defaults and validation limits.
const (
	DefaultPageSize  = 10
	MinPageSize      = 1
	MaxPageSize      = 1000
	DefaultSortField = ""
)

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// Params holds the page-size and sort flags and provides validation.
type Params struct {
	// PageSize is the number of records per page.
	PageSize int

	// Sort is an optional initial sort in "field" or "field:order" form.
	Sort string
}

// Validate checks that the page size is within bounds and the sort expression parses.
func (p Params) Validate() error {
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page-size must be between %d and %d, got %d",
			ErrInvalidArgument, MinPageSize, MaxPageSize, p.PageSize)
	}
	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "username:desc", "id:asc".
// A missing order defaults to ascending, matching a first header click.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field string, dir Direction, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return DefaultSortField, Ascending, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		dir = Ascending
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		dir, err = ParseDirection(parts[1])
		if err != nil {
			return "", Ascending, err
		}
	default:
		return "", Ascending, fmt.Errorf(
			"%w: invalid sort format %q, use 'field' or 'field:order' (e.g., 'name:desc')",
			ErrInvalidArgument, sortStr)
	}

	if field == "" {
		return "", Ascending, fmt.Errorf("%w: sort field cannot be empty", ErrInvalidArgument)
	}

	return field, dir, nil
}
