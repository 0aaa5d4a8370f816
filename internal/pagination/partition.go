package pagination

import "fmt"

// Partition splits items into consecutive pages of at most pageSize elements.
// The last page may be shorter. An empty input yields zero pages.
//
// Pages share the backing array of items, with capacity capped to their
// length so that appending to one page never overwrites the next.
func Partition[T any](items []T, pageSize int) ([][]T, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidArgument, pageSize)
	}

	pages := make([][]T, 0, PageCount(len(items), pageSize))
	for start := 0; start < len(items); start += pageSize {
		end := min(start+pageSize, len(items))
		pages = append(pages, items[start:end:end])
	}

	return pages, nil
}

// PageCount returns ceil(total/pageSize), or 0 when either value is not positive.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}
