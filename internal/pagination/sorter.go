package pagination

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort direction.
type Direction int

const (
	// Ascending sorts in natural key order.
	Ascending Direction = iota
	// Descending reverses the ascending result.
	Descending
)

// Sort order names accepted on the command line and in config files.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return SortOrderDesc
	}
	return SortOrderAsc
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection parses "asc" or "desc" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SortOrderAsc:
		return Ascending, nil
	case SortOrderDesc:
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("%w: sort order must be 'asc' or 'desc', got %q", ErrInvalidArgument, s)
	}
}

// LessFunc reports whether key a orders before key b.
type LessFunc func(a, b string) bool

// BinaryLess orders keys by byte value, so "Bob" sorts before "amy".
func BinaryLess(a, b string) bool {
	return a < b
}

// CollatorLess returns a case-insensitive, locale-aware LessFunc for tag.
// The underlying collator is guarded so the returned func may be shared.
func CollatorLess(tag language.Tag) LessFunc {
	c := collate.New(tag, collate.IgnoreCase)
	var mu sync.Mutex
	return func(a, b string) bool {
		mu.Lock()
		defer mu.Unlock()
		return c.CompareString(a, b) < 0
	}
}

// SortStable returns a sorted copy of items; the input is not modified.
// Ascending uses a stable sort on key. Descending sorts ascending and then
// reverses, so records with equal keys end up in reverse of their prior order.
func SortStable[T any](items []T, key func(T) string, dir Direction, less LessFunc) []T {
	if less == nil {
		less = BinaryLess
	}

	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(key(sorted[i]), key(sorted[j]))
	})

	if dir == Descending {
		slices.Reverse(sorted)
	}

	return sorted
}

// Sorter defines the interface for sorting items by a named field.
type Sorter[T any] interface {
	// Sort sorts items by the specified field and direction.
	Sort(items []T, field string, dir Direction) []T
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// FieldSorter implements Sorter over registered key extractors.
type FieldSorter[T any] struct {
	keys map[string]func(T) string
	less LessFunc
}

// NewFieldSorter creates a FieldSorter comparing keys with less.
// A nil less falls back to BinaryLess.
func NewFieldSorter[T any](less LessFunc) *FieldSorter[T] {
	if less == nil {
		less = BinaryLess
	}
	return &FieldSorter[T]{
		keys: make(map[string]func(T) string),
		less: less,
	}
}

// Register makes field sortable using key to extract its value.
func (s *FieldSorter[T]) Register(field string, key func(T) string) {
	s.keys[field] = key
}

// IsValidField checks if the field is registered.
func (s *FieldSorter[T]) IsValidField(field string) bool {
	_, ok := s.keys[field]
	return ok
}

// GetValidFields returns all registered fields.
func (s *FieldSorter[T]) GetValidFields() []string {
	fields := make([]string, 0, len(s.keys))
	for field := range s.keys {
		fields = append(fields, field)
	}
	sort.Strings(fields) // Return in consistent order
	return fields
}

// Sort sorts items by field and direction.
// Returns a new sorted slice; does not modify items.
// If field is not registered, returns items unchanged.
func (s *FieldSorter[T]) Sort(items []T, field string, dir Direction) []T {
	key, ok := s.keys[field]
	if !ok {
		return items
	}
	return SortStable(items, key, dir, s.less)
}
