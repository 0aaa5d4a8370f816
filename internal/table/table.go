package table

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/pagedtable/internal/pagination"
)

// SortState is the active sort. Active is false until a sort is applied.
type SortState struct {
	Field     string
	Direction pagination.Direction
	Active    bool
}

// Option configures a Table.
type Option func(*options)

type options struct {
	logger      zerolog.Logger
	less        pagination.LessFunc
	sortField   string
	sortDir     pagination.Direction
	initialSort bool
}

// WithLogger sets the logger used for transition debug logs.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithLess sets the key comparison used by sorts. Defaults to byte order.
func WithLess(less pagination.LessFunc) Option {
	return func(o *options) { o.less = less }
}

// WithInitialSort sorts the working set by field in dir at construction.
// The column's next click applies the opposite direction.
func WithInitialSort(field string, dir pagination.Direction) Option {
	return func(o *options) {
		o.sortField = field
		o.sortDir = dir
		o.initialSort = true
	}
}

// Table is the paged table state machine. It is not safe for concurrent use.
type Table struct {
	records   []Record
	columns   []Column
	pageSize  int
	pages     [][]Record
	pageIndex int

	sorter  pagination.Sorter[Record]
	sort    SortState
	nextDir map[string]pagination.Direction

	logger zerolog.Logger
}

// New creates a Table over a copy of records.
// It returns ErrInvalidArgument for a non-positive pageSize or invalid columns.
func New(records []Record, columns []Column, pageSize int, opts ...Option) (*Table, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidArgument, pageSize)
	}
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}

	sorter := pagination.NewFieldSorter[Record](o.less)
	for _, col := range columns {
		if col.IsSortable {
			key := col.FieldKey
			sorter.Register(key, func(r Record) string { return r.Field(key) })
		}
	}

	t := &Table{
		records:  slices.Clone(records),
		columns:  slices.Clone(columns),
		pageSize: pageSize,
		sorter:   sorter,
		nextDir:  make(map[string]pagination.Direction),
		logger:   o.logger,
	}

	if o.initialSort {
		if !t.sorter.IsValidField(o.sortField) {
			return nil, fmt.Errorf("%w: initial sort field %q is not a sortable column", ErrInvalidArgument, o.sortField)
		}
		t.applySort(o.sortField, o.sortDir)
	} else if err := t.repartition(); err != nil {
		return nil, err
	}

	return t, nil
}

// repartition recomputes pages from the working set.
func (t *Table) repartition() error {
	pages, err := pagination.Partition(t.records, t.pageSize)
	if err != nil {
		return err
	}
	t.pages = pages
	return nil
}

// Prev moves to the previous page. It reports false at page 0.
func (t *Table) Prev() bool {
	if t.pageIndex <= 0 {
		return false
	}
	t.pageIndex--
	t.logger.Debug().Int("page", t.pageIndex).Msg("moved to previous page")
	return true
}

// Next moves to the next page. It reports false on the last page.
func (t *Table) Next() bool {
	if t.pageIndex >= len(t.pages)-1 {
		return false
	}
	t.pageIndex++
	t.logger.Debug().Int("page", t.pageIndex).Msg("moved to next page")
	return true
}

// GoTo jumps to the zero-based page n.
// It returns ErrIndexOutOfRange and leaves the table unchanged if n is outside [0, PageCount()).
func (t *Table) GoTo(n int) error {
	if n < 0 || n >= len(t.pages) {
		return fmt.Errorf("%w: page %d not in [0, %d)", ErrIndexOutOfRange, n, len(t.pages))
	}
	t.pageIndex = n
	t.logger.Debug().Int("page", n).Msg("jumped to page")
	return nil
}

// ToggleSort applies the remembered direction for field (ascending on the
// first click), flips that memory for the next click, and returns to page 0.
// Each column keeps its own memory.
func (t *Table) ToggleSort(field string) (pagination.Direction, error) {
	if !t.sorter.IsValidField(field) {
		return pagination.Ascending, fmt.Errorf("%w: column %q is not sortable (sortable: %s)",
			ErrInvalidArgument, field, strings.Join(t.sorter.GetValidFields(), ", "))
	}

	dir := t.nextDir[field] // zero value is Ascending
	t.applySort(field, dir)
	return dir, nil
}

func (t *Table) applySort(field string, dir pagination.Direction) {
	t.records = t.sorter.Sort(t.records, field, dir)
	t.nextDir[field] = dir.Opposite()
	t.sort = SortState{Field: field, Direction: dir, Active: true}
	t.pageIndex = 0
	// pageSize was validated at construction, so partitioning cannot fail.
	_ = t.repartition()

	t.logger.Debug().
		Str("field", field).
		Stringer("direction", dir).
		Msg("sorted working set")
}

// Apply dispatches an interaction event to the matching transition.
func (t *Table) Apply(ev Event) error {
	switch ev.Kind {
	case EventPrev:
		t.Prev()
	case EventNext:
		t.Next()
	case EventPage:
		return t.GoTo(ev.Index)
	case EventSort:
		_, err := t.ToggleSort(ev.Field)
		return err
	default:
		return fmt.Errorf("%w: unknown event %s", ErrInvalidArgument, ev)
	}
	return nil
}

// PageIndex returns the zero-based index of the current page.
func (t *Table) PageIndex() int { return t.pageIndex }

// PageCount returns the number of pages, 0 for an empty working set.
func (t *Table) PageCount() int { return len(t.pages) }

// PageSize returns the configured page size.
func (t *Table) PageSize() int { return t.pageSize }

// Len returns the number of records in the working set.
func (t *Table) Len() int { return len(t.records) }

// Sort returns the active sort.
func (t *Table) Sort() SortState { return t.sort }

// NextDirection returns the direction the next click on field would apply.
func (t *Table) NextDirection(field string) pagination.Direction {
	return t.nextDir[field]
}

// Columns returns a copy of the column descriptors.
func (t *Table) Columns() []Column { return slices.Clone(t.columns) }

// Records returns a copy of the working set in display order.
func (t *Table) Records() []Record { return slices.Clone(t.records) }

// CurrentPage returns a copy of the records on the current page.
// It is empty when the working set is empty.
func (t *Table) CurrentPage() []Record {
	if len(t.pages) == 0 {
		return []Record{}
	}
	return slices.Clone(t.pages[t.pageIndex])
}

// Meta returns metadata for the current page.
func (t *Table) Meta() pagination.Meta {
	return pagination.NewMeta(t.pageIndex, t.pageSize, len(t.records))
}
