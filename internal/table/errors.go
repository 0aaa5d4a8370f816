package table

import "github.com/rshade/pagedtable/internal/pagination"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by tables and widgets.
var (
	// ErrInvalidArgument indicates malformed construction input or an event
	// naming an unknown or non-sortable column.
	ErrInvalidArgument = pagination.ErrInvalidArgument

	// ErrIndexOutOfRange indicates a page jump outside [0, pageCount).
	ErrIndexOutOfRange = pagination.ErrIndexOutOfRange

	// ErrAlreadyRendered is returned when Render is called more than once.
	ErrAlreadyRendered = constError("widget already rendered")
)
