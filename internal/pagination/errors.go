package pagination

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for table construction and navigation.
// These can be compared with errors.Is().
var (
	// ErrInvalidArgument indicates a malformed input such as a non-positive
	// page size, an empty column list, or a sort on a non-sortable column.
	ErrInvalidArgument = constError("invalid argument")

	// ErrIndexOutOfRange indicates a page index outside [0, pageCount).
	ErrIndexOutOfRange = constError("index out of range")
)
