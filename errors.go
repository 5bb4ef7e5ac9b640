package tablemap

import (
	"errors"
	"fmt"
)

var (
	// ErrMutableEntryOpen is returned when an operation requires exclusive
	// access to the table while a mutable entry is still open.
	ErrMutableEntryOpen = errors.New("a mutable entry is already open")

	// ErrEmptyTable is returned by Last/LastMut on a table with no rows.
	ErrEmptyTable = errors.New("table is empty")

	// ErrSelfConcatenate is returned when a table is concatenated with itself.
	ErrSelfConcatenate = errors.New("cannot concatenate a table with itself")

	// ErrDuplicateIndex is returned by RemoveEntries when the same row index
	// is given more than once.
	ErrDuplicateIndex = errors.New("duplicate row index")
)

// IndexOutOfRangeError indicates a row index outside [0, Len).
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("row index %d out of range [0, %d)", e.Index, e.Len)
}
