package ssv

import (
	"errors"
	"fmt"
)

var (
	// ErrDelimiterInKey is returned by the encoder when a column key contains
	// the delimiter or a line break. Such a header could never be read back,
	// so encoding fails before anything is written.
	ErrDelimiterInKey = errors.New("column key contains delimiter or line break")

	// ErrDuplicateColumn is returned by the decoder when the header names the
	// same column twice; positional cells would be ambiguous.
	ErrDuplicateColumn = errors.New("duplicate column in header")

	// ErrEmptyName is returned by the repository when a table name is empty.
	ErrEmptyName = errors.New("table name is empty")
)

// RowWidthError reports a data line whose field count cannot be mapped onto
// the header columns. Lines with more fields than columns always fail; lines
// with fewer fail only under WithStrictRowWidth.
type RowWidthError struct {
	Line    int // 1-based line number in the input, header included
	Fields  int
	Columns int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("line %d: %d fields for %d columns", e.Line, e.Fields, e.Columns)
}

// ExtractError reports the first cell that failed to parse during
// ExtractJSON. Row is the 0-based row index, Key the column key.
type ExtractError struct {
	Row int
	Key string
	Err error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Key, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }
