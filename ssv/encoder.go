package ssv

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Delimiter separates fields within a line.
const Delimiter = ";"

const (
	readBufferSize  = 256 * 1024
	writeBufferSize = 256 * 1024
)

// Encoder writes tables as delimited text.
type Encoder struct {
	w io.Writer
}

// NewEncoder creates an Encoder writing to w. Output is buffered internally
// and flushed at the end of each Encode call.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the table: a header line of column keys in store order, then
// one line per row with cells in the same order and absent cells as empty
// fields. A table with no columns encodes to nothing at all.
//
// Every column key is validated up front; a key containing the delimiter or
// a line break fails with ErrDelimiterInKey before any output is written.
func (enc *Encoder) Encode(t *Table) error {
	keys := slices.Collect(t.Keys())
	if len(keys) == 0 {
		return nil
	}
	for _, key := range keys {
		if strings.ContainsAny(key, Delimiter+"\n\r") {
			return fmt.Errorf("%w: %q", ErrDelimiterInKey, key)
		}
	}

	// bufio keeps the first write error and reports it again on Flush, so
	// the row loop stays free of error plumbing.
	bw := bufio.NewWriterSize(enc.w, writeBufferSize)
	bw.WriteString(strings.Join(keys, Delimiter))
	bw.WriteByte('\n')
	for _, row := range t.Entries() {
		for i, key := range keys {
			if i > 0 {
				bw.WriteByte(';')
			}
			if v, ok := row.Get(key); ok {
				bw.WriteString(v)
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ssv: write: %w", err)
	}
	return nil
}

// Encode writes t to w in delimited text form.
func Encode(w io.Writer, t *Table) error {
	return NewEncoder(w).Encode(t)
}
