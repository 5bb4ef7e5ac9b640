package ssv

import (
	"fmt"
	"iter"

	"github.com/p-avital/tablemap"
	"github.com/p-avital/tablemap/codec"
)

// Entry is a read-only view of one row. It carries the validity rules of
// tablemap.Entry: using it after a structural change to the table panics.
type Entry struct {
	inner tablemap.Entry[string, string]
}

// Keys returns all column keys in store order, present or not.
func (e Entry) Keys() iter.Seq[string] { return e.inner.Keys() }

// All returns (key, cell) for the present cells of this row in store order.
func (e Entry) All() iter.Seq2[string, string] { return e.inner.All() }

// Get returns the cell at the given column, if present.
func (e Entry) Get(key string) (string, bool) { return e.inner.Get(key) }

// Len returns the number of present cells in this row.
func (e Entry) Len() int { return e.inner.Len() }

// String renders the present cells as {key: value, ...} for debugging.
func (e Entry) String() string { return e.inner.String() }

// EntryMut is an exclusive view of one row. At most one may be open per
// table; it must be closed before any other table operation.
type EntryMut struct {
	inner *tablemap.MutableEntry[string, string]
	codec codec.Codec
}

// Keys returns all column keys in store order, present or not.
func (e *EntryMut) Keys() iter.Seq[string] { return e.inner.Keys() }

// All returns (key, cell) for the present cells of this row in store order.
func (e *EntryMut) All() iter.Seq2[string, string] { return e.inner.All() }

// Get returns the cell at the given column, if present.
func (e *EntryMut) Get(key string) (string, bool) { return e.inner.Get(key) }

// GetMut returns a pointer to the live cell for in-place modification, if
// present. The pointer is valid only while this entry remains open.
func (e *EntryMut) GetMut(key string) (*string, bool) { return e.inner.GetMut(key) }

// Insert stores a raw string cell, creating the column if needed. It returns
// the previous cell and whether one was present.
func (e *EntryMut) Insert(key, value string) (string, bool) {
	return e.inner.Insert(key, value)
}

// InsertValue encodes v to its canonical text with the table's codec and
// stores that as the cell, so ExtractJSON can parse it back. Strings are
// stored quoted: InsertValue(k, "John") stores `"John"`, not `John`.
func (e *EntryMut) InsertValue(key string, v any) error {
	b, err := e.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("ssv: format value for column %q: %w", key, err)
	}
	e.inner.Insert(key, string(b))
	return nil
}

// Delete clears the cell back to absent. It returns the previous cell and
// whether one was present.
func (e *EntryMut) Delete(key string) (string, bool) { return e.inner.Delete(key) }

// Len returns the number of present cells in this row.
func (e *EntryMut) Len() int { return e.inner.Len() }

// String renders the present cells as {key: value, ...} for debugging.
func (e *EntryMut) String() string { return e.inner.String() }

// Close releases the table for other operations. Idempotent.
func (e *EntryMut) Close() error { return e.inner.Close() }
