package tablemap

import (
	"fmt"
	"iter"
	"strings"
)

// Entry is a read-only view of one row: a key→value mapping backed by the
// table's column store, without copying.
//
// An Entry is pinned to the table state it was created from. Using it after
// any structural change (row or column addition/removal, compaction,
// concatenation, or a mutable entry being opened) panics.
type Entry[K comparable, V any] struct {
	table *Table[K, V]
	row   int
	gen   uint64
}

func (e Entry[K, V]) valid() {
	if e.table == nil {
		panic("tablemap: use of zero Entry")
	}
	e.table.check(e.gen)
}

// Keys returns a lazy sequence of all column keys in store order, whether or
// not this row's cell is present.
func (e Entry[K, V]) Keys() iter.Seq[K] {
	return e.table.rowKeys(e.valid)
}

// All returns a lazy sequence of (key, value) for the present cells of this
// row, in column store order.
func (e Entry[K, V]) All() iter.Seq2[K, V] {
	return e.table.rowAll(e.row, e.valid)
}

// Get returns the value at the given column, if the column exists and this
// row's cell is present.
func (e Entry[K, V]) Get(key K) (V, bool) {
	e.valid()
	return e.table.rowGet(e.row, key)
}

// Len returns the number of present cells in this row.
func (e Entry[K, V]) Len() int {
	e.valid()
	return e.table.rowLen(e.row)
}

// String renders the present cells as {key: value, ...} for debugging.
func (e Entry[K, V]) String() string {
	e.valid()
	return e.table.rowString(e.row)
}

// MutableEntry is an exclusive view of one row. At most one may be open per
// table; while it is open, every other table operation fails with
// ErrMutableEntryOpen. Close releases the table again.
//
// Using a MutableEntry after Close panics.
type MutableEntry[K comparable, V any] struct {
	table  *Table[K, V]
	row    int
	gen    uint64
	closed bool
}

func (e *MutableEntry[K, V]) valid() {
	if e == nil || e.table == nil {
		panic("tablemap: use of zero MutableEntry")
	}
	if e.closed {
		panic("tablemap: use of closed MutableEntry")
	}
	if e.gen != e.table.gen {
		panic("tablemap: stale view: table was structurally modified")
	}
}

// Keys returns a lazy sequence of all column keys in store order.
func (e *MutableEntry[K, V]) Keys() iter.Seq[K] {
	return e.table.rowKeys(e.valid)
}

// All returns a lazy sequence of (key, value) for the present cells of this
// row, in column store order.
func (e *MutableEntry[K, V]) All() iter.Seq2[K, V] {
	return e.table.rowAll(e.row, e.valid)
}

// Get returns the value at the given column, if the column exists and this
// row's cell is present.
func (e *MutableEntry[K, V]) Get(key K) (V, bool) {
	e.valid()
	return e.table.rowGet(e.row, key)
}

// GetMut returns a pointer to the live cell value for in-place modification,
// if the column exists and this row's cell is present. The pointer is valid
// only while this entry remains open.
func (e *MutableEntry[K, V]) GetMut(key K) (*V, bool) {
	e.valid()
	ci, ok := e.table.index[key]
	if !ok {
		return nil, false
	}
	c := &e.table.cols[ci].cells[e.row]
	if !c.ok {
		return nil, false
	}
	return &c.val, true
}

// Insert sets this row's cell for key, creating the column (back-filled with
// absent cells) if it does not exist. It returns the previous value and
// whether one was present.
func (e *MutableEntry[K, V]) Insert(key K, v V) (V, bool) {
	e.valid()
	ci := e.table.columnFor(key)
	c := &e.table.cols[ci].cells[e.row]
	prev, had := c.val, c.ok
	c.val, c.ok = v, true
	return prev, had
}

// Delete clears this row's cell for key back to absent. It returns the
// previous value and whether one was present. The column itself is kept;
// Cleanup prunes it once all its cells are absent.
func (e *MutableEntry[K, V]) Delete(key K) (V, bool) {
	e.valid()
	var zero V
	ci, ok := e.table.index[key]
	if !ok {
		return zero, false
	}
	c := &e.table.cols[ci].cells[e.row]
	if !c.ok {
		return zero, false
	}
	prev := c.val
	*c = cell[V]{}
	return prev, true
}

// Len returns the number of present cells in this row.
func (e *MutableEntry[K, V]) Len() int {
	e.valid()
	return e.table.rowLen(e.row)
}

// String renders the present cells as {key: value, ...} for debugging.
func (e *MutableEntry[K, V]) String() string {
	e.valid()
	return e.table.rowString(e.row)
}

// Close releases the table for other operations. Close is idempotent; every
// other use of a closed entry panics.
func (e *MutableEntry[K, V]) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.table.writer = false
	e.table.gen++
	return nil
}

// rowKeys yields all column keys, revalidating the view before each step so
// mutation mid-iteration fails fast.
func (t *Table[K, V]) rowKeys(valid func()) iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := 0; i < len(t.cols); i++ {
			valid()
			if !yield(t.cols[i].key) {
				return
			}
		}
	}
}

// rowAll yields (key, value) for the present cells of one row.
func (t *Table[K, V]) rowAll(row int, valid func()) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; i < len(t.cols); i++ {
			valid()
			c := t.cols[i].cells[row]
			if !c.ok {
				continue
			}
			if !yield(t.cols[i].key, c.val) {
				return
			}
		}
	}
}

func (t *Table[K, V]) rowGet(row int, key K) (V, bool) {
	ci, ok := t.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c := t.cols[ci].cells[row]
	return c.val, c.ok
}

func (t *Table[K, V]) rowString(row int) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for ci := range t.cols {
		c := t.cols[ci].cells[row]
		if !c.ok {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", t.cols[ci].key, c.val)
	}
	b.WriteByte('}')
	return b.String()
}
