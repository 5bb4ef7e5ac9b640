package tablemap

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/p-avital/tablemap/internal/rowset"
)

// Table is an in-memory sparse columnar table. Rows are addressed by a
// 0-based index, columns by a key of type K, and any cell may be absent.
//
// Columns keep their first-creation order, and every column always holds
// exactly one cell per row. Rows are appended through NewEntry and filled
// through the returned MutableEntry.
//
// A Table is not safe for concurrent use. Within a single goroutine it
// enforces view exclusivity at runtime: while a MutableEntry is open, every
// other table operation fails with ErrMutableEntryOpen, and views that
// survive a structural change panic when used (see Entry and MutableEntry).
//
// The zero value is not usable; use New.
type Table[K comparable, V any] struct {
	cols  []column[K, V]
	index map[K]int
	rows  int

	// gen counts structural changes; open views are pinned to a generation
	// and panic when it moves. writer marks an open MutableEntry.
	gen      uint64
	writer   bool
	capacity int
}

// New creates an empty table.
func New[K comparable, V any](optFns ...Option) *Table[K, V] {
	o := applyOptions(optFns)
	return &Table[K, V]{
		index:    make(map[K]int),
		capacity: o.capacity,
	}
}

// check panics when the table is not readable for a view pinned to gen.
// Misusing a view is a programming error, kept loud like the runtime's
// map-iteration check rather than surfaced as an error value.
func (t *Table[K, V]) check(gen uint64) {
	if t.writer {
		panic("tablemap: table read while a mutable entry is open")
	}
	if gen != t.gen {
		panic("tablemap: stale view: table was structurally modified")
	}
}

func (t *Table[K, V]) acquireWriter(row int) *MutableEntry[K, V] {
	t.gen++
	t.writer = true
	return &MutableEntry[K, V]{table: t, row: row, gen: t.gen}
}

// NewEntry appends one row, with every cell absent, and returns an exclusive
// mutable view of it. The view must be closed before any other table
// operation.
func (t *Table[K, V]) NewEntry() (*MutableEntry[K, V], error) {
	if t.writer {
		return nil, ErrMutableEntryOpen
	}
	t.appendRow()
	return t.acquireWriter(t.rows - 1), nil
}

// Entry returns a read-only view of row i.
// The view stays valid until the next structural change to the table.
func (t *Table[K, V]) Entry(i int) (Entry[K, V], error) {
	if t.writer {
		return Entry[K, V]{}, ErrMutableEntryOpen
	}
	if i < 0 || i >= t.rows {
		return Entry[K, V]{}, &IndexOutOfRangeError{Index: i, Len: t.rows}
	}
	return Entry[K, V]{table: t, row: i, gen: t.gen}, nil
}

// EntryMut returns an exclusive mutable view of row i, invalidating all
// outstanding read views. The view must be closed before any other table
// operation.
func (t *Table[K, V]) EntryMut(i int) (*MutableEntry[K, V], error) {
	if t.writer {
		return nil, ErrMutableEntryOpen
	}
	if i < 0 || i >= t.rows {
		return nil, &IndexOutOfRangeError{Index: i, Len: t.rows}
	}
	return t.acquireWriter(i), nil
}

// Last returns a read-only view of the last row.
func (t *Table[K, V]) Last() (Entry[K, V], error) {
	if t.writer {
		return Entry[K, V]{}, ErrMutableEntryOpen
	}
	if t.rows == 0 {
		return Entry[K, V]{}, ErrEmptyTable
	}
	return t.Entry(t.rows - 1)
}

// LastMut returns an exclusive mutable view of the last row.
func (t *Table[K, V]) LastMut() (*MutableEntry[K, V], error) {
	if t.writer {
		return nil, ErrMutableEntryOpen
	}
	if t.rows == 0 {
		return nil, ErrEmptyTable
	}
	return t.EntryMut(t.rows - 1)
}

// Entries returns a lazy sequence of (index, read-only view) over all rows
// in order. The sequence is bound to the table state at the time of the
// call: consuming it after a structural change, or while a mutable entry is
// open, panics.
func (t *Table[K, V]) Entries() iter.Seq2[int, Entry[K, V]] {
	gen := t.gen
	return func(yield func(int, Entry[K, V]) bool) {
		for i := 0; i < t.rows; i++ {
			t.check(gen)
			if !yield(i, Entry[K, V]{table: t, row: i, gen: gen}) {
				return
			}
		}
	}
}

// Keys returns a lazy sequence of all column keys in store order.
// Like Entries, the sequence panics if consumed after a structural change.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	gen := t.gen
	return func(yield func(K) bool) {
		for i := 0; i < len(t.cols); i++ {
			t.check(gen)
			if !yield(t.cols[i].key) {
				return
			}
		}
	}
}

// RemoveEntry removes row i, shifting all later rows down by one.
// O(rows) per column; use SwapRemoveEntry when order does not matter.
func (t *Table[K, V]) RemoveEntry(i int) error {
	if t.writer {
		return ErrMutableEntryOpen
	}
	if i < 0 || i >= t.rows {
		return &IndexOutOfRangeError{Index: i, Len: t.rows}
	}
	t.removeRow(i)
	t.gen++
	return nil
}

// SwapRemoveEntry removes row i by moving the last row into its place.
// O(columns). The former last row takes index i; row order is not preserved.
func (t *Table[K, V]) SwapRemoveEntry(i int) error {
	if t.writer {
		return ErrMutableEntryOpen
	}
	if i < 0 || i >= t.rows {
		return &IndexOutOfRangeError{Index: i, Len: t.rows}
	}
	t.swapRemoveRow(i)
	t.gen++
	return nil
}

// RemoveEntries removes all the given rows in one order-preserving sweep,
// equivalent to removing them one by one from the lowest index up. Indices
// are validated before anything is removed, so the table is unchanged on
// error.
func (t *Table[K, V]) RemoveEntries(indices ...int) error {
	if t.writer {
		return ErrMutableEntryOpen
	}
	if len(indices) == 0 {
		return nil
	}
	condemned := rowset.New()
	for _, i := range indices {
		if i < 0 || i >= t.rows {
			return &IndexOutOfRangeError{Index: i, Len: t.rows}
		}
		if condemned.Contains(i) {
			return fmt.Errorf("%w: %d", ErrDuplicateIndex, i)
		}
		condemned.Add(i)
	}
	t.deleteRows(condemned)
	t.gen++
	return nil
}

// Cleanup compacts the table: columns whose cells are all absent are
// dropped, then rows left with no present cell are dropped. Idempotent.
func (t *Table[K, V]) Cleanup() error {
	if t.writer {
		return ErrMutableEntryOpen
	}
	t.compact()
	t.gen++
	return nil
}

// Concatenate appends other's rows after t's and unions the column sets:
// shared columns continue with other's cells, columns unique to either side
// are padded with absent cells so every column covers all rows. other is
// consumed: it is reset to an empty table and its views are invalidated.
func (t *Table[K, V]) Concatenate(other *Table[K, V]) error {
	if other == t {
		return ErrSelfConcatenate
	}
	if t.writer || other.writer {
		return ErrMutableEntryOpen
	}
	t.concat(other)
	other.drain()
	t.gen++
	return nil
}

// AddColumn creates an empty, all-absent column for key and reports whether
// it was created. Decoders use this to fix column order from a header before
// any cell arrives; Cleanup will prune the column again if it never receives
// a value.
func (t *Table[K, V]) AddColumn(key K) (bool, error) {
	if t.writer {
		return false, ErrMutableEntryOpen
	}
	if _, ok := t.index[key]; ok {
		return false, nil
	}
	t.columnFor(key)
	t.gen++
	return true, nil
}

// Len returns the number of rows.
func (t *Table[K, V]) Len() int { return t.rows }

// IsEmpty reports whether the table has no rows.
func (t *Table[K, V]) IsEmpty() bool { return t.rows == 0 }

// Columns returns the number of columns.
func (t *Table[K, V]) Columns() int { return len(t.cols) }

// Clone returns a deep copy of the table. Cells are copied by value; a
// reference-typed V shares its backing data between the copies. Clone
// panics while a mutable entry is open.
func (t *Table[K, V]) Clone() *Table[K, V] {
	t.check(t.gen)
	c := &Table[K, V]{
		cols:     make([]column[K, V], len(t.cols)),
		index:    maps.Clone(t.index),
		rows:     t.rows,
		capacity: t.capacity,
	}
	for i := range t.cols {
		c.cols[i] = column[K, V]{
			key:   t.cols[i].key,
			cells: slices.Clone(t.cols[i].cells),
		}
	}
	return c
}
