package tablemap

import (
	"github.com/p-avital/tablemap/internal/rowset"
)

// cell is one slot of a column: a value, or nothing.
// Absence is tracked by the flag rather than pointers so that value types
// round-trip without nil confusion.
type cell[V any] struct {
	val V
	ok  bool
}

// column is a named sequence of cells. Every column holds exactly one cell
// per table row at the boundaries of every exported operation.
type column[K comparable, V any] struct {
	key   K
	cells []cell[V]
}

// columnFor returns the position of the column for key, creating it if
// needed. New columns are back-filled with one absent cell per existing row
// and appended after all existing columns, so store order is first-creation
// order.
func (t *Table[K, V]) columnFor(key K) int {
	if i, ok := t.index[key]; ok {
		return i
	}
	t.cols = append(t.cols, column[K, V]{
		key:   key,
		cells: make([]cell[V], t.rows, max(t.rows, t.capacity)),
	})
	i := len(t.cols) - 1
	t.index[key] = i
	return i
}

// appendRow grows every column by one absent cell.
func (t *Table[K, V]) appendRow() {
	for i := range t.cols {
		t.cols[i].cells = append(t.cols[i].cells, cell[V]{})
	}
	t.rows++
}

// removeRow removes row i from every column, shifting later rows down.
func (t *Table[K, V]) removeRow(i int) {
	for ci := range t.cols {
		cells := t.cols[ci].cells
		copy(cells[i:], cells[i+1:])
		last := len(cells) - 1
		cells[last] = cell[V]{}
		t.cols[ci].cells = cells[:last]
	}
	t.rows--
}

// swapRemoveRow replaces row i with the last row and shrinks by one.
// Row order is not preserved.
func (t *Table[K, V]) swapRemoveRow(i int) {
	for ci := range t.cols {
		cells := t.cols[ci].cells
		last := len(cells) - 1
		cells[i] = cells[last]
		cells[last] = cell[V]{}
		t.cols[ci].cells = cells[:last]
	}
	t.rows--
}

// compact drops all-absent columns, then all-absent rows.
// The column pass runs first so that a row kept alive only by a dead column
// is condemned as well.
func (t *Table[K, V]) compact() {
	kept := t.cols[:0]
	for _, col := range t.cols {
		if !allAbsent(col.cells) {
			kept = append(kept, col)
		}
	}
	for i := len(kept); i < len(t.cols); i++ {
		t.cols[i] = column[K, V]{}
	}
	t.cols = kept

	clear(t.index)
	for i := range t.cols {
		t.index[t.cols[i].key] = i
	}

	condemned := rowset.New()
	for row := 0; row < t.rows; row++ {
		if t.rowLen(row) == 0 {
			condemned.Add(row)
		}
	}
	t.deleteRows(condemned)
}

// deleteRows removes every row in condemned from all columns in one
// order-preserving sweep.
func (t *Table[K, V]) deleteRows(condemned *rowset.Set) {
	removed := condemned.Cardinality()
	if removed == 0 {
		return
	}
	for ci := range t.cols {
		cells := t.cols[ci].cells
		w := 0
		for r := range cells {
			if condemned.Contains(r) {
				continue
			}
			cells[w] = cells[r]
			w++
		}
		for z := w; z < len(cells); z++ {
			cells[z] = cell[V]{}
		}
		t.cols[ci].cells = cells[:w]
	}
	t.rows -= removed
}

// concat merges other's columns into t. Shared columns get other's cells
// appended; other-only columns are created back-filled absent for t's rows;
// t-only columns are padded absent for other's rows. Every column ends up
// exactly rows(t)+rows(other) long.
func (t *Table[K, V]) concat(other *Table[K, V]) {
	sl, ol := t.rows, other.rows
	for _, oc := range other.cols {
		if i, ok := t.index[oc.key]; ok {
			t.cols[i].cells = append(t.cols[i].cells, oc.cells...)
			continue
		}
		cells := make([]cell[V], sl, sl+ol)
		cells = append(cells, oc.cells...)
		t.cols = append(t.cols, column[K, V]{key: oc.key, cells: cells})
		t.index[oc.key] = len(t.cols) - 1
	}
	for i := range t.cols {
		if short := sl + ol - len(t.cols[i].cells); short > 0 {
			t.cols[i].cells = append(t.cols[i].cells, make([]cell[V], short)...)
		}
	}
	t.rows = sl + ol
}

// drain resets the table to empty and invalidates outstanding views.
func (t *Table[K, V]) drain() {
	t.cols = nil
	clear(t.index)
	t.rows = 0
	t.gen++
}

// rowLen counts the present cells of one row.
func (t *Table[K, V]) rowLen(row int) int {
	n := 0
	for ci := range t.cols {
		if t.cols[ci].cells[row].ok {
			n++
		}
	}
	return n
}

func allAbsent[V any](cells []cell[V]) bool {
	for i := range cells {
		if cells[i].ok {
			return false
		}
	}
	return true
}
