package ssv

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/p-avital/tablemap"
	"github.com/p-avital/tablemap/codec"
	"github.com/p-avital/tablemap/value"
)

// Table is a sparse table of string cells with a delimited-text form. It
// wraps a tablemap.Table[string, string] and adds codec-backed insertion and
// extraction; the row lifecycle, view exclusivity and error values are those
// of the wrapped table.
type Table struct {
	inner *tablemap.Table[string, string]
	codec codec.Codec
}

// New creates an empty table.
func New(optFns ...Option) *Table {
	o := applyOptions(optFns)
	var tmOpts []tablemap.Option
	if o.capacity > 0 {
		tmOpts = append(tmOpts, tablemap.WithCapacity(o.capacity))
	}
	return &Table{
		inner: tablemap.New[string, string](tmOpts...),
		codec: o.codec,
	}
}

// Map returns the wrapped table for generic operations not mirrored here.
func (t *Table) Map() *tablemap.Table[string, string] { return t.inner }

// NewEntry appends one row, with every cell absent, and returns an exclusive
// mutable view of it. The view must be closed before any other table
// operation.
func (t *Table) NewEntry() (*EntryMut, error) {
	e, err := t.inner.NewEntry()
	if err != nil {
		return nil, err
	}
	return &EntryMut{inner: e, codec: t.codec}, nil
}

// Entry returns a read-only view of row i.
func (t *Table) Entry(i int) (Entry, error) {
	e, err := t.inner.Entry(i)
	if err != nil {
		return Entry{}, err
	}
	return Entry{inner: e}, nil
}

// EntryMut returns an exclusive mutable view of row i.
func (t *Table) EntryMut(i int) (*EntryMut, error) {
	e, err := t.inner.EntryMut(i)
	if err != nil {
		return nil, err
	}
	return &EntryMut{inner: e, codec: t.codec}, nil
}

// Entries returns a lazy sequence of (index, read-only view) over all rows.
func (t *Table) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range t.inner.Entries() {
			if !yield(i, Entry{inner: e}) {
				return
			}
		}
	}
}

// Last returns a read-only view of the last row.
func (t *Table) Last() (Entry, error) {
	e, err := t.inner.Last()
	if err != nil {
		return Entry{}, err
	}
	return Entry{inner: e}, nil
}

// LastMut returns an exclusive mutable view of the last row.
func (t *Table) LastMut() (*EntryMut, error) {
	e, err := t.inner.LastMut()
	if err != nil {
		return nil, err
	}
	return &EntryMut{inner: e, codec: t.codec}, nil
}

// RemoveEntry removes row i, preserving the order of the remaining rows.
func (t *Table) RemoveEntry(i int) error { return t.inner.RemoveEntry(i) }

// SwapRemoveEntry removes row i by moving the last row into its place.
func (t *Table) SwapRemoveEntry(i int) error { return t.inner.SwapRemoveEntry(i) }

// RemoveEntries removes all the given rows in one order-preserving sweep.
func (t *Table) RemoveEntries(indices ...int) error { return t.inner.RemoveEntries(indices...) }

// Cleanup drops all-absent columns, then rows left with no present cell.
func (t *Table) Cleanup() error { return t.inner.Cleanup() }

// Concatenate appends other's rows after t's and unions the column sets.
// other is consumed: it is reset to an empty table.
func (t *Table) Concatenate(other *Table) error {
	if other == t {
		return tablemap.ErrSelfConcatenate
	}
	return t.inner.Concatenate(other.inner)
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.inner.Len() }

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return t.inner.IsEmpty() }

// Keys returns a lazy sequence of all column keys in store order.
func (t *Table) Keys() iter.Seq[string] { return t.inner.Keys() }

// Columns returns the number of columns.
func (t *Table) Columns() int { return t.inner.Columns() }

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return &Table{inner: t.inner.Clone(), codec: t.codec}
}

// SetRow appends a row and stores every cell of cells through InsertValue.
// Keys are inserted in sorted order so that column creation stays
// deterministic. The returned entry is still open for further insertion and
// must be closed; on error the appended row is removed and the table is left
// as it was.
func (t *Table) SetRow(cells map[string]any) (*EntryMut, error) {
	e, err := t.NewEntry()
	if err != nil {
		return nil, err
	}
	for _, key := range slices.Sorted(maps.Keys(cells)) {
		if err := e.InsertValue(key, cells[key]); err != nil {
			_ = e.Close()
			_ = t.RemoveEntry(t.Len() - 1)
			return nil, err
		}
	}
	return e, nil
}

// ExtractJSON parses every present cell as JSON, producing a typed table
// with the same number of rows. The result's columns are the keys that held
// at least one present cell, in first-seen order. Extraction stops at the
// first cell that fails to parse, reporting it as an *ExtractError.
func (t *Table) ExtractJSON() (*tablemap.Table[string, value.Value], error) {
	out := tablemap.New[string, value.Value]()
	for i, row := range t.inner.Entries() {
		dst, err := out.NewEntry()
		if err != nil {
			return nil, err
		}
		for key, raw := range row.All() {
			var v value.Value
			if err := t.codec.Unmarshal([]byte(raw), &v); err != nil {
				_ = dst.Close()
				return nil, &ExtractError{Row: i, Key: key, Err: err}
			}
			dst.Insert(key, v)
		}
		if err := dst.Close(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// String returns the delimited-text form of the table, the same bytes Encode
// writes. If the table cannot be encoded the error text is returned instead.
func (t *Table) String() string {
	var sb strings.Builder
	if err := Encode(&sb, t); err != nil {
		return "ssv: " + err.Error()
	}
	return sb.String()
}
