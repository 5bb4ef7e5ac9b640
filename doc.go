// Package tablemap provides an in-memory sparse columnar table.
//
// A Table stores rows and columns where any cell may be absent, unlike a
// dense matrix or a conventional CSV row where every field is present. It
// supports incremental row construction, column-wise lookup by key, row
// removal and compaction, and table concatenation.
//
// # Quick Start
//
//	t := tablemap.New[string, string]()
//
//	e, _ := t.NewEntry()
//	e.Insert("firstname", "John")
//	e.Insert("lastname", "Snow")
//	e.Close()
//
//	for i, row := range t.Entries() {
//	    if name, ok := row.Get("firstname"); ok {
//	        fmt.Println(i, name)
//	    }
//	}
//
// # Row Views
//
// Rows are accessed through views. Entry is read-only; MutableEntry is
// exclusive: while one is open, every other table operation fails with
// ErrMutableEntryOpen, and it must be closed before the table is usable
// again. Views do not copy; they read and write the column store directly,
// so a view that outlives a structural change is stale and panics when used.
//
// # Sparse Storage
//
// Columns are created on first insert (or explicitly via AddColumn) and keep
// their creation order. Appending a row marks every cell absent until it is
// filled. Cleanup prunes columns whose cells are all absent, then rows with
// no present cell left.
//
// For the semicolon-delimited text serialization of string tables, see the
// ssv subpackage.
package tablemap
