// Package ssv serializes string tables to and from semicolon-delimited text.
//
// The format is a header line of column keys joined by ";", followed by one
// line per row with cells in header order. An absent cell is an empty field
// between delimiters; a present-but-empty string renders the same way, so it
// flattens to absent across a round trip. There is no quoting or escaping:
// values containing the delimiter or a line break corrupt the format, by
// accepted design. Column keys are validated on encode so a written file can
// always be read back.
//
//	firstname;lastname;profession;alive
//	"John";"Snow";"Knower of Nothing";
//	;;"Night King";false
//
// # Tables
//
// Table wraps a string-keyed, string-valued tablemap.Table and adds
// formatted insertion: InsertValue and SetRow encode any Go value to its
// canonical JSON text before storing it, and ExtractJSON parses every
// present cell back into a typed value. Plain Insert stores raw strings.
//
//	t := ssv.New()
//	e, _ := t.NewEntry()
//	e.InsertValue("firstname", "John") // cell holds `"John"`
//	e.InsertValue("cats", 1)           // cell holds `1`
//	e.Close()
//
// # Files and repositories
//
// Load and Save move tables to and from .ssv files; Save writes through a
// temporary file and renames it into place. Repository persists named
// tables in a blobstore.Store (local directory, memory, S3, MinIO) for
// production use.
package ssv
