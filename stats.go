package tablemap

// Stats is a point-in-time snapshot of table shape and fill.
type Stats struct {
	// Rows is the number of logical rows.
	Rows int
	// Columns is the number of columns.
	Columns int
	// Present is the number of cells holding a value.
	Present int
	// Absent is the number of empty cells (Rows*Columns - Present).
	Absent int
}

// Stats scans the table and returns its current shape and fill.
// Stats panics while a mutable entry is open.
func (t *Table[K, V]) Stats() Stats {
	t.check(t.gen)
	s := Stats{
		Rows:    t.rows,
		Columns: len(t.cols),
	}
	for ci := range t.cols {
		for _, c := range t.cols[ci].cells {
			if c.ok {
				s.Present++
			}
		}
	}
	s.Absent = s.Rows*s.Columns - s.Present
	return s
}
