package tablemap

import (
	"fmt"
	"testing"
)

// benchSink keeps the compiler from eliminating benchmarked reads.
var benchSink int

func buildBenchTable(b *testing.B, rows, cols int) *Table[string, int] {
	b.Helper()
	keys := make([]string, cols)
	for i := range keys {
		keys[i] = fmt.Sprintf("col-%02d", i)
	}
	m := New[string, int](WithCapacity(rows))
	for r := 0; r < rows; r++ {
		e, err := m.NewEntry()
		if err != nil {
			b.Fatal(err)
		}
		for c, k := range keys {
			// Leave roughly a third of the cells absent.
			if (r+c)%3 != 0 {
				e.Insert(k, r*cols+c)
			}
		}
		if err := e.Close(); err != nil {
			b.Fatal(err)
		}
	}
	return m
}

func BenchmarkNewEntryInsert(b *testing.B) {
	for _, cols := range []int{4, 16, 64} {
		b.Run(fmt.Sprintf("cols=%d", cols), func(b *testing.B) {
			keys := make([]string, cols)
			for i := range keys {
				keys[i] = fmt.Sprintf("col-%02d", i)
			}
			m := New[string, int]()
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; b.Loop(); i++ {
				e, err := m.NewEntry()
				if err != nil {
					b.Fatal(err)
				}
				for _, k := range keys {
					e.Insert(k, i)
				}
				if err := e.Close(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEntryGet(b *testing.B) {
	m := buildBenchTable(b, 10_000, 8)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; b.Loop(); i++ {
		row, err := m.Entry(i % m.Len())
		if err != nil {
			b.Fatal(err)
		}
		if v, ok := row.Get("col-03"); ok {
			benchSink += v
		}
	}
}

func BenchmarkEntriesIteration(b *testing.B) {
	m := buildBenchTable(b, 1_000, 16)
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		for _, row := range m.Entries() {
			for _, v := range row.All() {
				benchSink += v
			}
		}
	}
}

func BenchmarkStats(b *testing.B) {
	m := buildBenchTable(b, 10_000, 16)
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		benchSink += m.Stats().Present
	}
}
