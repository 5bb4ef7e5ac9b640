// Package rowset implements a set of row indices backed by a Roaring Bitmap.
//
// It is used by the table's bulk-removal paths (compaction, multi-row
// removal) to mark condemned rows before a single compacting sweep.
package rowset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of non-negative row indices.
// It wraps the official roaring implementation.
type Set struct {
	rb *roaring.Bitmap
}

// New creates a new empty row set.
func New() *Set {
	return &Set{
		rb: roaring.New(),
	}
}

// Add adds a row index to the set.
func (s *Set) Add(row int) {
	s.rb.Add(uint32(row))
}

// Remove removes a row index from the set.
func (s *Set) Remove(row int) {
	s.rb.Remove(uint32(row))
}

// Contains checks if a row index is in the set.
func (s *Set) Contains(row int) bool {
	return s.rb.Contains(uint32(row))
}

// IsEmpty returns true if the set is empty.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of row indices in the set.
func (s *Set) Cardinality() int {
	return int(s.rb.GetCardinality())
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{
		rb: s.rb.Clone(),
	}
}

// Iterator returns an iterator over the set in ascending order.
func (s *Set) Iterator() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Clear removes all row indices from the set.
func (s *Set) Clear() {
	s.rb.Clear()
}
