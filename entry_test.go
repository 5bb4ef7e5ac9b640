package tablemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutableEntryExclusivity(t *testing.T) {
	m := New[string, string]()
	addRow(t, m, "k", "v")

	e, err := m.NewEntry()
	require.NoError(t, err)

	t.Run("BlocksOtherOperations", func(t *testing.T) {
		_, err := m.NewEntry()
		assert.ErrorIs(t, err, ErrMutableEntryOpen)
		_, err = m.Entry(0)
		assert.ErrorIs(t, err, ErrMutableEntryOpen)
		_, err = m.EntryMut(0)
		assert.ErrorIs(t, err, ErrMutableEntryOpen)
		_, err = m.Last()
		assert.ErrorIs(t, err, ErrMutableEntryOpen)
		_, err = m.LastMut()
		assert.ErrorIs(t, err, ErrMutableEntryOpen)
		assert.ErrorIs(t, m.RemoveEntry(0), ErrMutableEntryOpen)
		assert.ErrorIs(t, m.SwapRemoveEntry(0), ErrMutableEntryOpen)
		assert.ErrorIs(t, m.RemoveEntries(0), ErrMutableEntryOpen)
		assert.ErrorIs(t, m.Cleanup(), ErrMutableEntryOpen)
		_, err = m.AddColumn("x")
		assert.ErrorIs(t, err, ErrMutableEntryOpen)

		other := New[string, string]()
		assert.ErrorIs(t, m.Concatenate(other), ErrMutableEntryOpen)
		assert.ErrorIs(t, other.Concatenate(m), ErrMutableEntryOpen)
	})

	t.Run("ScalarReadsStayAvailable", func(t *testing.T) {
		assert.Equal(t, 2, m.Len())
		assert.False(t, m.IsEmpty())
		assert.Equal(t, 1, m.Columns())
	})

	t.Run("WholeTableReadsPanic", func(t *testing.T) {
		assert.Panics(t, func() { m.Stats() })
		assert.Panics(t, func() { m.Clone() })
		assert.Panics(t, func() {
			for range m.Keys() {
			}
		})
	})

	t.Run("CloseReleasesTable", func(t *testing.T) {
		require.NoError(t, e.Close())
		_, err := m.Entry(0)
		assert.NoError(t, err)
		require.NoError(t, m.Cleanup())
	})
}

func TestEntryInvalidation(t *testing.T) {
	t.Run("StaleAfterStructuralChange", func(t *testing.T) {
		m := New[string, string]()
		addRow(t, m, "k", "v")
		addRow(t, m, "k", "w")

		row, err := m.Entry(0)
		require.NoError(t, err)
		require.NoError(t, m.RemoveEntry(1))

		assert.Panics(t, func() { row.Get("k") })
		assert.Panics(t, func() { row.Len() })
		assert.Panics(t, func() { _ = row.String() })
	})

	t.Run("StaleWhileMutableEntryOpen", func(t *testing.T) {
		m := New[string, string]()
		addRow(t, m, "k", "v")

		row, err := m.Entry(0)
		require.NoError(t, err)
		e, err := m.EntryMut(0)
		require.NoError(t, err)

		assert.Panics(t, func() { row.Get("k") })

		// Opening the writer starts a new generation, so the read view stays
		// invalid even after Close.
		require.NoError(t, e.Close())
		assert.Panics(t, func() { row.Get("k") })
	})

	t.Run("StaleAfterConcatenateDrain", func(t *testing.T) {
		a := New[string, string]()
		addRow(t, a, "k", "v")
		b := New[string, string]()
		addRow(t, b, "k", "w")

		row, err := b.Entry(0)
		require.NoError(t, err)
		require.NoError(t, a.Concatenate(b))

		assert.Panics(t, func() { row.Get("k") })
	})

	t.Run("ZeroValue", func(t *testing.T) {
		var row Entry[string, string]
		assert.Panics(t, func() { row.Get("k") })

		var e *MutableEntry[string, string]
		assert.Panics(t, func() { e.Get("k") })
	})
}

func TestMutableEntryClose(t *testing.T) {
	m := New[string, string]()
	e, err := m.NewEntry()
	require.NoError(t, err)
	e.Insert("k", "v")

	require.NoError(t, e.Close())
	require.NoError(t, e.Close()) // idempotent

	assert.Panics(t, func() { e.Insert("k", "w") })
	assert.Panics(t, func() { e.Get("k") })
	assert.Panics(t, func() { e.Delete("k") })
	assert.Panics(t, func() { e.Len() })
}

func TestIterationFailsFastOnMutation(t *testing.T) {
	t.Run("EntriesAfterRemoval", func(t *testing.T) {
		m := New[string, string]()
		addRow(t, m, "k", "a")
		addRow(t, m, "k", "b")

		seq := m.Entries()
		require.NoError(t, m.RemoveEntry(0))

		assert.Panics(t, func() {
			for range seq {
			}
		})
	})

	t.Run("KeysAfterAddColumn", func(t *testing.T) {
		m := New[string, string]()
		addRow(t, m, "k", "a")

		seq := m.Keys()
		_, err := m.AddColumn("extra")
		require.NoError(t, err)

		assert.Panics(t, func() {
			for range seq {
			}
		})
	})

	t.Run("EarlyStopIsClean", func(t *testing.T) {
		m := New[string, string]()
		addRow(t, m, "k", "a")
		addRow(t, m, "k", "b")
		addRow(t, m, "k", "c")

		var seen int
		for i, row := range m.Entries() {
			seen++
			if i == 1 {
				break
			}
			_ = row
		}
		assert.Equal(t, 2, seen)
	})
}

func TestEntryIteration(t *testing.T) {
	m := New[string, string]()
	e, err := m.NewEntry()
	require.NoError(t, err)
	e.Insert("a", "1")
	e.Insert("b", "2")
	require.NoError(t, e.Close())

	_, err = m.AddColumn("c") // no cell in row 0
	require.NoError(t, err)

	row, err := m.Entry(0)
	require.NoError(t, err)

	t.Run("KeysIncludeAbsentColumns", func(t *testing.T) {
		var keys []string
		for k := range row.Keys() {
			keys = append(keys, k)
		}
		assert.Equal(t, []string{"a", "b", "c"}, keys)
	})

	t.Run("AllYieldsOnlyPresentCells", func(t *testing.T) {
		got := map[string]string{}
		for k, v := range row.All() {
			got[k] = v
		}
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)
		assert.Equal(t, 2, row.Len())
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "{a: 1, b: 2}", row.String())
	})
}
