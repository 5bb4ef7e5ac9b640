package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThrottledStore_PassThrough(t *testing.T) {
	inner := NewMemoryStore()
	store := NewThrottledStore(inner, 0) // unlimited

	ctx := context.Background()
	data := []byte("firstname;lastname\nJohn;Snow\n")

	require.NoError(t, store.Put(ctx, "people.ssv", data))

	rc, err := store.Get(ctx, "people.ssv")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, data, got)
}

func TestThrottledStore_RoundTrip(t *testing.T) {
	inner := NewMemoryStore()
	// Generous limit so the test never sleeps.
	store := NewThrottledStore(inner, 1<<20)

	ctx := context.Background()
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}

	require.NoError(t, store.Put(ctx, "blob", data))

	rc, err := store.Get(ctx, "blob")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, data, got)
}

func TestThrottledStore_CanceledContext(t *testing.T) {
	inner := NewMemoryStore()
	store := NewThrottledStore(inner, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Put(ctx, "blob", make([]byte, 64))
	require.Error(t, err)

	// Nothing was written.
	_, err = inner.Get(context.Background(), "blob")
	require.ErrorIs(t, err, ErrNotFound)
}
