package ssv

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-avital/tablemap/blobstore"
)

func TestRepository_SaveLoad(t *testing.T) {
	stores := map[string]func(t *testing.T) blobstore.Store{
		"memory": func(t *testing.T) blobstore.Store { return blobstore.NewMemoryStore() },
		"local":  func(t *testing.T) blobstore.Store { return blobstore.NewLocalStore(t.TempDir()) },
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository(newStore(t))
			ctx := context.Background()

			require.NoError(t, repo.Save(ctx, "people", johnSnow(t)))

			loaded, err := repo.Load(ctx, "people")
			require.NoError(t, err)
			assert.Equal(t, johnSnowText, loaded.String())

			names, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"people"}, names)

			require.NoError(t, repo.Delete(ctx, "people"))
			require.NoError(t, repo.Delete(ctx, "people"), "delete is idempotent")

			_, err = repo.Load(ctx, "people")
			require.ErrorIs(t, err, blobstore.ErrNotFound)
		})
	}
}

func TestRepository_ObjectNames(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo := NewRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "people", johnSnow(t)))

	// The stored object carries the extension; the repository name does not.
	objects, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"people.ssv"}, objects)

	// Objects without the extension are not tables.
	require.NoError(t, store.Put(ctx, "README.md", []byte("# hi\n")))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"people"}, names)
}

func TestRepository_WithExtension(t *testing.T) {
	store := blobstore.NewMemoryStore()
	ctx := context.Background()

	// The leading dot is added when missing.
	repo := NewRepository(store, WithExtension("table"))
	require.NoError(t, repo.Save(ctx, "people", johnSnow(t)))

	objects, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"people.table"}, objects)

	loaded, err := repo.Load(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
}

func TestRepository_EmptyName(t *testing.T) {
	repo := NewRepository(blobstore.NewMemoryStore())
	ctx := context.Background()

	require.ErrorIs(t, repo.Save(ctx, "", New()), ErrEmptyName)
	_, err := repo.Load(ctx, "")
	require.ErrorIs(t, err, ErrEmptyName)
	require.ErrorIs(t, repo.Delete(ctx, ""), ErrEmptyName)
}

func TestRepository_LoadAll(t *testing.T) {
	repo := NewRepository(blobstore.NewMemoryStore(), WithLogger(slog.New(slog.DiscardHandler)))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "people", johnSnow(t)))

	cities := New()
	e, err := cities.NewEntry()
	require.NoError(t, err)
	e.Insert("name", "Winterfell")
	require.NoError(t, e.Close())
	require.NoError(t, repo.Save(ctx, "cities", cities))

	require.NoError(t, repo.Save(ctx, "empty", New()))

	tables, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 3)

	assert.Equal(t, 2, tables["people"].Len())
	assert.Equal(t, 1, tables["cities"].Len())
	assert.True(t, tables["empty"].IsEmpty())
}

func TestRepository_LoadCorrupt(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo := NewRepository(store)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "bad.ssv", []byte("a;b\n1;2;3\n")))

	_, err := repo.Load(ctx, "bad")
	var rwe *RowWidthError
	require.ErrorAs(t, err, &rwe)

	// LoadAll surfaces the same failure.
	_, err = repo.LoadAll(ctx)
	require.ErrorAs(t, err, &rwe)
}
