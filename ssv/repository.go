package ssv

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/p-avital/tablemap/blobstore"
)

const defaultExtension = ".ssv"

// loadAllConcurrency bounds the parallel fetches of LoadAll. Remote stores
// tolerate a few concurrent reads well; more mostly risks rate limits.
const loadAllConcurrency = 16

// Repository persists named tables as delimited-text documents in a
// blobstore.Store. Names map to objects by appending the configured
// extension; objects without the extension are ignored.
//
// A Repository is safe for concurrent use as long as the underlying store
// is; the tables it returns are not.
type Repository struct {
	store  blobstore.Store
	logger *slog.Logger
	ext    string
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithLogger sets the logger for save/load/delete operations. Defaults to a
// logger that discards everything.
func WithLogger(l *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithExtension sets the object-name extension, default ".ssv". A missing
// leading dot is added.
func WithExtension(ext string) RepositoryOption {
	return func(r *Repository) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.ext = ext
	}
}

// NewRepository creates a Repository on top of store.
func NewRepository(store blobstore.Store, opts ...RepositoryOption) *Repository {
	r := &Repository{
		store:  store,
		logger: noopLogger(),
		ext:    defaultExtension,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(r)
		}
	}
	return r
}

func (r *Repository) object(name string) string {
	return name + r.ext
}

// Save encodes the table and writes it to the store under name.
func (r *Repository) Save(ctx context.Context, name string, t *Table) error {
	if name == "" {
		return ErrEmptyName
	}

	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		r.logger.ErrorContext(ctx, "table save failed", "table", name, "error", err)
		return fmt.Errorf("ssv: encode table %q: %w", name, err)
	}
	if err := r.store.Put(ctx, r.object(name), buf.Bytes()); err != nil {
		r.logger.ErrorContext(ctx, "table save failed", "table", name, "error", err)
		return fmt.Errorf("ssv: store table %q: %w", name, err)
	}

	r.logger.DebugContext(ctx, "table saved", "table", name, "rows", t.Len(), "bytes", buf.Len())
	return nil
}

// Load fetches and decodes the table stored under name. A missing table
// reports blobstore.ErrNotFound through errors.Is.
func (r *Repository) Load(ctx context.Context, name string) (*Table, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	rc, err := r.store.Get(ctx, r.object(name))
	if err != nil {
		r.logger.ErrorContext(ctx, "table load failed", "table", name, "error", err)
		return nil, fmt.Errorf("ssv: fetch table %q: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	t, err := Decode(rc)
	if err != nil {
		r.logger.ErrorContext(ctx, "table load failed", "table", name, "error", err)
		return nil, fmt.Errorf("ssv: decode table %q: %w", name, err)
	}

	r.logger.DebugContext(ctx, "table loaded", "table", name, "rows", t.Len())
	return t, nil
}

// Delete removes the table stored under name. Deleting a missing table is
// not an error.
func (r *Repository) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	if err := r.store.Delete(ctx, r.object(name)); err != nil {
		r.logger.ErrorContext(ctx, "table delete failed", "table", name, "error", err)
		return fmt.Errorf("ssv: delete table %q: %w", name, err)
	}

	r.logger.DebugContext(ctx, "table deleted", "table", name)
	return nil
}

// List returns the names of all stored tables, sorted.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	objects, err := r.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("ssv: list tables: %w", err)
	}

	var names []string
	for _, obj := range objects {
		if !strings.HasSuffix(obj, r.ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(obj, r.ext))
	}
	sort.Strings(names)
	return names, nil
}

// LoadAll fetches every stored table, a bounded number of them in parallel,
// and returns them by name. The first failure aborts the remaining loads.
func (r *Repository) LoadAll(ctx context.Context) (map[string]*Table, error) {
	names, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	tables := make(map[string]*Table, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadAllConcurrency)
	for _, name := range names {
		g.Go(func() error {
			t, err := r.Load(ctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			tables[name] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
