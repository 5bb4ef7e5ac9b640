package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound is returned when a document does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidName is returned when a document name is empty or would escape
// the store's namespace.
var ErrInvalidName = errors.New("blobstore: invalid document name")

// Store is an abstraction for accessing named documents.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Get opens a document for reading. The caller must close the reader.
	// Returns an error satisfying errors.Is(err, ErrNotFound) if the
	// document does not exist.
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// Put atomically replaces the document with the given content.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of documents with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
