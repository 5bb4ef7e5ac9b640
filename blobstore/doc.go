// Package blobstore provides storage abstraction for table documents.
//
// Store is the interface for reading and writing whole documents by name.
// Table files are small text documents, so the interface is deliberately
// whole-document: no ranged reads, no streaming writes.
//
// # Built-in Implementations
//
//   - LocalStore: files under a root directory, atomic writes
//   - MemoryStore: map-backed, for tests
//   - ThrottledStore: wraps any Store with a byte-rate limit
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
// Implement the Store interface to support custom backends:
//
//	type Store interface {
//	    Get(ctx, name) (io.ReadCloser, error)  // whole document
//	    Put(ctx, name, data) error             // atomic replace
//	    Delete(ctx, name) error                // idempotent
//	    List(ctx, prefix) ([]string, error)    // sorted names
//	}
//
// A Get for a missing document must return an error satisfying
// errors.Is(err, ErrNotFound).
package blobstore
