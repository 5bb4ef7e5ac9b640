package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// ThrottledStore wraps a Store and limits document IO throughput.
//
// Reads and writes count against a shared byte budget. Delete and List are
// metadata operations and pass through unthrottled.
type ThrottledStore struct {
	inner   Store
	limiter *rate.Limiter
}

// NewThrottledStore creates a Store that limits reads and writes to
// bytesPerSec. If bytesPerSec is 0 or negative, no limit is enforced.
func NewThrottledStore(inner Store, bytesPerSec int64) *ThrottledStore {
	s := &ThrottledStore{inner: inner}
	if bytesPerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), int(bytesPerSec))
	}
	return s
}

// wait blocks until the limiter admits n bytes.
func (s *ThrottledStore) wait(ctx context.Context, n int) error {
	if s.limiter == nil || n <= 0 {
		return nil
	}
	// WaitN rejects requests larger than the burst, so large documents
	// are admitted in burst-sized chunks.
	burst := s.limiter.Burst()
	if s.limiter.Limit() == rate.Inf || burst <= 0 {
		return s.limiter.WaitN(ctx, n)
	}
	for n > 0 {
		chunk := min(n, burst)
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Get opens a document for reading. Bytes are throttled as they are read.
func (s *ThrottledStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if s.limiter == nil {
		return rc, nil
	}
	return &throttledReader{inner: rc, limiter: s.limiter, ctx: ctx}, nil
}

// Put writes a document, blocking until the limiter admits its size.
func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.wait(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Delete removes a document.
func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List returns the names of documents with the given prefix, sorted.
func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// throttledReader charges each read against the limiter.
type throttledReader struct {
	inner   io.ReadCloser
	limiter *rate.Limiter
	ctx     context.Context
}

func (r *throttledReader) Read(p []byte) (int, error) {
	// Cap the read at the burst so WaitN never sees an oversized request.
	if b := r.limiter.Burst(); b > 0 && len(p) > b && r.limiter.Limit() != rate.Inf {
		p = p[:b]
	}
	n, err := r.inner.Read(p)
	if n > 0 {
		if werr := r.limiter.WaitN(r.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

func (r *throttledReader) Close() error {
	return r.inner.Close()
}
