package ssv

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a table from the file at path. Decoder options apply as in
// Decode.
func Load(path string, opts ...DecoderOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ssv: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f, opts...)
}

// Save writes the table to the file at path, replacing whatever was there.
// The table is written to a temporary file in the same directory and renamed
// into place, so a crash mid-write never leaves a truncated file behind.
func Save(path string, t *Table) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("ssv: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	// CreateTemp defaults to 0600; match typical file permissions.
	_ = tmp.Chmod(0o644)

	if err := Encode(tmp, t); err != nil {
		return fmt.Errorf("ssv: encode %q: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("ssv: sync %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ssv: close %q: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("ssv: rename into place: %w", err)
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}
