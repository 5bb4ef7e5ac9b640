package ssv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decoder reads a table from delimited text. A Decoder is single-use: Decode
// consumes the input to EOF.
type Decoder struct {
	r      *bufio.Reader
	strict bool
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithStrictRowWidth makes lines with fewer fields than header columns fail
// with a RowWidthError. The default pads the missing trailing cells with
// absent, matching what a positional reader of the format has always done.
func WithStrictRowWidth() DecoderOption {
	return func(d *Decoder) {
		d.strict = true
	}
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{r: bufio.NewReaderSize(r, readBufferSize)}
	for _, fn := range opts {
		if fn != nil {
			fn(d)
		}
	}
	return d
}

// readLine returns the next line without its terminator ("\n" or "\r\n").
// ok is false once the input is exhausted.
func (d *Decoder) readLine() (line string, ok bool, err error) {
	s, err := d.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if s == "" {
				return "", false, nil
			}
			// Final line without a trailing newline.
			return strings.TrimSuffix(s, "\r"), true, nil
		}
		return "", false, err
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, true, nil
}

// Decode reads an entire table. The first line fixes the columns and their
// order; every following non-empty line becomes one row, cells assigned
// positionally with empty fields decoding as absent. Blank lines are
// skipped. Empty input decodes to the empty table.
//
// Lines with more fields than columns fail with a RowWidthError; lines with
// fewer pad with absent unless WithStrictRowWidth is set.
func (d *Decoder) Decode() (*Table, error) {
	t := New()

	header, ok, err := d.readLine()
	if err != nil {
		return nil, fmt.Errorf("ssv: read header: %w", err)
	}
	if !ok {
		return t, nil
	}

	keys := strings.Split(header, Delimiter)
	for _, key := range keys {
		created, err := t.inner.AddColumn(key)
		if err != nil {
			return nil, err
		}
		if !created {
			return nil, fmt.Errorf("line 1: %w: %q", ErrDuplicateColumn, key)
		}
	}

	line := 1
	for {
		row, ok, err := d.readLine()
		line++
		if err != nil {
			return nil, fmt.Errorf("ssv: read line %d: %w", line, err)
		}
		if !ok {
			return t, nil
		}
		if row == "" {
			continue
		}

		fields := strings.Split(row, Delimiter)
		if len(fields) > len(keys) || (d.strict && len(fields) < len(keys)) {
			return nil, &RowWidthError{Line: line, Fields: len(fields), Columns: len(keys)}
		}

		e, err := t.inner.NewEntry()
		if err != nil {
			return nil, err
		}
		for i, field := range fields {
			if field == "" {
				continue
			}
			e.Insert(keys[i], field)
		}
		if err := e.Close(); err != nil {
			return nil, err
		}
	}
}

// Decode reads a table from r.
func Decode(r io.Reader, opts ...DecoderOption) (*Table, error) {
	return NewDecoder(r, opts...).Decode()
}
