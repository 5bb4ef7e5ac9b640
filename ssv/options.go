package ssv

import (
	"github.com/p-avital/tablemap/codec"
)

type options struct {
	capacity int
	codec    codec.Codec
}

// Option configures table construction.
type Option func(*options)

// WithCapacity sizes new columns for the expected number of rows.
func WithCapacity(rows int) Option {
	return func(o *options) {
		if rows > 0 {
			o.capacity = rows
		}
	}
}

// WithCodec sets the codec used by InsertValue, SetRow and ExtractJSON.
// Defaults to codec.Default. Cells formatted with one codec should be
// extracted with a compatible one; both built-ins speak plain JSON.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{codec: codec.Default}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
