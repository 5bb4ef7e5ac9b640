package tablemap

type options struct {
	capacity int
}

// Option configures table construction.
type Option func(*options)

// WithCapacity sizes new columns for the expected number of rows, avoiding
// incremental growth while a table is filled. It does not limit the table.
func WithCapacity(rows int) Option {
	return func(o *options) {
		if rows > 0 {
			o.capacity = rows
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
