package phyloxml

// WriteOption configures serialization.
type WriteOption interface{ apply(*writeOptions) }

type writeOptions struct {
	encoding string
	indent   string
}

type writeOptionFunc func(*writeOptions)

func (f writeOptionFunc) apply(cfg *writeOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithEncoding sets the encoding named in the XML declaration. The default
// is UTF-8; for any other encoding the output is escaped to pure ASCII so the
// bytes are valid under any declared ASCII-superset encoding.
func WithEncoding(name string) WriteOption {
	return writeOptionFunc(func(cfg *writeOptions) {
		cfg.encoding = name
	})
}

// WithIndent enables pretty printing with the given per-level indent.
func WithIndent(indent string) WriteOption {
	return writeOptionFunc(func(cfg *writeOptions) {
		cfg.indent = indent
	})
}

func buildWriteOptions(opts []WriteOption) writeOptions {
	var cfg writeOptions
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}
