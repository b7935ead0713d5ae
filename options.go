package needletail

import "github.com/luizirber/needletail/buffer"

// options defines all configuration options for parsing.
type options struct {
	bufferSize int // Initial size of the chunked read window
}

// Option is a function that configures the parsing options.
type Option func(*options)

// WithBufferSize sets the initial size of the read window. The window still
// grows past it whenever a single record needs more room. Sizes of zero or
// less fall back to the default.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		bufferSize: buffer.DefaultSize,
	}
}
