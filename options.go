package strictjson

import (
	"log/slog"

	"github.com/rbaliyan/strictjson/codec"
)

// DefaultDepth is the nesting limit used when no depth is given.
const DefaultDepth = 512

// codecOptions holds configuration for the Codec (unexported).
type codecOptions struct {
	backend     string
	logger      *slog.Logger
	depth       int
	flags       Flags
	maxFileSize int64
}

// Option configures the Codec.
type Option func(*codecOptions)

// newCodecOptions creates options with defaults.
func newCodecOptions() *codecOptions {
	return &codecOptions{
		backend: codec.DefaultName,
		logger:  slog.Default(),
		depth:   DefaultDepth,
	}
}

// WithBackend selects the JSON backend by registered name.
// Default is "go-json".
func WithBackend(name string) Option {
	return func(o *codecOptions) {
		if name != "" {
			o.backend = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *codecOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDefaultDepth sets the nesting limit for calls that do not pass WithDepth.
// Default: 512. Values <= 0 are rejected by New.
func WithDefaultDepth(depth int) Option {
	return func(o *codecOptions) {
		o.depth = depth
	}
}

// WithDefaultFlags sets the flags for calls that do not pass WithFlags.
func WithDefaultFlags(flags Flags) Option {
	return func(o *codecOptions) {
		o.flags = flags
	}
}

// WithMaxFileSize bounds the number of bytes DecodeFile reads.
// Default: 0 (unlimited).
func WithMaxFileSize(n int64) Option {
	return func(o *codecOptions) {
		if n >= 0 {
			o.maxFileSize = n
		}
	}
}

// callOptions holds per-call settings.
type callOptions struct {
	flags   Flags
	depth   int
	mapping bool
}

// CallOption configures a single Encode or Decode call.
type CallOption func(*callOptions)

// WithFlags sets the flags for one call, replacing the codec defaults.
func WithFlags(flags Flags) CallOption {
	return func(o *callOptions) {
		o.flags = flags
	}
}

// WithDepth sets the nesting limit for one call.
func WithDepth(depth int) CallOption {
	return func(o *callOptions) {
		o.depth = depth
	}
}

// WithMapping selects whether decoded objects become map[string]any (true,
// the default) or *Record (false).
func WithMapping(mapping bool) CallOption {
	return func(o *callOptions) {
		o.mapping = mapping
	}
}

// AsRecord is shorthand for WithMapping(false).
func AsRecord() CallOption {
	return WithMapping(false)
}
