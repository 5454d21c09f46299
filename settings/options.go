package settings

import (
	"log/slog"
)

// Option configures Load and LoadReader.
type Option func(*loaderOptions)

type loaderOptions struct {
	format  string // explicit format override (yaml, toml, json)
	strict  bool   // fail on unknown fields
	section string // top-level key holding the settings
	logger  *slog.Logger
}

func newLoaderOptions(opts []Option) loaderOptions {
	o := loaderOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFormat explicitly sets the settings file format.
// Overrides auto-detection from file extension.
// Supported: "yaml", "yml", "toml", "json".
func WithFormat(format string) Option {
	return func(o *loaderOptions) {
		o.format = format
	}
}

// WithStrictMode enables strict unmarshaling.
// Unknown fields in the settings file cause an error.
func WithStrictMode() Option {
	return func(o *loaderOptions) {
		o.strict = true
	}
}

// WithSection reads the settings from a top-level key instead of the whole
// document, so they can live inside a larger application config file.
func WithSection(name string) Option {
	return func(o *loaderOptions) {
		o.section = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *loaderOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
