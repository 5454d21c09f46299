package strictjson

import (
	"context"
	"sync"
)

type codecContextKey struct{}

// ContextWithCodec adds a Codec to the context.
// This allows handlers to share one configured Codec without explicit
// dependency injection.
func ContextWithCodec(ctx context.Context, c *Codec) context.Context {
	return context.WithValue(ctx, codecContextKey{}, c)
}

// FromContext retrieves the Codec from context.
// Returns the default Codec if none is set.
func FromContext(ctx context.Context) *Codec {
	c, ok := ctx.Value(codecContextKey{}).(*Codec)
	if !ok || c == nil {
		return Default()
	}
	return c
}

var defaultCodec = sync.OnceValue(func() *Codec {
	c, err := New()
	if err != nil {
		// The default backend registers itself at init.
		panic(err)
	}
	return c
})

// Default returns the Codec used by the package-level functions: the go-json
// backend, depth 512, no flags and slog.Default().
func Default() *Codec {
	return defaultCodec()
}

// Encode encodes v with the default Codec.
func Encode(v any, opts ...CallOption) ([]byte, error) {
	return Default().Encode(v, opts...)
}

// Decode decodes data with the default Codec.
func Decode(data []byte, opts ...CallOption) (any, error) {
	return Default().Decode(data, opts...)
}

// DecodeFile decodes the file at path with the default Codec.
func DecodeFile(path string, opts ...CallOption) (any, error) {
	return Default().DecodeFile(path, opts...)
}

// DecodeInto decodes data with the default Codec and binds it onto target.
func DecodeInto(data []byte, target any, opts ...CallOption) error {
	return Default().DecodeInto(data, target, opts...)
}

// ValidData reports whether data is valid JSON under the default Codec.
func ValidData(data any) bool {
	return Default().ValidData(data)
}

// ValidFile reports whether the file at path is valid JSON under the
// default Codec.
func ValidFile(path string) bool {
	return Default().ValidFile(path)
}

// EncodeAny is Codec.EncodeAny on the default Codec.
func EncodeAny(value, options, depth any) ([]byte, error) {
	return Default().EncodeAny(value, options, depth)
}

// DecodeAny is Codec.DecodeAny on the default Codec.
func DecodeAny(text, wantMapping, depth, options any) (any, error) {
	return Default().DecodeAny(text, wantMapping, depth, options)
}

// DecodeFileAny is Codec.DecodeFileAny on the default Codec.
func DecodeFileAny(path, wantMapping, depth, options any) (any, error) {
	return Default().DecodeFileAny(path, wantMapping, depth, options)
}
