// Package strictjson is a validating wrapper around a JSON codec. It checks
// arguments strictly before encoding or decoding, and turns every backend
// failure into a classified error.
//
// Basic usage:
//
//	c, err := strictjson.New()
//	if err != nil {
//		return err
//	}
//
//	out, err := c.Encode(map[string]any{"id": 1}, strictjson.WithFlags(strictjson.FlagPrettyPrint))
//	v, err := c.Decode(data, strictjson.AsRecord(), strictjson.WithDepth(32))
//
//	switch {
//	case strictjson.IsDepthExceeded(err):
//	case strictjson.IsMalformedInput(err):
//	}
//
// Objects decode to map[string]any by default. AsRecord decodes them to
// *Record, which keeps fields in input order.
package strictjson

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/rbaliyan/strictjson/codec"
)

// Flags selects encoding and decoding behaviors.
type Flags = codec.Flags

// Record is a JSON object that keeps its fields in input order.
type Record = codec.Record

// Flags re-exported from the codec package.
const (
	FlagPrettyPrint    = codec.FlagPrettyPrint
	FlagEscapeHTML     = codec.FlagEscapeHTML
	FlagEscapeSlashes  = codec.FlagEscapeSlashes
	FlagEscapeUnicode  = codec.FlagEscapeUnicode
	FlagForceObject    = codec.FlagForceObject
	FlagNumericCheck   = codec.FlagNumericCheck
	FlagUseNumber      = codec.FlagUseNumber
	FlagBigIntAsString = codec.FlagBigIntAsString
	FlagStrictKeys     = codec.FlagStrictKeys
)

// Coder is the operation set of a Codec. Wrappers such as the otel package
// implement it too.
type Coder interface {
	Encode(v any, opts ...CallOption) ([]byte, error)
	Decode(data []byte, opts ...CallOption) (any, error)
	DecodeFile(path string, opts ...CallOption) (any, error)
	ValidData(data any) bool
	ValidFile(path string) bool
}

// Codec encodes and decodes JSON through a backend. A Codec is immutable
// after New and safe for concurrent use.
type Codec struct {
	backend     codec.Codec
	logger      *slog.Logger
	depth       int
	flags       Flags
	maxFileSize int64
}

// Compile-time interface check
var _ Coder = (*Codec)(nil)

// New creates a Codec.
// Returns ErrBackendNotFound for an unregistered backend and an
// *ArgumentError for a bad default depth or flags.
func New(opts ...Option) (*Codec, error) {
	o := newCodecOptions()
	for _, opt := range opts {
		opt(o)
	}

	backend := codec.Get(o.backend)
	if backend == nil {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotFound, o.backend, codec.Names())
	}
	if err := checkDepth(o.depth); err != nil {
		return nil, err
	}
	if err := checkFlags(o.flags); err != nil {
		return nil, err
	}

	return &Codec{
		backend:     backend,
		logger:      o.logger,
		depth:       o.depth,
		flags:       o.flags,
		maxFileSize: o.maxFileSize,
	}, nil
}

// Backend returns the name of the JSON backend.
func (c *Codec) Backend() string {
	return c.backend.Name()
}

func (c *Codec) callOptions(opts []CallOption) (*callOptions, error) {
	o := &callOptions{flags: c.flags, depth: c.depth, mapping: true}
	for _, opt := range opts {
		opt(o)
	}
	if err := checkFlags(o.flags); err != nil {
		return nil, err
	}
	if err := checkDepth(o.depth); err != nil {
		return nil, err
	}
	return o, nil
}

// Encode returns the JSON encoding of v.
//
// A resource handle passed as v fails with an *ResourceError before the
// backend runs. Handles nested inside v fail with ErrUnsupportedType.
func (c *Codec) Encode(v any, opts ...CallOption) ([]byte, error) {
	o, err := c.callOptions(opts)
	if err != nil {
		return nil, err
	}
	if codec.IsResource(v) {
		return nil, &ResourceError{Type: reflect.TypeOf(v).String()}
	}

	out, r := c.backend.Serialize(v, o.flags, o.depth)
	if !r.OK() {
		return nil, c.fail("encode", r)
	}
	return out, nil
}

// Decode parses JSON text. Objects become map[string]any, or *Record with
// AsRecord; arrays become []any; numbers become float64 unless
// FlagUseNumber or FlagBigIntAsString is set.
//
// Invalid UTF-8 anywhere in data is reported before any grammar error.
// Literals and numbers follow RFC 8259 on every backend, so tru and 01 are
// malformed. A well-formed number that overflows float64, such as 1e999,
// fails with ErrUnexpectedValue unless FlagUseNumber is set; ValidData
// reports false for it.
func (c *Codec) Decode(data []byte, opts ...CallOption) (any, error) {
	o, err := c.callOptions(opts)
	if err != nil {
		return nil, err
	}

	v, r := c.backend.Parse(data, o.mapping, o.flags, o.depth)
	if !r.OK() {
		return nil, c.fail("decode", r)
	}
	return v, nil
}

// ValidData reports whether data is a string or []byte holding JSON that
// decodes with the codec defaults. It never fails.
func (c *Codec) ValidData(data any) bool {
	text, err := validateArg(argText, "data", data)
	if err != nil {
		return false
	}
	_, err = c.Decode(text.([]byte))
	return err == nil
}

func (c *Codec) fail(op string, r codec.Report) error {
	err := classify(op, r)
	c.logger.Debug("strictjson: operation failed",
		"op", op,
		"backend", c.backend.Name(),
		"kind", KindOf(err).String(),
		"status", r.Status.String(),
		"error", err)
	return err
}

func checkDepth(depth int) error {
	if depth <= 0 {
		return &ArgumentError{Param: "depth", Expected: "a positive int", Actual: fmt.Sprintf("int %d", depth)}
	}
	return nil
}

func checkFlags(flags Flags) error {
	if !flags.Valid() {
		return &ArgumentError{Param: "options", Expected: "known flags", Actual: fmt.Sprintf("flags %s", flags)}
	}
	return nil
}
