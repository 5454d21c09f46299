package strictjson

import (
	"errors"
	"fmt"

	"github.com/rbaliyan/strictjson/codec"
)

// Sentinel errors for encode and decode operations.
// Use errors.Is() to check for these errors as they may be wrapped.
var (
	// ErrInvalidArgument is returned when an argument has the wrong type or value.
	ErrInvalidArgument = errors.New("strictjson: invalid argument")

	// ErrResourceRejected is returned when a resource handle is passed as the value to encode.
	ErrResourceRejected = errors.New("strictjson: the argument is a resource, not a valid type")

	// ErrDepthExceeded is returned when nesting exceeds the depth limit.
	ErrDepthExceeded = errors.New("strictjson: the maximum stack depth has been exceeded")

	// ErrUnsupportedType is returned when a value of a type that cannot be encoded is given.
	ErrUnsupportedType = errors.New("strictjson: a value of a type that cannot be encoded was given")

	// ErrRecursionDetected is returned when the value to encode references itself.
	ErrRecursionDetected = errors.New("strictjson: one or more recursive references in the value to be encoded")

	// ErrNonFiniteNumber is returned when the value to encode holds NaN or Inf.
	ErrNonFiniteNumber = errors.New("strictjson: one or more NAN or INF values in the value to be encoded")

	// ErrMalformedInput is returned for syntax and control character errors.
	ErrMalformedInput = errors.New("strictjson: syntax error, malformed JSON")

	// ErrInvalidUTF8 is returned for malformed UTF-8 input.
	ErrInvalidUTF8 = errors.New("strictjson: malformed UTF-8 characters, possibly incorrectly encoded")

	// ErrStateMismatch is returned for structurally invalid or truncated JSON.
	ErrStateMismatch = errors.New("strictjson: invalid or malformed JSON")

	// ErrFileRead is returned when a file cannot be opened or read.
	ErrFileRead = errors.New("strictjson: unable to read file")

	// ErrUnexpectedValue is returned for backend failures with no better classification.
	ErrUnexpectedValue = errors.New("strictjson: unexpected value")

	// ErrInternal is returned when the library itself is misused or inconsistent.
	ErrInternal = errors.New("strictjson: internal error")

	// ErrBind is returned when a decoded value cannot be bound to a Go value.
	ErrBind = errors.New("strictjson: bind failed")

	// ErrBackendNotFound is returned when a backend is not registered.
	ErrBackendNotFound = errors.New("strictjson: backend not found")
)

// ArgumentError provides details about an argument of the wrong type or value.
type ArgumentError struct {
	Param    string // Parameter name (e.g., "options", "depth")
	Expected string // What the parameter accepts
	Actual   string // What was given
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("strictjson: %s argument only accepts %s, input type was %s", e.Param, e.Expected, e.Actual)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// IsInvalidArgument checks if an error indicates a bad argument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// ResourceError provides details about a rejected resource handle.
type ResourceError struct {
	Type string // Go type of the handle
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("strictjson: the argument is a resource (%s), not a valid type", e.Type)
}

func (e *ResourceError) Unwrap() error {
	return ErrResourceRejected
}

// IsResourceRejected checks if an error indicates a rejected resource handle.
func IsResourceRejected(err error) bool {
	return errors.Is(err, ErrResourceRejected)
}

// CodecError wraps a classified backend failure with the operation context.
type CodecError struct {
	Op     string       // Operation that failed (encode, decode)
	Status codec.Status // Backend status
	Detail string       // Backend diagnostic
	Offset int64        // Byte offset in the input, -1 when unknown
	Err    error        // Sentinel the status maps to
}

func (e *CodecError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("%s (%s at offset %d)", msg, e.Op, e.Offset)
	}
	return fmt.Sprintf("%s (%s)", msg, e.Op)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// IsDepthExceeded checks if an error indicates nesting beyond the depth limit.
func IsDepthExceeded(err error) bool {
	return errors.Is(err, ErrDepthExceeded)
}

// IsMalformedInput checks if an error indicates a syntax error.
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// FileError provides details about a file that could not be read.
// It matches both ErrFileRead and the underlying cause.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("strictjson: unable to get file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{ErrFileRead, e.Err}
}

// IsFileRead checks if an error indicates a file read failure.
func IsFileRead(err error) bool {
	return errors.Is(err, ErrFileRead)
}

// BindError provides details about a failed bind to a Go value.
type BindError struct {
	Target string // Go type of the target
	Err    error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("strictjson: bind to %s: %v", e.Target, e.Err)
}

func (e *BindError) Unwrap() []error {
	return []error{ErrBind, e.Err}
}

// IsBindError checks if an error indicates a bind failure.
func IsBindError(err error) bool {
	return errors.Is(err, ErrBind)
}

// classify maps a failed backend Report to the error taxonomy.
func classify(op string, r codec.Report) error {
	var sentinel error
	switch r.Status {
	case codec.StatusNone:
		return nil
	case codec.StatusDepth:
		sentinel = ErrDepthExceeded
	case codec.StatusStateMismatch:
		sentinel = ErrStateMismatch
	case codec.StatusCtrlChar, codec.StatusSyntax, codec.StatusDuplicateKey:
		sentinel = ErrMalformedInput
	case codec.StatusUTF8:
		sentinel = ErrInvalidUTF8
	case codec.StatusRecursion:
		sentinel = ErrRecursionDetected
	case codec.StatusInfOrNaN:
		sentinel = ErrNonFiniteNumber
	case codec.StatusUnsupportedType:
		sentinel = ErrUnsupportedType
	default:
		sentinel = ErrUnexpectedValue
		if r.Detail == "" {
			r.Detail = fmt.Sprintf("unrecognized JSON error status %d", int(r.Status))
		}
	}
	return &CodecError{Op: op, Status: r.Status, Detail: r.Detail, Offset: r.Offset, Err: sentinel}
}
