package strictjson

import (
	"errors"
	"fmt"
)

// Kind is the classification of a failure.
type Kind int

const (
	// KindNone indicates no error.
	KindNone Kind = iota

	// KindInvalidArgument indicates an argument of the wrong type or value.
	KindInvalidArgument

	// KindResourceRejected indicates a resource handle passed to encode.
	KindResourceRejected

	// KindDepthExceeded indicates nesting beyond the depth limit.
	KindDepthExceeded

	// KindUnsupportedType indicates a value that cannot be encoded.
	KindUnsupportedType

	// KindRecursionDetected indicates a self-referencing value.
	KindRecursionDetected

	// KindNonFiniteNumber indicates NaN or Inf.
	KindNonFiniteNumber

	// KindMalformedInput indicates a syntax or control character error.
	KindMalformedInput

	// KindInvalidUTF8 indicates malformed UTF-8.
	KindInvalidUTF8

	// KindStateMismatch indicates structurally invalid or truncated JSON.
	KindStateMismatch

	// KindFileRead indicates a file that could not be read.
	KindFileRead

	// KindUnexpectedValue indicates an unclassified backend failure.
	KindUnexpectedValue

	// KindInternal indicates a library error.
	KindInternal

	// KindBind indicates a failed bind to a Go value.
	KindBind

	// KindUnknown indicates an error from outside this package.
	KindUnknown
)

var kindSentinels = []struct {
	kind Kind
	err  error
}{
	{KindInvalidArgument, ErrInvalidArgument},
	{KindResourceRejected, ErrResourceRejected},
	{KindDepthExceeded, ErrDepthExceeded},
	{KindUnsupportedType, ErrUnsupportedType},
	{KindRecursionDetected, ErrRecursionDetected},
	{KindNonFiniteNumber, ErrNonFiniteNumber},
	{KindMalformedInput, ErrMalformedInput},
	{KindInvalidUTF8, ErrInvalidUTF8},
	{KindStateMismatch, ErrStateMismatch},
	{KindFileRead, ErrFileRead},
	{KindUnexpectedValue, ErrUnexpectedValue},
	{KindInternal, ErrInternal},
	{KindBind, ErrBind},
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindResourceRejected:
		return "resource_rejected"
	case KindDepthExceeded:
		return "depth_exceeded"
	case KindUnsupportedType:
		return "unsupported_type"
	case KindRecursionDetected:
		return "recursion_detected"
	case KindNonFiniteNumber:
		return "non_finite_number"
	case KindMalformedInput:
		return "malformed_input"
	case KindInvalidUTF8:
		return "invalid_utf8"
	case KindStateMismatch:
		return "state_mismatch"
	case KindFileRead:
		return "file_read"
	case KindUnexpectedValue:
		return "unexpected_value"
	case KindInternal:
		return "internal"
	case KindBind:
		return "bind"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// KindOf returns the classification of err. A FileError is KindFileRead even
// though it also wraps the OS error.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, ks := range kindSentinels {
		if errors.Is(err, ks.err) {
			return ks.kind
		}
	}
	return KindUnknown
}
