package codec

import "fmt"

// Status is the outcome of a single Serialize or Parse call.
type Status int

const (
	// StatusNone means the call succeeded.
	StatusNone Status = iota

	// StatusDepth means nesting exceeded the depth limit.
	StatusDepth

	// StatusStateMismatch means brackets were mismatched, unbalanced, or the
	// document was truncated.
	StatusStateMismatch

	// StatusCtrlChar means a raw control character appeared inside a string.
	StatusCtrlChar

	// StatusSyntax is a generic grammar error.
	StatusSyntax

	// StatusUTF8 means the input is not valid UTF-8.
	StatusUTF8

	// StatusRecursion means the value graph references itself.
	StatusRecursion

	// StatusInfOrNaN means a float was NaN or infinite.
	StatusInfOrNaN

	// StatusUnsupportedType means a value of an unencodable type was found.
	StatusUnsupportedType

	// StatusInvalidPropertyName means an object key cannot be a record field.
	StatusInvalidPropertyName

	// StatusUTF16 means a \u escape held an unpaired surrogate.
	StatusUTF16

	// StatusDuplicateKey means an object repeated a key under FlagStrictKeys.
	StatusDuplicateKey

	// StatusNumberRange means a number literal does not fit in a float64.
	StatusNumberRange

	// StatusMarshaler means a json.Marshaler or TextMarshaler returned an error.
	StatusMarshaler

	// StatusUnknown is any backend failure that has no better status.
	StatusUnknown
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusDepth:
		return "depth"
	case StatusStateMismatch:
		return "state_mismatch"
	case StatusCtrlChar:
		return "ctrl_char"
	case StatusSyntax:
		return "syntax"
	case StatusUTF8:
		return "utf8"
	case StatusRecursion:
		return "recursion"
	case StatusInfOrNaN:
		return "inf_or_nan"
	case StatusUnsupportedType:
		return "unsupported_type"
	case StatusInvalidPropertyName:
		return "invalid_property_name"
	case StatusUTF16:
		return "utf16"
	case StatusDuplicateKey:
		return "duplicate_key"
	case StatusNumberRange:
		return "number_range"
	case StatusMarshaler:
		return "marshaler"
	case StatusUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Report carries the status of a call together with the backend diagnostic.
// The zero Report means success.
type Report struct {
	Status Status
	Detail string // Human-readable diagnostic, may be empty
	Offset int64  // Byte offset in the input, -1 when unknown
}

// OK reports whether the call succeeded.
func (r Report) OK() bool {
	return r.Status == StatusNone
}

func fail(s Status, offset int64, format string, args ...any) Report {
	return Report{Status: s, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}
