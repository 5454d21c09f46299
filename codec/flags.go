package codec

import (
	"fmt"
	"strings"
)

// Flags selects encoding and decoding behaviors. Flags that do not apply to
// an operation are ignored by it.
type Flags uint32

const (
	// FlagPrettyPrint indents output with four spaces.
	FlagPrettyPrint Flags = 1 << iota

	// FlagEscapeHTML escapes <, > and & inside strings.
	FlagEscapeHTML

	// FlagEscapeSlashes writes "/" as "\/".
	FlagEscapeSlashes

	// FlagEscapeUnicode writes every non-ASCII character as a \u escape.
	FlagEscapeUnicode

	// FlagForceObject writes arrays as objects keyed by index.
	FlagForceObject

	// FlagNumericCheck writes strings holding a JSON number as numbers.
	FlagNumericCheck

	// FlagUseNumber decodes numbers as json.Number instead of float64.
	FlagUseNumber

	// FlagBigIntAsString decodes integers beyond 2^53 as strings so no
	// precision is lost.
	FlagBigIntAsString

	// FlagStrictKeys rejects objects that repeat a key.
	FlagStrictKeys

	flagSentinel
)

// FlagsAll is the union of every known flag.
const FlagsAll = flagSentinel - 1

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagPrettyPrint, "pretty_print"},
	{FlagEscapeHTML, "escape_html"},
	{FlagEscapeSlashes, "escape_slashes"},
	{FlagEscapeUnicode, "escape_unicode"},
	{FlagForceObject, "force_object"},
	{FlagNumericCheck, "numeric_check"},
	{FlagUseNumber, "use_number"},
	{FlagBigIntAsString, "bigint_as_string"},
	{FlagStrictKeys, "strict_keys"},
}

// Has reports whether every bit of f2 is set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Valid reports whether f only holds known flags.
func (f Flags) Valid() bool {
	return f&^FlagsAll == 0
}

// String returns the flag names joined by "|".
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if rest := f &^ FlagsAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseFlags combines flag names such as "pretty_print" into a Flags value.
// Names are case-insensitive; "-" and "_" are interchangeable.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, raw := range names {
		name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
		if name == "" {
			continue
		}
		found := false
		for _, fn := range flagNames {
			if fn.name == name {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("codec: unknown flag %q", raw)
		}
	}
	return f, nil
}
