package codec

import "unicode/utf8"

// scan walks JSON text and checks the structure the grammar parser does not
// classify on its own. In input order, it reports:
//
//   - a raw control character inside a string (StatusCtrlChar);
//   - a \u escape holding an unpaired surrogate (StatusUTF16);
//   - a closing bracket that does not match, or one with nothing open, an
//     unterminated string, or unclosed containers (StatusStateMismatch);
//   - nesting deeper than maxDepth (StatusDepth);
//   - a bare word that is not true, false, null or an RFC 8259 number,
//     such as tru, 01 or 1. (StatusSyntax).
//
// Backends differ in how strictly they read literals, so scan checks them
// itself. Everything else, such as missing commas, is left to the backend
// parser. maxDepth <= 0 disables the depth check.
func scan(data []byte, maxDepth int) Report {
	var stack []byte
	inString := false
	stringStart := 0

	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case c == '"':
				inString = false
			case c == '\\':
				if i+1 >= len(data) {
					return fail(StatusStateMismatch, int64(i), "unterminated string starting at offset %d", stringStart)
				}
				if data[i+1] != 'u' {
					i++
					continue
				}
				n, r := checkUnicodeEscape(data, i)
				if !r.OK() {
					return r
				}
				i += n - 1
			case c < 0x20:
				return fail(StatusCtrlChar, int64(i), "control character 0x%02x in string literal", c)
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			stringStart = i
		case '[', '{':
			stack = append(stack, c)
			if maxDepth > 0 && len(stack) > maxDepth {
				return fail(StatusDepth, int64(i), "nesting depth %d exceeds limit %d", len(stack), maxDepth)
			}
		case ']', '}':
			if len(stack) == 0 {
				return fail(StatusStateMismatch, int64(i), "unexpected %q with no open container", c)
			}
			open := stack[len(stack)-1]
			if (c == ']' && open != '[') || (c == '}' && open != '{') {
				return fail(StatusStateMismatch, int64(i), "%q does not close %q", c, open)
			}
			stack = stack[:len(stack)-1]
		default:
			if !isBareByte(c) {
				continue
			}
			j := i + 1
			for j < len(data) && isBareByte(data[j]) {
				j++
			}
			if r := checkBareWord(data[i:j], i); !r.OK() {
				return r
			}
			i = j - 1
		}
	}

	if inString {
		return fail(StatusStateMismatch, int64(len(data)), "unterminated string starting at offset %d", stringStart)
	}
	if len(stack) > 0 {
		return fail(StatusStateMismatch, int64(len(data)), "%d unclosed container(s) at end of input", len(stack))
	}
	return Report{}
}

// isBareByte reports whether c can be part of a literal or number outside a
// string.
func isBareByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', isDigit(c):
		return true
	}
	return c == '-' || c == '+' || c == '.'
}

func checkBareWord(word []byte, offset int) Report {
	switch s := string(word); {
	case s == "true", s == "false", s == "null", isJSONNumber(s):
		return Report{}
	}
	return fail(StatusSyntax, int64(offset), "invalid literal %q", word)
}

// checkUnicodeEscape inspects the \uXXXX escape starting at data[i] and
// returns how many bytes it spans, including a trailing low surrogate escape.
// Malformed hex digits are left for the parser to reject as syntax errors.
func checkUnicodeEscape(data []byte, i int) (int, Report) {
	r, ok := hex4(data, i+2)
	if !ok {
		return 2, Report{}
	}
	switch {
	case r >= 0xDC00 && r <= 0xDFFF:
		return 0, fail(StatusUTF16, int64(i), "unpaired low surrogate \\u%04X", r)
	case r >= 0xD800 && r <= 0xDBFF:
		j := i + 6
		if j+1 < len(data) && data[j] == '\\' && data[j+1] == 'u' {
			if lo, ok := hex4(data, j+2); ok && lo >= 0xDC00 && lo <= 0xDFFF {
				return 12, Report{}
			}
		}
		return 0, fail(StatusUTF16, int64(i), "unpaired high surrogate \\u%04X", r)
	}
	return 6, Report{}
}

func hex4(data []byte, i int) (rune, bool) {
	if i+4 > len(data) {
		return 0, false
	}
	var r rune
	for _, c := range data[i : i+4] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r |= rune(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return r, true
}

// validUTF8 reports the offset of the first invalid byte, or -1.
func validUTF8(data []byte) int64 {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return int64(i)
		}
		i += size
	}
	return -1
}
