package codec

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// transform applies FlagForceObject and FlagNumericCheck to a tree parsed
// as records with json.Number values.
func transform(v any, flags Flags) any {
	switch val := v.(type) {
	case []any:
		if flags.Has(FlagForceObject) {
			rec := NewRecord()
			for i, item := range val {
				rec.Set(strconv.Itoa(i), transform(item, flags))
			}
			return rec
		}
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = transform(item, flags)
		}
		return items
	case *Record:
		rec := NewRecord()
		val.Range(func(name string, item any) bool {
			rec.Set(name, transform(item, flags))
			return true
		})
		return rec
	case string:
		if flags.Has(FlagNumericCheck) && isJSONNumber(val) {
			return stdjson.Number(val)
		}
	}
	return v
}

// isJSONNumber reports whether s is a number literal in JSON grammar.
func isJSONNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// escapeHTML rewrites <, > and & as \u escapes. In valid JSON these bytes
// only occur inside strings.
func escapeHTML(out []byte) []byte {
	if !bytes.ContainsAny(out, "<>&") {
		return out
	}
	var buf bytes.Buffer
	buf.Grow(len(out) + 16)
	for _, c := range out {
		switch c {
		case '<', '>', '&':
			fmt.Fprintf(&buf, `\u%04x`, c)
		default:
			buf.WriteByte(c)
		}
	}
	return buf.Bytes()
}

// escapeSlashes rewrites unescaped "/" as "\/".
func escapeSlashes(out []byte) []byte {
	if !bytes.ContainsRune(out, '/') {
		return out
	}
	var buf bytes.Buffer
	buf.Grow(len(out) + 8)
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch c {
		case '\\':
			buf.WriteByte(c)
			if i+1 < len(out) {
				i++
				buf.WriteByte(out[i])
			}
		case '/':
			buf.WriteString(`\/`)
		default:
			buf.WriteByte(c)
		}
	}
	return buf.Bytes()
}

// escapeUnicode rewrites every non-ASCII character as a \u escape, using a
// surrogate pair outside the Basic Multilingual Plane.
func escapeUnicode(out []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(out))
	for i := 0; i < len(out); {
		c := out[i]
		if c < utf8.RuneSelf {
			buf.WriteByte(c)
			i++
			continue
		}
		r, size := utf8.DecodeRune(out[i:])
		i += size
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&buf, `\u%04x\u%04x`, hi, lo)
			continue
		}
		fmt.Fprintf(&buf, `\u%04x`, r)
	}
	return buf.Bytes()
}
