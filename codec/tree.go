package codec

import (
	stdjson "encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokBeginObject tokenKind = iota
	tokEndObject
	tokBeginArray
	tokEndArray
	tokString
	tokNumber
	tokBool
	tokNull
)

// token is a backend-neutral JSON token. text holds string contents and
// number literals.
type token struct {
	kind tokenKind
	text string
	b    bool
}

// tokenSource yields tokens until io.EOF.
type tokenSource interface {
	next() (token, error)
}

// maxSafeInteger is the largest integer a float64 holds exactly.
const maxSafeInteger = 1 << 53

// builder turns a token stream into a Value.
type builder struct {
	src     tokenSource
	mapping bool
	flags   Flags
}

func (b *builder) build() (any, Report) {
	tok, err := b.src.next()
	if err != nil {
		return nil, tokenFailure(err)
	}
	v, r := b.value(tok)
	if !r.OK() {
		return nil, r
	}
	if _, err := b.src.next(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fail(StatusSyntax, -1, "invalid data after top-level value")
		}
		return nil, tokenFailure(err)
	}
	return v, Report{}
}

func (b *builder) value(tok token) (any, Report) {
	switch tok.kind {
	case tokBeginObject:
		return b.object()
	case tokBeginArray:
		return b.array()
	case tokString:
		return tok.text, Report{}
	case tokNumber:
		return b.number(tok.text)
	case tokBool:
		return tok.b, Report{}
	case tokNull:
		return nil, Report{}
	default:
		return nil, fail(StatusSyntax, -1, "unexpected end of container")
	}
}

func (b *builder) object() (any, Report) {
	var (
		m   map[string]any
		rec *Record
	)
	if b.mapping {
		m = make(map[string]any)
	} else {
		rec = NewRecord()
	}
	for {
		tok, err := b.src.next()
		if err != nil {
			return nil, tokenFailure(err)
		}
		if tok.kind == tokEndObject {
			break
		}
		if tok.kind != tokString {
			return nil, fail(StatusSyntax, -1, "object key must be a string")
		}
		key := tok.text
		if !b.mapping && strings.HasPrefix(key, "\x00") {
			return nil, fail(StatusInvalidPropertyName, -1, "the decoded property name is invalid")
		}

		vt, err := b.src.next()
		if err != nil {
			return nil, tokenFailure(err)
		}
		v, r := b.value(vt)
		if !r.OK() {
			return nil, r
		}

		if b.mapping {
			if _, dup := m[key]; dup && b.flags.Has(FlagStrictKeys) {
				return nil, fail(StatusDuplicateKey, -1, "duplicate key %q", key)
			}
			m[key] = v
		} else {
			if rec.Has(key) && b.flags.Has(FlagStrictKeys) {
				return nil, fail(StatusDuplicateKey, -1, "duplicate key %q", key)
			}
			rec.Set(key, v)
		}
	}
	if b.mapping {
		return m, Report{}
	}
	return rec, Report{}
}

func (b *builder) array() (any, Report) {
	items := make([]any, 0)
	for {
		tok, err := b.src.next()
		if err != nil {
			return nil, tokenFailure(err)
		}
		if tok.kind == tokEndArray {
			return items, Report{}
		}
		v, r := b.value(tok)
		if !r.OK() {
			return nil, r
		}
		items = append(items, v)
	}
}

func (b *builder) number(lit string) (any, Report) {
	if b.flags.Has(FlagUseNumber) {
		return stdjson.Number(lit), Report{}
	}
	if b.flags.Has(FlagBigIntAsString) && isIntegerLiteral(lit) && !safeInteger(lit) {
		return lit, Report{}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fail(StatusNumberRange, -1, "number %s overflows float64", lit)
	}
	return f, Report{}
}

func tokenFailure(err error) Report {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fail(StatusSyntax, -1, "unexpected end of JSON input")
	}
	return fail(StatusSyntax, -1, "%v", err)
}

func isIntegerLiteral(lit string) bool {
	return !strings.ContainsAny(lit, ".eE")
}

func safeInteger(lit string) bool {
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return false
	}
	return n <= maxSafeInteger && n >= -maxSafeInteger
}
