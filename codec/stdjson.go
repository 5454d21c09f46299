package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// StdName is the name of the encoding/json backend.
const StdName = "encoding/json"

func init() {
	Register(&pipeline{name: StdName, eng: stdJSON{}})
}

// stdJSON is the engine backed by encoding/json.
type stdJSON struct{}

func (stdJSON) marshal(v any) ([]byte, error) {
	return stdMarshal(withStdRecords(v))
}

func stdMarshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (stdJSON) marshalReport(err error) Report {
	var (
		typeErr   *json.UnsupportedTypeError
		valueErr  *json.UnsupportedValueError
		marshaler *json.MarshalerError
	)
	switch {
	case errors.As(err, &typeErr):
		return fail(StatusUnsupportedType, -1, "%v", err)
	case errors.As(err, &valueErr):
		return fail(StatusInfOrNaN, -1, "%v", err)
	case errors.As(err, &marshaler):
		return fail(StatusMarshaler, -1, "%v", err)
	}
	return fail(StatusUnknown, -1, "%v", err)
}

func (stdJSON) valid(data []byte) bool {
	return json.Valid(data)
}

func (stdJSON) syntaxError(data []byte) Report {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		return fail(StatusSyntax, -1, "invalid JSON")
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return fail(StatusSyntax, syn.Offset, "%v", syn)
	}
	return fail(StatusSyntax, -1, "%v", err)
}

func (stdJSON) tokens(data []byte) tokenSource {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return &stdJSONTokens{dec: dec}
}

func (stdJSON) indent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	return json.Indent(dst, src, prefix, indent)
}

type stdJSONTokens struct {
	dec *json.Decoder
}

func (s *stdJSONTokens) next() (token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return token{}, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return token{kind: tokBeginObject}, nil
		case '}':
			return token{kind: tokEndObject}, nil
		case '[':
			return token{kind: tokBeginArray}, nil
		default:
			return token{kind: tokEndArray}, nil
		}
	case string:
		return token{kind: tokString, text: v}, nil
	case json.Number:
		return token{kind: tokNumber, text: string(v)}, nil
	case bool:
		return token{kind: tokBool, b: v}, nil
	case nil:
		return token{kind: tokNull}, nil
	}
	return token{}, fmt.Errorf("unexpected token %T", tok)
}

// stdRecord encodes a Record's names and values with encoding/json in place
// of the go-json encoder behind Record.MarshalJSON.
type stdRecord struct {
	r *Record
}

func (s stdRecord) MarshalJSON() ([]byte, error) {
	return s.r.encode(func(v any) ([]byte, error) {
		return stdMarshal(withStdRecords(v))
	})
}

// withStdRecords copies the []any and map[string]any containers of v,
// replacing each *Record with a stdRecord. Records wrap their own values
// when they are encoded.
func withStdRecords(v any) any {
	switch val := v.(type) {
	case *Record:
		if val == nil {
			return v
		}
		return stdRecord{r: val}
	case []any:
		cp := make([]any, len(val))
		for i, item := range val {
			cp[i] = withStdRecords(item)
		}
		return cp
	case map[string]any:
		cp := make(map[string]any, len(val))
		for k, item := range val {
			cp[k] = withStdRecords(item)
		}
		return cp
	}
	return v
}
