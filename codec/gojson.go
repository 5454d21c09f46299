package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

func init() {
	Register(&pipeline{name: DefaultName, eng: goJSON{}})
}

// goJSON is the engine backed by github.com/goccy/go-json.
type goJSON struct{}

func (goJSON) marshal(v any) ([]byte, error) {
	return json.MarshalWithOption(v, json.DisableHTMLEscape())
}

func (goJSON) marshalReport(err error) Report {
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

func (goJSON) valid(data []byte) bool {
	return json.Valid(data)
}

func (goJSON) syntaxError(data []byte) Report {
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

func (goJSON) tokens(data []byte) tokenSource {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return &goJSONTokens{dec: dec}
}

func (goJSON) indent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	return json.Indent(dst, src, prefix, indent)
}

type goJSONTokens struct {
	dec *json.Decoder
}

func (s *goJSONTokens) next() (token, error) {
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
	case float64:
		return token{kind: tokNumber, text: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		return token{kind: tokBool, b: v}, nil
	case nil:
		return token{kind: tokNull}, nil
	}
	return token{}, fmt.Errorf("unexpected token %T", tok)
}
