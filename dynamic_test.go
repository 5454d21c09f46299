package strictjson

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
)

func TestEncodeAny(t *testing.T) {
	c := newTestCodec(t)
	array := []any{"prueba", "ejemplo"}

	out, err := c.EncodeAny(array, nil, nil)
	if err != nil || string(out) != `["prueba","ejemplo"]` {
		t.Errorf("EncodeAny() = %s, %v", out, err)
	}

	out, err = c.EncodeAny(array, int64(FlagForceObject), uint8(4))
	if err != nil || string(out) != `{"0":"prueba","1":"ejemplo"}` {
		t.Errorf("EncodeAny(force object) = %s, %v", out, err)
	}

	out, err = c.EncodeAny(array, FlagEscapeUnicode, 10)
	if err != nil || string(out) != `["prueba","ejemplo"]` {
		t.Errorf("EncodeAny(Flags value) = %s, %v", out, err)
	}
}

func TestEncodeAnyArgumentErrors(t *testing.T) {
	c := newTestCodec(t)
	array := []any{"prueba", "ejemplo"}

	tests := []struct {
		name    string
		options any
		depth   any
		pattern string
	}{
		{"options string", "no_valido", nil, `options argument only accepts int.*input type was string`},
		{"options float", 1.5, nil, `options argument only accepts int.*input type was float64`},
		{"options negative", -1, nil, `options argument only accepts known flags`},
		{"options unknown bit", 1 << 31, nil, `options argument only accepts known flags`},
		{"depth string", 0, "novalido", `depth argument only accepts int.*input type was string`},
		{"depth zero", 0, 0, `depth argument only accepts a positive int`},
		{"depth negative", nil, -3, `depth argument only accepts a positive int`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.EncodeAny(array, tt.options, tt.depth)
			if !IsInvalidArgument(err) {
				t.Fatalf("EncodeAny() error = %v, want invalid argument", err)
			}
			if !regexp.MustCompile(tt.pattern).MatchString(err.Error()) {
				t.Errorf("error %q does not match %q", err, tt.pattern)
			}
		})
	}
}

func TestEncodeAnyResource(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open() error: %v", err)
	}
	defer db.Close()

	conn, err := db.Conn(t.Context())
	if err != nil {
		t.Fatalf("db.Conn() error: %v", err)
	}
	defer conn.Close()

	for _, v := range []any{db, conn} {
		_, err := EncodeAny(v, 0, 512)
		if !IsResourceRejected(err) {
			t.Errorf("EncodeAny(%T) error = %v, want resource rejected", v, err)
		}
	}
}

func TestDecodeAny(t *testing.T) {
	c := newTestCodec(t)
	text := `["prueba","ejemplo"]`

	for _, in := range []any{text, []byte(text), json.RawMessage(text)} {
		v, err := c.DecodeAny(in, nil, nil, nil)
		if err != nil {
			t.Fatalf("DecodeAny(%T) error: %v", in, err)
		}
		if items, ok := v.([]any); !ok || len(items) != 2 {
			t.Errorf("DecodeAny(%T) = %#v", in, v)
		}
	}

	v, err := c.DecodeAny(`{"id": 1}`, false, 512, 0)
	if err != nil {
		t.Fatalf("DecodeAny(record) error: %v", err)
	}
	if _, ok := v.(*Record); !ok {
		t.Errorf("DecodeAny(record) = %T, want *Record", v)
	}
}

func TestDecodeAnyArgumentErrors(t *testing.T) {
	c := newTestCodec(t)
	text := `["prueba","ejemplo"]`

	tests := []struct {
		name        string
		text        any
		wantMapping any
		depth       any
		options     any
		pattern     string
	}{
		{"text array", []string{"prueba"}, nil, nil, nil, `text argument only accepts string.*input type was \[\]string`},
		{"text nil", nil, nil, nil, nil, `text argument only accepts string.*input type was nil`},
		{"wantMapping string", text, "novalido", nil, nil, `wantMapping argument only accepts bool.*input type was string`},
		{"wantMapping int", text, 1, nil, nil, `wantMapping argument only accepts bool`},
		{"depth string", text, true, "novalido", nil, `depth argument only accepts int`},
		{"options string", text, true, 512, "novalido", `options argument only accepts int`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DecodeAny(tt.text, tt.wantMapping, tt.depth, tt.options)
			if !IsInvalidArgument(err) {
				t.Fatalf("DecodeAny() error = %v, want invalid argument", err)
			}
			if !regexp.MustCompile(tt.pattern).MatchString(err.Error()) {
				t.Errorf("error %q does not match %q", err, tt.pattern)
			}
		})
	}
}

func TestDecodeFileAny(t *testing.T) {
	v, err := DecodeFileAny("testdata/example.json", true, nil, nil)
	if err != nil {
		t.Fatalf("DecodeFileAny() error: %v", err)
	}
	if m, ok := v.(map[string]any); !ok || m["user"] != "User" {
		t.Errorf("DecodeFileAny() = %#v", v)
	}

	_, err = DecodeFileAny(42, nil, nil, nil)
	var ae *ArgumentError
	if !errors.As(err, &ae) || ae.Param != "path" || ae.Actual != "int" {
		t.Errorf("DecodeFileAny(42) error = %v", err)
	}
}

func TestValidateArgUnknownKind(t *testing.T) {
	_, err := validateArg(argKind(99), "x", 1)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("validateArg() error = %v, want ErrInternal", err)
	}
	if KindOf(err) != KindInternal {
		t.Errorf("KindOf() = %v", KindOf(err))
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		v    any
		want int
		ok   bool
	}{
		{7, 7, true},
		{int8(-8), -8, true},
		{uint16(16), 16, true},
		{uint64(1 << 63), 0, false},
		{"7", 0, false},
		{7.0, 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := toInt(tt.v)
		if got != tt.want || ok != tt.ok {
			t.Errorf("toInt(%#v) = %d, %v, want %d, %v", tt.v, got, ok, tt.want, tt.ok)
		}
	}
}
