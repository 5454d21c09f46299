package codec

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
)

func backends(t *testing.T) []Codec {
	t.Helper()
	var out []Codec
	for _, name := range Names() {
		out = append(out, Get(name))
	}
	if len(out) < 2 {
		t.Fatalf("expected at least 2 backends, got %v", Names())
	}
	return out
}

func TestRegisterAndGet(t *testing.T) {
	// go-json and encoding/json are registered at init
	c := Get(DefaultName)
	if c == nil {
		t.Fatal("expected go-json backend to be registered")
	}
	if c.Name() != DefaultName {
		t.Errorf("expected name %q, got %q", DefaultName, c.Name())
	}

	if Get(StdName) == nil {
		t.Error("expected encoding/json backend to be registered")
	}

	if Get("unknown") != nil {
		t.Error("expected nil for unknown backend")
	}
}

func TestDefault(t *testing.T) {
	def := Default()
	if def == nil {
		t.Fatal("expected default backend to not be nil")
	}
	if def.Name() != "go-json" {
		t.Errorf("expected default backend to be 'go-json', got %q", def.Name())
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := []string{StdName, DefaultName}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}

func TestRegisterPanics(t *testing.T) {
	t.Run("nil codec", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic for nil codec")
			}
		}()
		Register(nil)
	})

	t.Run("empty name", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic for empty name")
			}
		}()
		Register(&pipeline{name: "", eng: stdJSON{}})
	})
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name  string
		value any
		flags Flags
		depth int
		want  string
	}{
		{"scalar", "User", 0, 512, `"User"`},
		{"sorted map", map[string]any{"user": "User", "id": 123456789}, 0, 512, `{"id":123456789,"user":"User"}`},
		{"nested within limit", []any{[]any{[]any{"x"}}}, 0, 3, `[[["x"]]]`},
		{"no html escaping by default", "<a&b>", 0, 512, `"<a&b>"`},
		{"nil slice", []int(nil), 0, 512, `null`},
		{"struct", struct {
			ID   int    `json:"id"`
			Skip string `json:"-"`
			Name string `json:"name"`
		}{ID: 1, Skip: "x", Name: "n"}, 0, 512, `{"id":1,"name":"n"}`},
		{"force object", []any{"a", "b"}, FlagForceObject, 512, `{"0":"a","1":"b"}`},
		{"force object nested", map[string]any{"list": []any{[]any{1}}}, FlagForceObject, 512, `{"list":{"0":{"0":1}}}`},
		{"force object empty", []any{}, FlagForceObject, 512, `{}`},
		{"numeric check", []any{"12", "-1.5e3", "abc", "01", "1."}, FlagNumericCheck, 512, `[12,-1.5e3,"abc","01","1."]`},
		{"pretty print", map[string]any{"a": 1}, FlagPrettyPrint, 512, "{\n    \"a\": 1\n}"},
		{"escape html", "<a&b>", FlagEscapeHTML, 512, `"\u003ca\u0026b\u003e"`},
		{"escape slashes", "a/b", FlagEscapeSlashes, 512, `"a\/b"`},
		{"escape unicode", "é😀", FlagEscapeUnicode, 512, `"\u00e9\ud83d\ude00"`},
		{"record keeps order", recordOf("b", 1, "a", 2), 0, 512, `{"b":1,"a":2}`},
	}

	for _, c := range backends(t) {
		for _, tt := range tests {
			t.Run(c.Name()+"/"+tt.name, func(t *testing.T) {
				out, r := c.Serialize(tt.value, tt.flags, tt.depth)
				if !r.OK() {
					t.Fatalf("Serialize() failed: %v %s", r.Status, r.Detail)
				}
				if string(out) != tt.want {
					t.Errorf("Serialize() = %s, want %s", out, tt.want)
				}
			})
		}
	}
}

func TestSerializeFailures(t *testing.T) {
	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	rec := NewRecord()
	rec.Set("self", rec)

	type node struct {
		Next *node
	}
	loop := &node{}
	loop.Next = loop

	tests := []struct {
		name  string
		value any
		depth int
		want  Status
	}{
		{"depth exceeded", []any{[]any{[]any{"x"}}}, 1, StatusDepth},
		{"NaN", math.NaN(), 512, StatusInfOrNaN},
		{"nested Inf", map[string]any{"x": []any{math.Inf(1)}}, 512, StatusInfOrNaN},
		{"func", func() {}, 512, StatusUnsupportedType},
		{"complex", complex(1, 2), 512, StatusUnsupportedType},
		{"nested chan", []any{make(chan int)}, 512, StatusUnsupportedType},
		{"bad map key", map[[2]int]string{{1, 2}: "x"}, 512, StatusUnsupportedType},
		{"map cycle", cyclic, 512, StatusRecursion},
		{"record cycle", rec, 512, StatusRecursion},
		{"pointer cycle", loop, 512, StatusRecursion},
		{"invalid utf8", "a\xffb", 512, StatusUTF8},
	}

	for _, c := range backends(t) {
		for _, tt := range tests {
			t.Run(c.Name()+"/"+tt.name, func(t *testing.T) {
				out, r := c.Serialize(tt.value, 0, tt.depth)
				if r.Status != tt.want {
					t.Fatalf("Serialize() status = %v (%s), want %v", r.Status, r.Detail, tt.want)
				}
				if out != nil {
					t.Errorf("Serialize() output = %s, want nil", out)
				}
				if r.Detail == "" {
					t.Error("expected a diagnostic message")
				}
			})
		}
	}
}

func TestSerializeSharedReferenceIsNotACycle(t *testing.T) {
	shared := []any{"x"}
	value := map[string]any{"a": shared, "b": shared}
	for _, c := range backends(t) {
		out, r := c.Serialize(value, 0, 512)
		if !r.OK() {
			t.Fatalf("%s: Serialize() failed: %v", c.Name(), r.Status)
		}
		if string(out) != `{"a":["x"],"b":["x"]}` {
			t.Errorf("%s: Serialize() = %s", c.Name(), out)
		}
	}
}

func TestParse(t *testing.T) {
	for _, c := range backends(t) {
		t.Run(c.Name(), func(t *testing.T) {
			v, r := c.Parse([]byte(`{"id": 123456789, "user": "User"}`), true, 0, 512)
			if !r.OK() {
				t.Fatalf("Parse() failed: %v", r.Status)
			}
			want := map[string]any{"id": float64(123456789), "user": "User"}
			if !reflect.DeepEqual(v, want) {
				t.Errorf("Parse() = %#v, want %#v", v, want)
			}

			v, r = c.Parse([]byte(`{"user": "User", "id": 123456789}`), false, 0, 512)
			if !r.OK() {
				t.Fatalf("Parse() record failed: %v", r.Status)
			}
			rec, ok := v.(*Record)
			if !ok {
				t.Fatalf("Parse() record = %T, want *Record", v)
			}
			if got := rec.Keys(); !reflect.DeepEqual(got, []string{"user", "id"}) {
				t.Errorf("Keys() = %v", got)
			}
			if id, _ := rec.Get("id"); id != float64(123456789) {
				t.Errorf("id = %v", id)
			}
		})
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		flags Flags
		want  any
	}{
		{"empty array", `[]`, 0, []any{}},
		{"empty object", `{}`, 0, map[string]any{}},
		{"null", ` null `, 0, nil},
		{"bool", `true`, 0, true},
		{"nested", `[1, [2, {"a": null}]]`, 0, []any{float64(1), []any{float64(2), map[string]any{"a": nil}}}},
		{"use number", `12.50`, FlagUseNumber, json.Number("12.50")},
		{"bigint as string", `9007199254740993`, FlagBigIntAsString, "9007199254740993"},
		{"bigint negative", `-9007199254740993`, FlagBigIntAsString, "-9007199254740993"},
		{"safe int stays float", `9007199254740992`, FlagBigIntAsString, float64(9007199254740992)},
		{"huge int as string", `123456789012345678901234567890`, FlagBigIntAsString, "123456789012345678901234567890"},
		{"duplicate last wins", `{"a": 1, "a": 2}`, 0, map[string]any{"a": float64(2)}},
		{"nul key in mapping", `{"\u0000x": 1}`, 0, map[string]any{"\x00x": float64(1)}},
		{"surrogate pair", `"\ud83d\ude00"`, 0, "😀"},
		{"escaped quote", `"a\"b"`, 0, `a"b`},
	}

	for _, c := range backends(t) {
		for _, tt := range tests {
			t.Run(c.Name()+"/"+tt.name, func(t *testing.T) {
				v, r := c.Parse([]byte(tt.input), true, tt.flags, 512)
				if !r.OK() {
					t.Fatalf("Parse() failed: %v %s", r.Status, r.Detail)
				}
				if !reflect.DeepEqual(v, tt.want) {
					t.Errorf("Parse() = %#v, want %#v", v, tt.want)
				}
			})
		}
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mapping bool
		flags   Flags
		depth   int
		want    Status
	}{
		{"depth exceeded", `[[["x"]]]`, true, 0, 2, StatusDepth},
		{"unclosed object", `{"a": 1`, true, 0, 512, StatusStateMismatch},
		{"mismatched bracket", `[1}`, true, 0, 512, StatusStateMismatch},
		{"stray close", `1]`, true, 0, 512, StatusStateMismatch},
		{"unterminated string", `"abc`, true, 0, 512, StatusStateMismatch},
		{"control char", "\"a\x01\"", true, 0, 512, StatusCtrlChar},
		{"syntax", `{"a" 1}`, true, 0, 512, StatusSyntax},
		{"bad literal", `[tru]`, true, 0, 512, StatusSyntax},
		{"empty", ``, true, 0, 512, StatusSyntax},
		{"trailing value", `1 2`, true, 0, 512, StatusSyntax},
		{"invalid utf8", "\"\xff\"", true, 0, 512, StatusUTF8},
		{"lone high surrogate", `"\ud800"`, true, 0, 512, StatusUTF16},
		{"lone low surrogate", `"\udc00x"`, true, 0, 512, StatusUTF16},
		{"strict duplicate", `{"a": 1, "a": 2}`, true, FlagStrictKeys, 512, StatusDuplicateKey},
		{"strict duplicate record", `{"a": 1, "a": 2}`, false, FlagStrictKeys, 512, StatusDuplicateKey},
		{"nul property name", `{"\u0000x": 1}`, false, 0, 512, StatusInvalidPropertyName},
		{"number range", `1e400`, true, 0, 512, StatusNumberRange},
	}

	for _, c := range backends(t) {
		for _, tt := range tests {
			t.Run(c.Name()+"/"+tt.name, func(t *testing.T) {
				v, r := c.Parse([]byte(tt.input), tt.mapping, tt.flags, tt.depth)
				if r.Status != tt.want {
					t.Fatalf("Parse() status = %v (%s), want %v", r.Status, r.Detail, tt.want)
				}
				if v != nil {
					t.Errorf("Parse() value = %#v, want nil", v)
				}
				if r.Detail == "" {
					t.Error("expected a diagnostic message")
				}
			})
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{"id":123456789,"user":"User"}`,
		`[1,"two",[3,{"four":null}],true]`,
		`"é"`,
	}
	for _, c := range backends(t) {
		for _, in := range inputs {
			v, r := c.Parse([]byte(in), false, 0, 512)
			if !r.OK() {
				t.Fatalf("%s: Parse(%s) failed: %v", c.Name(), in, r.Status)
			}
			out, r := c.Serialize(v, 0, 512)
			if !r.OK() {
				t.Fatalf("%s: Serialize failed: %v", c.Name(), r.Status)
			}
			if string(out) != in {
				t.Errorf("%s: round trip = %s, want %s", c.Name(), out, in)
			}
		}
	}
}

func TestDepthConventionMatches(t *testing.T) {
	doc := `[[["x"]]]`
	for _, c := range backends(t) {
		for depth := 1; depth <= 4; depth++ {
			_, pr := c.Parse([]byte(doc), true, 0, depth)
			_, sr := c.Serialize([]any{[]any{[]any{"x"}}}, 0, depth)
			if pr.OK() != sr.OK() {
				t.Errorf("%s depth %d: parse ok=%v, serialize ok=%v", c.Name(), depth, pr.OK(), sr.OK())
			}
			if wantOK := depth >= 3; pr.OK() != wantOK {
				t.Errorf("%s depth %d: ok=%v, want %v", c.Name(), depth, pr.OK(), wantOK)
			}
		}
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusDepth.String(); got != "depth" {
		t.Errorf("StatusDepth.String() = %q", got)
	}
	if got := Status(99).String(); !strings.Contains(got, "99") {
		t.Errorf("Status(99).String() = %q", got)
	}
}

func recordOf(kv ...any) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i].(string), kv[i+1])
	}
	return r
}
