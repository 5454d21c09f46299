package strictjson

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/rbaliyan/strictjson/codec"
)

// argKind names the type an untyped argument must have.
type argKind int

const (
	argBool argKind = iota + 1
	argInt
	argString
	argText // string, []byte or json.RawMessage
	argNotResource
)

func (k argKind) String() string {
	switch k {
	case argBool:
		return "bool"
	case argInt:
		return "int"
	case argString, argText:
		return "string"
	case argNotResource:
		return "not_resource"
	default:
		return fmt.Sprintf("argKind(%d)", int(k))
	}
}

// validateArg checks v against kind and returns it normalized: an int for
// argInt, a []byte for argText, v itself otherwise.
func validateArg(kind argKind, name string, v any) (any, error) {
	mismatch := func() error {
		return &ArgumentError{Param: name, Expected: kind.String(), Actual: typeName(v)}
	}

	switch kind {
	case argBool:
		b, ok := v.(bool)
		if !ok {
			return nil, mismatch()
		}
		return b, nil
	case argInt:
		n, ok := toInt(v)
		if !ok {
			return nil, mismatch()
		}
		return n, nil
	case argString:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch()
		}
		return s, nil
	case argText:
		switch t := v.(type) {
		case string:
			return []byte(t), nil
		case []byte:
			return t, nil
		case json.RawMessage:
			return []byte(t), nil
		}
		return nil, mismatch()
	case argNotResource:
		if codec.IsResource(v) {
			return nil, &ResourceError{Type: typeName(v)}
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: value not defined in validation for %s", ErrInternal, kind)
	}
}

// toInt accepts any Go integer kind that fits in an int.
func toInt(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

// flagsArg validates an untyped options argument. nil keeps the default.
func (c *Codec) flagsArg(v any) (Flags, error) {
	if v == nil {
		return c.flags, nil
	}
	n, err := validateArg(argInt, "options", v)
	if err != nil {
		return 0, err
	}
	i := n.(int)
	if i < 0 || uint64(i) > math.MaxUint32 || !Flags(i).Valid() {
		return 0, &ArgumentError{Param: "options", Expected: "known flags", Actual: fmt.Sprintf("int %d", i)}
	}
	return Flags(i), nil
}

// depthArg validates an untyped depth argument. nil keeps the default.
func (c *Codec) depthArg(v any) (int, error) {
	if v == nil {
		return c.depth, nil
	}
	n, err := validateArg(argInt, "depth", v)
	if err != nil {
		return 0, err
	}
	return n.(int), nil
}

// mappingArg validates an untyped wantMapping argument. nil means true.
func mappingArg(v any) (bool, error) {
	if v == nil {
		return true, nil
	}
	b, err := validateArg(argBool, "wantMapping", v)
	if err != nil {
		return false, err
	}
	return b.(bool), nil
}

// EncodeAny is Encode for callers holding untyped arguments, such as values
// read from a script or an RPC payload. options must be an integer flag
// mask and depth a positive integer; nil selects the codec default.
func (c *Codec) EncodeAny(value, options, depth any) ([]byte, error) {
	if _, err := validateArg(argNotResource, "value", value); err != nil {
		return nil, err
	}
	flags, err := c.flagsArg(options)
	if err != nil {
		return nil, err
	}
	d, err := c.depthArg(depth)
	if err != nil {
		return nil, err
	}
	return c.Encode(value, WithFlags(flags), WithDepth(d))
}

// DecodeAny is Decode for untyped arguments. text must be a string or
// []byte and wantMapping a bool; nil selects the default for every argument
// but text.
func (c *Codec) DecodeAny(text, wantMapping, depth, options any) (any, error) {
	data, err := validateArg(argText, "text", text)
	if err != nil {
		return nil, err
	}
	opts, err := c.dynamicCallOptions(wantMapping, depth, options)
	if err != nil {
		return nil, err
	}
	return c.Decode(data.([]byte), opts...)
}

// DecodeFileAny is DecodeFile for untyped arguments. path must be a string.
func (c *Codec) DecodeFileAny(path, wantMapping, depth, options any) (any, error) {
	p, err := validateArg(argString, "path", path)
	if err != nil {
		return nil, err
	}
	opts, err := c.dynamicCallOptions(wantMapping, depth, options)
	if err != nil {
		return nil, err
	}
	return c.DecodeFile(p.(string), opts...)
}

func (c *Codec) dynamicCallOptions(wantMapping, depth, options any) ([]CallOption, error) {
	mapping, err := mappingArg(wantMapping)
	if err != nil {
		return nil, err
	}
	d, err := c.depthArg(depth)
	if err != nil {
		return nil, err
	}
	flags, err := c.flagsArg(options)
	if err != nil {
		return nil, err
	}
	return []CallOption{WithMapping(mapping), WithDepth(d), WithFlags(flags)}, nil
}
